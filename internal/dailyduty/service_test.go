package dailyduty_test

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	errors "github.com/rowalls/uh-internal-project/internal"
	dutyDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/dailyduty"
	userDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/user"
	"github.com/rowalls/uh-internal-project/internal/core/events"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/dailyduty"
	"github.com/rowalls/uh-internal-project/internal/mailbox"
	"github.com/rowalls/uh-internal-project/internal/ticketing"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockDutyRepo struct {
	rows    map[string]*dutyDatamodel.Duty
	failOn  string
	users   map[int64]*userDatamodel.User
	ackErr  error
	ackName string
}

func (m *mockDutyRepo) GetByName(_ context.Context, name string) (*dutyDatamodel.Duty, error) {
	if name == m.failOn {
		return nil, stdErrors.New("connection refused")
	}
	row, ok := m.rows[name]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (m *mockDutyRepo) Acknowledge(_ context.Context, name string, userID int64, at time.Time) error {
	if m.ackErr != nil {
		return m.ackErr
	}
	m.ackName = name
	m.rows[name] = &dutyDatamodel.Duty{Name: name, LastChecked: at, LastUserID: &userID, LastUser: m.users[userID]}
	return nil
}

type stubMail map[string]int

func (s stubMail) Count(_ context.Context, folder string) (int, error) {
	n, ok := s[folder]
	if !ok {
		return 0, &mailbox.BackendError{Folder: folder, Err: stdErrors.New("timeout")}
	}
	return n, nil
}

type stubPrinters struct {
	n   int64
	err error
}

func (s stubPrinters) CountOutstanding(context.Context) (int64, error) {
	return s.n, s.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

var _ = Describe("Service", func() {
	var (
		ctx       context.Context
		now       time.Time
		repo      *mockDutyRepo
		tickets   *httptest.Server
		assignee  string
		publisher *recordingPublisher
		svc       *dailyduty.Service
		jane      *coreuser.User
	)

	statusOf := func(statuses []dailyduty.Status, name string) dailyduty.Status {
		for _, st := range statuses {
			if st.Name == name {
				return st
			}
		}
		Fail("no status for " + name)
		return dailyduty.Status{}
	}

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
		jane = &coreuser.User{ID: 1, Username: "jdoe", FirstName: "Jane", LastName: "Doe"}
		janeRow := &userDatamodel.User{ID: 1, Username: "jdoe", FirstName: "Jane", LastName: "Doe"}

		repo = &mockDutyRepo{
			users: map[int64]*userDatamodel.User{1: janeRow},
			rows: map[string]*dutyDatamodel.Duty{
				dailyduty.DutyEmail:           {Name: dailyduty.DutyEmail, LastChecked: now.Add(-time.Hour), LastUser: janeRow},
				dailyduty.DutyVoicemail:       {Name: dailyduty.DutyVoicemail, LastChecked: now.Add(-30 * time.Hour), LastUser: janeRow},
				dailyduty.DutyTickets:         {Name: dailyduty.DutyTickets, LastChecked: now.Add(-2 * time.Hour)},
				dailyduty.DutyPrinterRequests: {Name: dailyduty.DutyPrinterRequests, LastChecked: now.Add(-time.Minute), LastUser: janeRow},
			},
		}

		tickets = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assignee = r.URL.Query().Get("assignee")
			_, _ = w.Write([]byte(`{"count": 7}`))
		}))

		publisher = &recordingPublisher{}
		svc = dailyduty.NewService(repo, dailyduty.Backends{
			Mail:     stubMail{mailbox.FolderEmail: 12},
			Tickets:  ticketing.NewClient(ticketing.Config{BaseURL: tickets.URL}, logger.Discard()),
			Printers: stubPrinters{n: 2},
		}, publisher, logger.Discard()).WithClock(func() time.Time { return now })
	})

	AfterEach(func() {
		tickets.Close()
	})

	Describe("Statuses", func() {
		It("reports every duty in order", func() {
			statuses, err := svc.Statuses(ctx, jane)
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(4))
			Expect(statuses[0].Name).To(Equal(dailyduty.DutyEmail))
			Expect(statuses[3].Name).To(Equal(dailyduty.DutyPrinterRequests))
		})

		It("combines live counts with freshness", func() {
			statuses, _ := svc.Statuses(ctx, jane)

			email := statusOf(statuses, dailyduty.DutyEmail)
			Expect(email.Count.String()).To(Equal("12"))
			Expect(email.Status).To(Equal(dailyduty.StatusOK))
			Expect(email.LastUser).To(Equal("Jane Doe"))

			Expect(statusOf(statuses, dailyduty.DutyPrinterRequests).Count.String()).To(Equal("2"))
		})

		It("counts tickets for the requesting user's full name", func() {
			statuses, _ := svc.Statuses(ctx, jane)
			Expect(statusOf(statuses, dailyduty.DutyTickets).Count.String()).To(Equal("7"))
			Expect(assignee).To(Equal("Jane Doe"))
		})

		It("keeps the stored status when a backend fails", func() {
			statuses, _ := svc.Statuses(ctx, jane)

			voicemail := statusOf(statuses, dailyduty.DutyVoicemail)
			Expect(voicemail.Count.String()).To(Equal("?"))
			Expect(voicemail.Status).To(Equal(dailyduty.StatusStale))
			Expect(voicemail.LastUser).To(Equal("Jane Doe"))
		})

		It("shows ? when the ticketing backend is down", func() {
			tickets.Close()

			statuses, _ := svc.Statuses(ctx, jane)
			tk := statusOf(statuses, dailyduty.DutyTickets)
			Expect(tk.Count.String()).To(Equal("?"))
			Expect(tk.Status).To(Equal(dailyduty.StatusOK))
			Expect(tk.LastUser).To(Equal(dailyduty.DeletedUser))
		})

		It("degrades only the duty whose row cannot be read", func() {
			repo.failOn = dailyduty.DutyEmail
			delete(repo.rows, dailyduty.DutyTickets)

			statuses, err := svc.Statuses(ctx, jane)
			Expect(err).NotTo(HaveOccurred())

			for _, name := range []string{dailyduty.DutyEmail, dailyduty.DutyTickets} {
				st := statusOf(statuses, name)
				Expect(st.Count.String()).To(Equal("?"))
				Expect(st.Status).To(Equal(dailyduty.StatusStale))
				Expect(st.LastChecked).To(Equal("2024-03-02 12:00"))
				Expect(st.LastUser).To(Equal(dailyduty.ConnectionError))
			}
			Expect(statusOf(statuses, dailyduty.DutyPrinterRequests).LastUser).To(Equal("Jane Doe"))
		})

		It("shows ? when the printer request store fails", func() {
			svc = dailyduty.NewService(repo, dailyduty.Backends{
				Printers: stubPrinters{err: stdErrors.New("db down")},
			}, nil, logger.Discard()).WithClock(func() time.Time { return now })

			statuses, _ := svc.Statuses(ctx, jane)
			Expect(statusOf(statuses, dailyduty.DutyPrinterRequests).Count.String()).To(Equal("?"))
			Expect(statusOf(statuses, dailyduty.DutyEmail).Count.String()).To(Equal("?"))
		})

		It("requires a user", func() {
			_, err := svc.Statuses(ctx, nil)
			Expect(err).To(Equal(errors.ErrInvalidToken))
		})
	})

	Describe("Acknowledge", func() {
		It("stamps the duty and returns it fresh", func() {
			st, err := svc.Acknowledge(ctx, dailyduty.DutyVoicemail, jane)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.ackName).To(Equal(dailyduty.DutyVoicemail))
			Expect(st.Status).To(Equal(dailyduty.StatusOK))
			Expect(st.LastChecked).To(Equal("2024-03-02 12:00"))
			Expect(st.LastUser).To(Equal("Jane Doe"))
		})

		It("publishes an acknowledgement event", func() {
			_, err := svc.Acknowledge(ctx, dailyduty.DutyEmail, jane)
			Expect(err).NotTo(HaveOccurred())

			Expect(publisher.events).To(HaveLen(1))
			e := publisher.events[0].(*events.DutyAcknowledgedEvent)
			Expect(e.Duty).To(Equal(dailyduty.DutyEmail))
			Expect(e.Username).To(Equal("jdoe"))
			Expect(e.At()).To(Equal(now))
		})

		It("rejects unknown duties", func() {
			_, err := svc.Acknowledge(ctx, "laundry", jane)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(errors.ErrCodeDutyNotFound))
			Expect(publisher.events).To(BeEmpty())
		})

		It("reports store failures", func() {
			repo.ackErr = stdErrors.New("read only")

			_, err := svc.Acknowledge(ctx, dailyduty.DutyEmail, jane)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeInternal))
			Expect(publisher.events).To(BeEmpty())
		})
	})
})
