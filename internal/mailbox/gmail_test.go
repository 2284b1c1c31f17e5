package mailbox_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/mailbox"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

var _ = Describe("Gmail", func() {
	var (
		server  *httptest.Server
		counter *mailbox.Gmail
		paths   []string
	)

	BeforeEach(func() {
		paths = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			switch r.URL.Path {
			case "/gmail/v1/users/helpdesk/labels/INBOX":
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "INBOX", "messagesTotal": 12})
			case "/gmail/v1/users/helpdesk/labels/Label_7":
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "Label_7", "messagesTotal": 3})
			default:
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
			}
		}))

		ctx := context.Background()
		svc, err := gmail.NewService(ctx,
			option.WithEndpoint(server.URL+"/"),
			option.WithHTTPClient(server.Client()),
		)
		Expect(err).NotTo(HaveOccurred())

		counter = mailbox.NewGmailFromService(svc, internal.MailConfig{
			User:           "helpdesk",
			InboxLabel:     "INBOX",
			VoicemailLabel: "Label_7",
		}, logger.Discard())
	})

	AfterEach(func() {
		server.Close()
	})

	It("counts inbox messages", func() {
		n, err := counter.Count(context.Background(), mailbox.FolderEmail)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(12))
	})

	It("counts voicemail through its label", func() {
		n, err := counter.Count(context.Background(), mailbox.FolderVoicemail)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))
	})

	It("wraps API failures in a BackendError", func() {
		broken := mailbox.NewGmailFromService(newService(server), internal.MailConfig{
			User:       "helpdesk",
			InboxLabel: "Missing",
		}, logger.Discard())

		_, err := broken.Count(context.Background(), mailbox.FolderEmail)
		var backendErr *mailbox.BackendError
		Expect(err).To(BeAssignableToTypeOf(backendErr))
		Expect(err.(*mailbox.BackendError).Folder).To(Equal(mailbox.FolderEmail))
	})

	It("refuses folders without a label", func() {
		unconfigured := mailbox.NewGmailFromService(newService(server), internal.MailConfig{}, logger.Discard())

		_, err := unconfigured.Count(context.Background(), mailbox.FolderVoicemail)
		Expect(err).To(MatchError(mailbox.ErrFolderNotConfigured))
		Expect(paths).To(BeEmpty())
	})
})

func newService(server *httptest.Server) *gmail.Service {
	svc, err := gmail.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	Expect(err).NotTo(HaveOccurred())
	return svc
}
