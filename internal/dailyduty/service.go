package dailyduty

import (
	"context"
	"log/slog"
	"time"

	errors "github.com/rowalls/uh-internal-project/internal"
	dutyDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/dailyduty"
	"github.com/rowalls/uh-internal-project/internal/core/events"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/mailbox"
)

type RepositoryAPI interface {
	GetByName(ctx context.Context, name string) (*dutyDatamodel.Duty, error)
	// Acknowledge stamps the duty, creating its row when missing.
	Acknowledge(ctx context.Context, name string, userID int64, at time.Time) error
}

type TicketCounter interface {
	OpenTicketCount(ctx context.Context, assignee string) (int, error)
}

// PrinterRequestCounter counts printer requests that were not delivered yet.
type PrinterRequestCounter interface {
	CountOutstanding(ctx context.Context) (int64, error)
}

type Backends struct {
	Mail     mailbox.Counter
	Tickets  TicketCounter
	Printers PrinterRequestCounter
}

type Service struct {
	repo     RepositoryAPI
	backends Backends
	events   events.Publisher
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo RepositoryAPI, backends Backends, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		backends: backends,
		events:   publisher,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Statuses reports every duty. Failures only degrade the duty they hit.
func (s *Service) Statuses(ctx context.Context, u *coreuser.User) ([]Status, error) {
	if u == nil {
		return nil, errors.ErrInvalidToken
	}

	statuses := make([]Status, 0, len(Names))
	for _, name := range Names {
		statuses = append(statuses, s.status(ctx, name, u))
	}
	return statuses, nil
}

// Acknowledge marks a duty as checked by u right now.
func (s *Service) Acknowledge(ctx context.Context, name string, u *coreuser.User) (*Status, error) {
	if u == nil {
		return nil, errors.ErrInvalidToken
	}
	if !IsKnown(name) {
		return nil, errors.NewNotFoundError("daily duty not found", errors.ErrCodeDutyNotFound)
	}

	at := s.now()
	if err := s.repo.Acknowledge(ctx, name, u.ID, at); err != nil {
		s.logger.Error("failed to acknowledge duty", "duty", name, "username", u.Username, "error", err)
		return nil, errors.NewInternalError("failed to acknowledge duty", err)
	}
	s.logger.Info("duty acknowledged", "duty", name, "username", u.Username)

	if s.events != nil {
		if err := s.events.Publish(ctx, events.NewDutyAcknowledgedEvent(name, u.ID, u.Username, at)); err != nil {
			s.logger.Warn("failed to publish duty acknowledgement", "duty", name, "error", err)
		}
	}

	st := s.status(ctx, name, u)
	return &st, nil
}

func (s *Service) status(ctx context.Context, name string, u *coreuser.User) Status {
	row, err := s.repo.GetByName(ctx, name)
	if err != nil || row == nil {
		s.logger.Error("duty state unavailable", "duty", name, "error", err)
		return Unavailable(name, s.now())
	}
	return Evaluate(FromDataModel(row), s.count(ctx, name, u), s.now())
}

func (s *Service) count(ctx context.Context, name string, u *coreuser.User) Count {
	var (
		n   int
		err error
	)

	switch name {
	case DutyEmail, DutyVoicemail:
		if s.backends.Mail == nil {
			return UnknownCount()
		}
		n, err = s.backends.Mail.Count(ctx, name)
	case DutyTickets:
		if s.backends.Tickets == nil {
			return UnknownCount()
		}
		n, err = s.backends.Tickets.OpenTicketCount(ctx, u.FullName())
	case DutyPrinterRequests:
		if s.backends.Printers == nil {
			return UnknownCount()
		}
		var total int64
		total, err = s.backends.Printers.CountOutstanding(ctx)
		n = int(total)
	default:
		return UnknownCount()
	}

	if err != nil {
		s.logger.Warn("duty count unavailable", "duty", name, "error", err)
		return UnknownCount()
	}
	return KnownCount(n)
}
