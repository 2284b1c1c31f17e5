package mailbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rowalls/uh-internal-project/internal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Gmail counts messages per label of a shared helpdesk mailbox.
type Gmail struct {
	svc    *gmail.Service
	user   string
	labels map[string]string
	logger *slog.Logger
}

// NewGmail authenticates with the stored refresh token. Extra client options
// are applied after the OAuth client and may override it.
func NewGmail(ctx context.Context, cfg internal.MailConfig, logger *slog.Logger, opts ...option.ClientOption) (*Gmail, error) {
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{gmail.GmailReadonlyScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{RefreshToken: cfg.RefreshToken}

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(conf.Client(ctx, token))}, opts...)
	svc, err := gmail.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return NewGmailFromService(svc, cfg, logger), nil
}

func NewGmailFromService(svc *gmail.Service, cfg internal.MailConfig, logger *slog.Logger) *Gmail {
	user := cfg.User
	if user == "" {
		user = "me"
	}
	return &Gmail{
		svc:  svc,
		user: user,
		labels: map[string]string{
			FolderEmail:     cfg.InboxLabel,
			FolderVoicemail: cfg.VoicemailLabel,
		},
		logger: logger,
	}
}

func (g *Gmail) Count(ctx context.Context, folder string) (int, error) {
	label := g.labels[folder]
	if label == "" {
		return 0, &BackendError{Folder: folder, Err: ErrFolderNotConfigured}
	}

	l, err := g.svc.Users.Labels.Get(g.user, label).Context(ctx).Do()
	if err != nil {
		g.logger.Warn("mailbox count failed", "folder", folder, "label", label, "error", err)
		return 0, &BackendError{Folder: folder, Err: err}
	}

	g.logger.Debug("mailbox counted", "folder", folder, "messages", l.MessagesTotal)
	return int(l.MessagesTotal), nil
}
