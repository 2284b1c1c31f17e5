package mailbox

import (
	"context"
	stdErrors "errors"
	"fmt"
)

const (
	FolderEmail     = "email"
	FolderVoicemail = "voicemail"
)

var ErrFolderNotConfigured = stdErrors.New("mailbox folder not configured")

// Counter reports how many messages sit in one of the helpdesk folders.
type Counter interface {
	Count(ctx context.Context, folder string) (int, error)
}

// BackendError wraps any failure talking to the mail backend.
type BackendError struct {
	Folder string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("mailbox %s: %v", e.Folder, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
