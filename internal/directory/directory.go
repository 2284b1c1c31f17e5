package directory

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrGroupNotFound means the directory answered and the group does not exist.
	ErrGroupNotFound = errors.New("directory group not found")
	// ErrUserNotFound means the directory answered and has no such account.
	ErrUserNotFound = errors.New("directory user not found")
	// ErrInvalidCredentials means the bind was rejected.
	ErrInvalidCredentials = errors.New("directory rejected credentials")
)

// LookupError means the directory could not answer at all. Callers must not
// treat it as "not found".
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("directory %s failed: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// Entry is a user account as the directory reports it.
type Entry struct {
	DN        string
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// Member is one account reached by expanding a group tree.
type Member struct {
	DN          string
	Username    string
	DisplayName string
}

type Directory interface {
	// Authenticate binds as the user and returns the account on success.
	Authenticate(ctx context.Context, username, password string) (*Entry, error)
	// UserGroups returns the DNs of every group the user belongs to, nested
	// membership included.
	UserGroups(ctx context.Context, username string) ([]string, error)
	// GroupMembers expands the group tree rooted at groupDN.
	GroupMembers(ctx context.Context, groupDN string) ([]Member, error)
}
