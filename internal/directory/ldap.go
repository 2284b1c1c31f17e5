package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// matchingRuleInChain makes the directory resolve nested membership.
const matchingRuleInChain = "1.2.840.113556.1.4.1941"

type Config struct {
	URL           string
	BindDN        string
	BindPassword  string
	BaseDN        string
	UserAttribute string
	UserDomain    string
	Timeout       time.Duration
}

var userAttributes = []string{"distinguishedName", "givenName", "sn", "mail", "displayName"}

// LDAP talks to an Active Directory style server. Every call opens its own
// connection with the service account bound.
type LDAP struct {
	cfg    Config
	logger *slog.Logger
	dial   func(url string) (*ldap.Conn, error)
}

func NewLDAP(cfg Config, logger *slog.Logger) *LDAP {
	if cfg.UserAttribute == "" {
		cfg.UserAttribute = "sAMAccountName"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &LDAP{
		cfg:    cfg,
		logger: logger,
		dial: func(url string) (*ldap.Conn, error) {
			return ldap.DialURL(url, ldap.DialWithDialer(&net.Dialer{Timeout: cfg.Timeout}))
		},
	}
}

func (d *LDAP) connect(ctx context.Context, op string) (*ldap.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LookupError{Op: op, Err: err}
	}

	conn, err := d.dial(d.cfg.URL)
	if err != nil {
		return nil, &LookupError{Op: op, Err: err}
	}
	conn.SetTimeout(d.cfg.Timeout)

	if err := conn.Bind(d.cfg.BindDN, d.cfg.BindPassword); err != nil {
		conn.Close()
		return nil, &LookupError{Op: op, Err: fmt.Errorf("service bind: %w", err)}
	}
	return conn, nil
}

func (d *LDAP) Authenticate(ctx context.Context, username, password string) (*Entry, error) {
	// an empty password would be an unauthenticated bind and always succeed
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	conn, err := d.connect(ctx, "authenticate")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	entry, err := d.findUser(conn, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := conn.Bind(entry.DN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, &LookupError{Op: "authenticate", Err: err}
	}

	d.logger.Debug("directory bind succeeded", "username", username)
	return entry, nil
}

func (d *LDAP) UserGroups(ctx context.Context, username string) ([]string, error) {
	conn, err := d.connect(ctx, "user groups")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	entry, err := d.findUser(conn, username)
	if err != nil {
		return nil, err
	}

	req := ldap.NewSearchRequest(
		d.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		NestedGroupsFilter(entry.DN),
		[]string{"distinguishedName"},
		nil,
	)
	res, err := conn.SearchWithPaging(req, 500)
	if err != nil {
		return nil, &LookupError{Op: "user groups", Err: err}
	}

	groups := make([]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		groups = append(groups, e.DN)
	}
	return groups, nil
}

func (d *LDAP) GroupMembers(ctx context.Context, groupDN string) ([]Member, error) {
	conn, err := d.connect(ctx, "group members")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	probe := ldap.NewSearchRequest(
		groupDN,
		ldap.ScopeBaseObject, ldap.NeverDerefAliases, 1, 0, false,
		"(objectClass=group)",
		[]string{"distinguishedName"},
		nil,
	)
	res, err := conn.Search(probe)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject) || ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidDNSyntax) {
			return nil, ErrGroupNotFound
		}
		return nil, &LookupError{Op: "group members", Err: err}
	}
	if len(res.Entries) == 0 {
		return nil, ErrGroupNotFound
	}

	req := ldap.NewSearchRequest(
		d.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		GroupMembersFilter(groupDN),
		[]string{"distinguishedName", d.cfg.UserAttribute, "displayName"},
		nil,
	)
	res, err = conn.SearchWithPaging(req, 500)
	if err != nil {
		return nil, &LookupError{Op: "group members", Err: err}
	}

	members := make([]Member, 0, len(res.Entries))
	for _, e := range res.Entries {
		members = append(members, Member{
			DN:          e.DN,
			Username:    e.GetAttributeValue(d.cfg.UserAttribute),
			DisplayName: e.GetAttributeValue("displayName"),
		})
	}
	return members, nil
}

func (d *LDAP) findUser(conn *ldap.Conn, username string) (*Entry, error) {
	attrs := append([]string{d.cfg.UserAttribute}, userAttributes...)
	req := ldap.NewSearchRequest(
		d.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 2, 0, false,
		UserFilter(d.cfg.UserAttribute, d.accountName(username)),
		attrs,
		nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		return nil, &LookupError{Op: "find user", Err: err}
	}
	if len(res.Entries) != 1 {
		return nil, ErrUserNotFound
	}
	return EntryFromLDAP(res.Entries[0], d.cfg.UserAttribute), nil
}

// accountName strips the configured mail domain so "jdoe@example.edu" and
// "jdoe" find the same account.
func (d *LDAP) accountName(username string) string {
	if d.cfg.UserDomain != "" {
		username = strings.TrimSuffix(username, "@"+d.cfg.UserDomain)
	}
	return username
}

func UserFilter(attribute, username string) string {
	return fmt.Sprintf("(&(objectClass=user)(%s=%s))", attribute, ldap.EscapeFilter(username))
}

func NestedGroupsFilter(userDN string) string {
	return fmt.Sprintf("(&(objectClass=group)(member:%s:=%s))", matchingRuleInChain, ldap.EscapeFilter(userDN))
}

func GroupMembersFilter(groupDN string) string {
	return fmt.Sprintf("(&(objectClass=user)(memberOf:%s:=%s))", matchingRuleInChain, ldap.EscapeFilter(groupDN))
}

func EntryFromLDAP(e *ldap.Entry, userAttribute string) *Entry {
	return &Entry{
		DN:        e.DN,
		Username:  e.GetAttributeValue(userAttribute),
		FirstName: e.GetAttributeValue("givenName"),
		LastName:  e.GetAttributeValue("sn"),
		Email:     e.GetAttributeValue("mail"),
	}
}
