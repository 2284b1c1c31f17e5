package user

import (
	"strings"
	"time"
)

// User is the authenticated principal shared across request handling.
type User struct {
	ID                  int64
	Username            string
	FirstName           string
	LastName            string
	Email               string
	IsActive            bool
	OnityComplete       bool
	SRSComplete         bool
	PayrollComplete     bool
	OrientationComplete bool
	Groups              []Group
	Flair               string
	LastLogin           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Group is a locally mirrored directory group the user belongs to.
type Group struct {
	ID                int64
	DistinguishedName string
	DisplayName       string
}

// FullName joins first and last names, dropping the " - ADMIN" suffix that
// administrative directory accounts carry.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return strings.TrimSpace(strings.Replace(name, " - ADMIN", "", 1))
}

// Alias is the short login name without the admin suffix or mail domain.
func (u *User) Alias() string {
	alias := strings.Replace(u.Username, "-admin", "", 1)
	if i := strings.Index(alias, "@"); i >= 0 {
		alias = alias[:i]
	}
	return alias
}

func (u *User) GroupDNs() []string {
	dns := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		dns = append(dns, g.DistinguishedName)
	}
	return dns
}
