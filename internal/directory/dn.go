package directory

import (
	"errors"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

var ErrInvalidDN = errors.New("invalid distinguished name")

// NormalizeDN trims whitespace around every "type=value" piece and joins them
// with ", ". A piece without exactly one "=" is rejected.
func NormalizeDN(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidDN
	}

	pieces := strings.Split(raw, ",")
	normalized := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		kv := strings.Split(piece, "=")
		if len(kv) != 2 {
			return "", ErrInvalidDN
		}
		attr, value := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		if attr == "" || value == "" {
			return "", ErrInvalidDN
		}
		normalized = append(normalized, attr+"="+value)
	}

	dn := strings.Join(normalized, ", ")
	if _, err := ldap.ParseDN(dn); err != nil {
		return "", ErrInvalidDN
	}
	return dn, nil
}

// SameDN compares two DNs the way the directory does: attribute types and
// values are case-insensitive and spacing is not significant.
func SameDN(a, b string) bool {
	pa, err := ldap.ParseDN(a)
	if err != nil {
		return false
	}
	pb, err := ldap.ParseDN(b)
	if err != nil {
		return false
	}
	return pa.EqualFold(pb)
}

// CommonName returns the first CN value of dn, or dn itself when it has none.
func CommonName(dn string) string {
	parsed, err := ldap.ParseDN(dn)
	if err != nil {
		return dn
	}
	for _, rdn := range parsed.RDNs {
		for _, attr := range rdn.Attributes {
			if strings.EqualFold(attr.Type, "cn") {
				return attr.Value
			}
		}
	}
	return dn
}
