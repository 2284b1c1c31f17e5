package directory_test

import (
	"context"
	"errors"

	"github.com/go-ldap/ldap/v3"
	"github.com/rowalls/uh-internal-project/internal/directory"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LDAP directory", func() {
	Describe("filters", func() {
		It("escapes user input in the account filter", func() {
			Expect(directory.UserFilter("sAMAccountName", "j*doe)")).
				To(Equal(`(&(objectClass=user)(sAMAccountName=j\2adoe\29))`))
		})

		It("asks for nested group membership", func() {
			Expect(directory.NestedGroupsFilter("CN=jdoe,DC=edu")).
				To(Equal("(&(objectClass=group)(member:1.2.840.113556.1.4.1941:=CN=jdoe,DC=edu))"))
		})

		It("expands group trees", func() {
			Expect(directory.GroupMembersFilter("CN=techs,DC=edu")).
				To(Equal("(&(objectClass=user)(memberOf:1.2.840.113556.1.4.1941:=CN=techs,DC=edu))"))
		})
	})

	It("maps directory attributes onto an entry", func() {
		e := ldap.NewEntry("CN=jdoe,OU=People,DC=edu", map[string][]string{
			"sAMAccountName": {"jdoe"},
			"givenName":      {"Jane"},
			"sn":             {"Doe"},
			"mail":           {"jdoe@example.edu"},
		})

		entry := directory.EntryFromLDAP(e, "sAMAccountName")
		Expect(entry.DN).To(Equal("CN=jdoe,OU=People,DC=edu"))
		Expect(entry.Username).To(Equal("jdoe"))
		Expect(entry.FirstName).To(Equal("Jane"))
		Expect(entry.LastName).To(Equal("Doe"))
		Expect(entry.Email).To(Equal("jdoe@example.edu"))
	})

	Context("when the server is unreachable", func() {
		var d *directory.LDAP

		BeforeEach(func() {
			d = directory.NewLDAP(directory.Config{
				URL:    "ldap://127.0.0.1:1",
				BaseDN: "DC=edu",
			}, logger.Discard())
		})

		It("reports a lookup failure, not a missing group", func() {
			_, err := d.GroupMembers(context.Background(), "CN=techs,DC=edu")
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, directory.ErrGroupNotFound)).To(BeFalse())
			Expect(directory.IsLookupError(err)).To(BeTrue())
		})

		It("rejects empty passwords without dialing", func() {
			_, err := d.Authenticate(context.Background(), "jdoe", "")
			Expect(err).To(MatchError(directory.ErrInvalidCredentials))
		})
	})
})
