package group_test

import (
	"context"
	stdErrors "errors"
	"net/http"
	"strings"

	errors "github.com/rowalls/uh-internal-project/internal"
	directoryDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/directory"
	"github.com/rowalls/uh-internal-project/internal/directory"
	"github.com/rowalls/uh-internal-project/internal/group"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockRepo struct {
	rows   []*directoryDatamodel.Group
	nextID int64
}

func (m *mockRepo) List(context.Context) ([]*directoryDatamodel.Group, error) {
	return m.rows, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*directoryDatamodel.Group, error) {
	for _, g := range m.rows {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) GetByDN(_ context.Context, dn string) (*directoryDatamodel.Group, error) {
	for _, g := range m.rows {
		if strings.EqualFold(g.DistinguishedName, dn) {
			return g, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) Create(_ context.Context, g *directoryDatamodel.Group) error {
	m.nextID++
	g.ID = m.nextID
	m.rows = append(m.rows, g)
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	kept := m.rows[:0]
	for _, g := range m.rows {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	m.rows = kept
	return nil
}

type mockDirectory struct {
	members map[string][]directory.Member
	err     error
	calls   int
}

func (m *mockDirectory) GroupMembers(_ context.Context, dn string) ([]directory.Member, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	members, ok := m.members[dn]
	if !ok {
		return nil, directory.ErrGroupNotFound
	}
	return members, nil
}

func fieldOf(err error) string {
	appErr, ok := errors.IsAppError(err)
	Expect(ok).To(BeTrue())
	details, ok := appErr.Details.(errors.ValidationErrors)
	Expect(ok).To(BeTrue())
	Expect(details.Errors).NotTo(BeEmpty())
	return details.Errors[0].Field
}

var _ = Describe("Group Service", func() {
	const techsDN = "CN=Techs, OU=Groups, DC=example, DC=edu"

	var (
		ctx  context.Context
		repo *mockRepo
		dir  *mockDirectory
		svc  *group.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = &mockRepo{}
		dir = &mockDirectory{members: map[string][]directory.Member{
			techsDN: {{DN: "CN=Jane Doe,DC=example,DC=edu", Username: "jdoe", DisplayName: "Jane Doe"}},
		}}
		svc = group.NewService(repo, dir, logger.Discard())
	})

	Describe("Create", func() {
		It("normalizes the DN and defaults the display name", func() {
			g, err := svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: "CN = Techs ,OU=Groups, DC=example,DC=edu"})
			Expect(err).NotTo(HaveOccurred())
			Expect(g.DistinguishedName).To(Equal(techsDN))
			Expect(g.DisplayName).To(Equal("Techs"))
			Expect(g.ID).To(BeNumerically(">", 0))
		})

		It("rejects a malformed DN without asking the directory", func() {
			_, err := svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: "CN=Techs,Groups"})
			Expect(err).To(HaveOccurred())
			Expect(fieldOf(err)).To(Equal("distinguished_name"))
			Expect(dir.calls).To(BeZero())
		})

		It("rejects a group the directory does not know", func() {
			_, err := svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: "CN=Ghosts,DC=example,DC=edu"})
			Expect(err).To(HaveOccurred())
			Expect(fieldOf(err)).To(Equal("distinguished_name"))
			Expect(repo.rows).To(BeEmpty())
		})

		It("reports an unreachable directory as an external failure", func() {
			dir.err = &directory.LookupError{Op: "search", Err: stdErrors.New("connection refused")}

			_, err := svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: techsDN})
			Expect(err).To(HaveOccurred())
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadGateway))
			Expect(appErr.Code).To(Equal(errors.ErrCodeDirectoryUnavailable))
		})

		It("refuses duplicates", func() {
			_, err := svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: techsDN})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: techsDN, DisplayName: "Again"})
			Expect(err).To(HaveOccurred())
			appErr, _ := errors.IsAppError(err)
			Expect(appErr.StatusCode).To(Equal(http.StatusConflict))
		})
	})

	Describe("Members", func() {
		It("expands the tree for a mirrored group", func() {
			created, _ := svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: techsDN})

			g, members, err := svc.Members(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.DisplayName).To(Equal("Techs"))
			Expect(members).To(ConsistOf(group.Member{Username: "jdoe", DisplayName: "Jane Doe"}))
		})

		It("returns not found for an unknown id", func() {
			_, _, err := svc.Members(ctx, 77)
			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Mirrored", func() {
		It("matches DNs regardless of case and spacing", func() {
			_, _ = svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: techsDN})

			groups, err := svc.Mirrored(ctx, []string{"cn=techs,ou=groups,dc=example,dc=edu", "CN=Other,DC=edu"})
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(HaveLen(1))
			Expect(groups[0].DisplayName).To(Equal("Techs"))
		})
	})

	Describe("Delete", func() {
		It("removes an existing group", func() {
			created, _ := svc.Create(ctx, group.CreateGroupDTO{DistinguishedName: techsDN})
			Expect(svc.Delete(ctx, created.ID)).To(Succeed())
			Expect(repo.rows).To(BeEmpty())
		})

		It("reports a missing group", func() {
			Expect(svc.Delete(ctx, 9)).To(HaveOccurred())
		})
	})
})
