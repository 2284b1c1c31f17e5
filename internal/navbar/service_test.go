package navbar_test

import (
	"context"
	"errors"
	"time"

	appErrors "github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/cache"
	navbarDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/navbar"
	permissionDatamodel "github.com/rowalls/uh-internal-project/internal/core/datamodel/permission"
	coreuser "github.com/rowalls/uh-internal-project/internal/core/user"
	"github.com/rowalls/uh-internal-project/internal/navbar"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockLinkRepo struct {
	rows      map[int64]*navbarDatamodel.Link
	classes   map[int64]string
	nextID    int64
	listCalls int
	listErr   error
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{rows: map[int64]*navbarDatamodel.Link{}, classes: map[int64]string{1: "computers", 2: "navbar_admin"}}
}

func (m *mockLinkRepo) add(l *navbarDatamodel.Link) *navbarDatamodel.Link {
	m.nextID++
	l.ID = m.nextID
	m.rows[l.ID] = l
	return l
}

func (m *mockLinkRepo) List(context.Context) ([]*navbarDatamodel.Link, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*navbarDatamodel.Link, 0, len(m.rows))
	for _, l := range m.rows {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockLinkRepo) GetByID(_ context.Context, id int64) (*navbarDatamodel.Link, error) {
	return m.rows[id], nil
}

func (m *mockLinkRepo) Create(_ context.Context, l *navbarDatamodel.Link, classIDs []int64) error {
	m.attach(l, classIDs)
	m.add(l)
	return nil
}

func (m *mockLinkRepo) Update(_ context.Context, l *navbarDatamodel.Link, classIDs []int64) error {
	m.attach(l, classIDs)
	m.rows[l.ID] = l
	return nil
}

func (m *mockLinkRepo) Delete(_ context.Context, id int64) error {
	for childID, l := range m.rows {
		if l.ParentID != nil && *l.ParentID == id {
			delete(m.rows, childID)
		}
	}
	delete(m.rows, id)
	return nil
}

func (m *mockLinkRepo) HasChildren(_ context.Context, id int64) (bool, error) {
	for _, l := range m.rows {
		if l.ParentID != nil && *l.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLinkRepo) CountClasses(_ context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.classes[id]; ok {
			n++
		}
	}
	return n, nil
}

func (m *mockLinkRepo) attach(l *navbarDatamodel.Link, classIDs []int64) {
	l.PermissionClasses = nil
	for _, id := range classIDs {
		l.PermissionClasses = append(l.PermissionClasses, permissionDatamodel.Class{ID: id, Name: m.classes[id]})
	}
}

type stubAccess struct {
	classes map[string]bool
	err     error
}

func (s *stubAccess) HasAny(_ context.Context, _ string, classes []string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, c := range classes {
		if s.classes[c] {
			return true, nil
		}
	}
	return false, nil
}

var _ = Describe("Navbar Service", func() {
	var (
		ctx    context.Context
		now    time.Time
		repo   *mockLinkRepo
		access *stubAccess
		svc    *navbar.Service
		jdoe   *coreuser.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)
		repo = newMockLinkRepo()
		access = &stubAccess{classes: map[string]bool{"computers": true}}
		mem := cache.NewMemory(cache.WithClock(func() time.Time { return now }))
		svc = navbar.NewService(repo, access, mem, routes, navbar.Options{StaticURL: "/static/"}, logger.Discard())
		jdoe = &coreuser.User{ID: 1, Username: "jdoe"}

		inventory := repo.add(&navbarDatamodel.Link{DisplayName: "Inventory", SequenceIndex: 1, ShowToAll: true})
		repo.add(&navbarDatamodel.Link{
			DisplayName: "Computers", SequenceIndex: 1, ParentID: &inventory.ID, RouteName: ptr("computers"),
			PermissionClasses: []permissionDatamodel.Class{{ID: 1, Name: "computers"}},
		})
		repo.add(&navbarDatamodel.Link{
			DisplayName: "Links", SequenceIndex: 2, ParentID: &inventory.ID, RouteName: ptr("printers"),
			PermissionClasses: []permissionDatamodel.Class{{ID: 2, Name: "navbar_admin"}},
		})
	})

	Describe("Render", func() {
		It("shows only links the user may see", func() {
			nav, err := svc.Render(ctx, jdoe)
			Expect(err).NotTo(HaveOccurred())
			Expect(nav.Links).To(HaveLen(1))
			Expect(names(nav.Links[0].Children)).To(Equal([]string{"Computers"}))
			Expect(nav.HTML).To(ContainSubstring(`id="computers_link"`))
			Expect(nav.HTML).NotTo(ContainSubstring("links_link"))
		})

		It("serves the identical result from cache inside the window", func() {
			first, err := svc.Render(ctx, jdoe)
			Expect(err).NotTo(HaveOccurred())

			repo.add(&navbarDatamodel.Link{DisplayName: "New", SequenceIndex: 9, ShowToAll: true})
			now = now.Add(3 * time.Hour)

			second, err := svc.Render(ctx, jdoe)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.HTML).To(Equal(first.HTML))
			Expect(repo.listCalls).To(Equal(1))
		})

		It("rebuilds after the entry expires", func() {
			_, _ = svc.Render(ctx, jdoe)
			repo.add(&navbarDatamodel.Link{DisplayName: "New", SequenceIndex: 9, ShowToAll: true})
			now = now.Add(4*time.Hour + time.Minute)

			nav, err := svc.Render(ctx, jdoe)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.listCalls).To(Equal(2))
			Expect(names(nav.Links)).To(ContainElement("New"))
		})

		It("caches per user", func() {
			_, _ = svc.Render(ctx, jdoe)
			_, _ = svc.Render(ctx, &coreuser.User{ID: 2, Username: "asmith"})
			Expect(repo.listCalls).To(Equal(2))
		})

		It("hides gated links and skips caching when permission checks fail", func() {
			access.err = errors.New("db down")

			nav, err := svc.Render(ctx, jdoe)
			Expect(err).NotTo(HaveOccurred())
			Expect(nav.Links[0].Children).To(BeEmpty())

			access.err = nil
			nav, err = svc.Render(ctx, jdoe)
			Expect(err).NotTo(HaveOccurred())
			Expect(nav.Links[0].Children).To(HaveLen(1))
			Expect(repo.listCalls).To(Equal(2))
		})

		It("fails when the links cannot be loaded", func() {
			repo.listErr = errors.New("db down")
			_, err := svc.Render(ctx, jdoe)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("link administration", func() {
		field := func(err error) string {
			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			details := appErr.Details.(appErrors.ValidationErrors)
			return details.Errors[0].Field + ":" + details.Errors[0].Code
		}

		It("creates a valid link", func() {
			link, err := svc.CreateLink(ctx, navbar.LinkDTO{DisplayName: " Home ", SequenceIndex: 0, RouteName: ptr("home"), PermissionClassIDs: []int64{1, 1}})
			Expect(err).NotTo(HaveOccurred())
			Expect(link.DisplayName).To(Equal("Home"))
			Expect(link.PermissionClasses).To(Equal([]string{"computers"}))
		})

		It("rejects both a route name and an external url", func() {
			_, err := svc.CreateLink(ctx, navbar.LinkDTO{DisplayName: "Both", RouteName: ptr("home"), ExternalURL: ptr("https://example.edu")})
			Expect(field(err)).To(Equal("external_url:" + string(appErrors.ErrCodeInvalidTarget)))
		})

		It("rejects an unresolvable route name", func() {
			_, err := svc.CreateLink(ctx, navbar.LinkDTO{DisplayName: "Broken", RouteName: ptr("nope")})
			Expect(field(err)).To(Equal("route_name:" + string(appErrors.ErrCodeInvalidRoute)))
		})

		It("rejects a parent that is itself nested", func() {
			_, err := svc.CreateLink(ctx, navbar.LinkDTO{DisplayName: "Deep", ParentID: ptr(int64(2)), RouteName: ptr("home")})
			Expect(field(err)).To(Equal("parent_id:" + string(appErrors.ErrCodeInvalidParent)))
		})

		It("rejects nesting a link that has children", func() {
			other := repo.add(&navbarDatamodel.Link{DisplayName: "Tools", SequenceIndex: 3})
			_, err := svc.UpdateLink(ctx, 1, navbar.LinkDTO{DisplayName: "Inventory", ParentID: &other.ID, Onclick: ptr("toggle()")})
			Expect(field(err)).To(Equal("parent_id:" + string(appErrors.ErrCodeInvalidParent)))
		})

		It("requires a target for nested links", func() {
			_, err := svc.CreateLink(ctx, navbar.LinkDTO{DisplayName: "Nothing", ParentID: ptr(int64(1))})
			Expect(field(err)).To(Equal("route_name:" + string(appErrors.ErrCodeInvalidTarget)))
		})

		It("allows a top-level pure group", func() {
			_, err := svc.CreateLink(ctx, navbar.LinkDTO{DisplayName: "Group", SequenceIndex: 4})
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects unknown permission classes", func() {
			_, err := svc.CreateLink(ctx, navbar.LinkDTO{DisplayName: "Home", RouteName: ptr("home"), PermissionClassIDs: []int64{99}})
			Expect(field(err)).To(Equal("permission_class_ids:" + string(appErrors.ErrCodePermissionClassNotFound)))
		})

		It("deletes a link with its children", func() {
			Expect(svc.DeleteLink(ctx, 1)).To(Succeed())
			links, err := svc.ListLinks(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(links).To(BeEmpty())
		})

		It("reports unknown links", func() {
			_, err := svc.UpdateLink(ctx, 404, navbar.LinkDTO{DisplayName: "x"})
			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(appErrors.ErrCodeLinkNotFound))
		})
	})
})
