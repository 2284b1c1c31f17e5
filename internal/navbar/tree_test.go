package navbar_test

import (
	"github.com/rowalls/uh-internal-project/internal/navbar"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var routes = navbar.RouteTable{
	"home":      "/",
	"computers": "/computers",
	"printers":  "/printers",
}

func allowAll(*navbar.Link) bool { return true }

func names(nodes []*navbar.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.DisplayName)
	}
	return out
}

var _ = Describe("Builder", func() {
	var builder *navbar.Builder

	BeforeEach(func() {
		builder = navbar.NewBuilder(routes, navbar.DepthFlatten, "/static/", logger.Discard())
	})

	It("orders siblings by sequence index then id", func() {
		links := []*navbar.Link{
			{ID: 3, DisplayName: "Tools", SequenceIndex: 2},
			{ID: 1, DisplayName: "Home", SequenceIndex: 1, RouteName: ptr("home")},
			{ID: 2, DisplayName: "Inventory", SequenceIndex: 1},
		}

		nodes := builder.Build(links, allowAll)
		Expect(names(nodes)).To(Equal([]string{"Home", "Inventory", "Tools"}))
	})

	It("groups children under their top-level parent", func() {
		links := []*navbar.Link{
			{ID: 1, DisplayName: "Inventory", SequenceIndex: 1},
			{ID: 2, DisplayName: "Printers", SequenceIndex: 2, ParentID: ptr(int64(1)), RouteName: ptr("printers")},
			{ID: 3, DisplayName: "Computers", SequenceIndex: 1, ParentID: ptr(int64(1)), RouteName: ptr("computers")},
		}

		nodes := builder.Build(links, allowAll)
		Expect(nodes).To(HaveLen(1))
		Expect(names(nodes[0].Children)).To(Equal([]string{"Computers", "Printers"}))
		Expect(nodes[0].Children[0].URL).To(Equal("/computers"))
		Expect(nodes[0].Children[0].Target).To(Equal("_self"))
	})

	It("hides children of a parent the user cannot see", func() {
		links := []*navbar.Link{
			{ID: 1, DisplayName: "Admin", SequenceIndex: 1},
			{ID: 2, DisplayName: "Computers", SequenceIndex: 1, ParentID: ptr(int64(1)), RouteName: ptr("computers")},
		}

		nodes := builder.Build(links, func(l *navbar.Link) bool { return l.ID == 2 })
		Expect(nodes).To(BeEmpty())
	})

	It("flattens links nested too deep under their top-level ancestor", func() {
		links := []*navbar.Link{
			{ID: 1, DisplayName: "Inventory", SequenceIndex: 1},
			{ID: 2, DisplayName: "Computers", SequenceIndex: 1, ParentID: ptr(int64(1)), RouteName: ptr("computers")},
			{ID: 3, DisplayName: "Printers", SequenceIndex: 2, ParentID: ptr(int64(2)), RouteName: ptr("printers")},
		}

		nodes := builder.Build(links, allowAll)
		Expect(nodes).To(HaveLen(1))
		Expect(names(nodes[0].Children)).To(Equal([]string{"Computers", "Printers"}))
		for _, child := range nodes[0].Children {
			Expect(child.Children).To(BeEmpty())
		}
	})

	It("keeps a flattened link hidden when an intermediate parent is hidden", func() {
		links := []*navbar.Link{
			{ID: 1, DisplayName: "Inventory", SequenceIndex: 1},
			{ID: 2, DisplayName: "Restricted", SequenceIndex: 1, ParentID: ptr(int64(1))},
			{ID: 3, DisplayName: "Printers", SequenceIndex: 1, ParentID: ptr(int64(2)), RouteName: ptr("printers")},
		}

		nodes := builder.Build(links, func(l *navbar.Link) bool { return l.ID != 2 })
		Expect(names(nodes)).To(Equal([]string{"Inventory"}))
		Expect(nodes[0].Children).To(BeEmpty())
	})

	It("drops links nested too deep under the reject policy", func() {
		builder = navbar.NewBuilder(routes, navbar.DepthReject, "/static/", logger.Discard())
		links := []*navbar.Link{
			{ID: 1, DisplayName: "Inventory", SequenceIndex: 1},
			{ID: 2, DisplayName: "Computers", SequenceIndex: 1, ParentID: ptr(int64(1)), RouteName: ptr("computers")},
			{ID: 3, DisplayName: "Printers", SequenceIndex: 2, ParentID: ptr(int64(2)), RouteName: ptr("printers")},
		}

		nodes := builder.Build(links, allowAll)
		Expect(names(nodes[0].Children)).To(Equal([]string{"Computers"}))
	})

	It("drops links in a parent cycle and keeps the rest", func() {
		links := []*navbar.Link{
			{ID: 1, DisplayName: "Home", SequenceIndex: 1, RouteName: ptr("home")},
			{ID: 2, DisplayName: "Loop A", SequenceIndex: 1, ParentID: ptr(int64(3))},
			{ID: 3, DisplayName: "Loop B", SequenceIndex: 1, ParentID: ptr(int64(2))},
		}

		nodes := builder.Build(links, allowAll)
		Expect(names(nodes)).To(Equal([]string{"Home"}))
	})

	It("renders an unresolvable route with an empty url", func() {
		links := []*navbar.Link{{ID: 1, DisplayName: "Broken", SequenceIndex: 1, RouteName: ptr("nope")}}

		nodes := builder.Build(links, allowAll)
		Expect(nodes[0].URL).To(BeEmpty())
	})

	It("opens external links in a new window and prefixes icons", func() {
		links := []*navbar.Link{{ID: 1, DisplayName: "Wiki", SequenceIndex: 1, ExternalURL: ptr("https://wiki.example.edu"), Icon: ptr("images/icons/wiki.png")}}

		nodes := builder.Build(links, allowAll)
		Expect(nodes[0].URL).To(Equal("https://wiki.example.edu"))
		Expect(nodes[0].Target).To(Equal("_blank"))
		Expect(nodes[0].Icon).To(Equal("/static/images/icons/wiki.png"))
	})

	It("derives html ids from the display name", func() {
		link := &navbar.Link{DisplayName: "Daily Duties"}
		Expect(link.HTMLID()).To(Equal("daily_duties"))
	})

	It("parses depth policies", func() {
		Expect(navbar.ParseDepthPolicy("REJECT")).To(Equal(navbar.DepthReject))
		Expect(navbar.ParseDepthPolicy("")).To(Equal(navbar.DepthFlatten))
		Expect(navbar.ParseDepthPolicy("bogus")).To(Equal(navbar.DepthFlatten))
	})
})
