package navbar_test

import (
	"github.com/rowalls/uh-internal-project/internal/navbar"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Render", func() {
	It("renders a group with its links", func() {
		nodes := []*navbar.Node{{
			ID: 1, DisplayName: "Inventory", HTMLID: "inventory", Target: "_self",
			Children: []*navbar.Node{
				{ID: 2, DisplayName: "Computers", HTMLID: "computers", URL: "/computers", Target: "_self", Icon: "/static/computer.png"},
			},
		}}

		html, err := navbar.Render(nodes)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(html)).To(Equal(`<div class="link-group-heading">Inventory</div>
<div class="link-group">
<ul>
<li><a id="computers_link" href="/computers" target="_self"><img class="link-icon" aria-hidden="true" src="/static/computer.png" height="16" width="16"><span id="computers_text">Computers</span></a></li>
</ul>
</div>
`))
	})

	It("renders a top-level link without children as a leaf", func() {
		nodes := []*navbar.Node{{ID: 1, DisplayName: "Home", HTMLID: "home", URL: "/", Target: "_self"}}

		html, err := navbar.Render(nodes)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(html)).To(Equal(`<div class="link-group-heading"><a id="home_link" href="/" target="_self"><span id="home_text">Home</span></a></div>
`))
	})

	It("keeps an empty href for unresolved routes", func() {
		nodes := []*navbar.Node{{ID: 1, DisplayName: "Broken", HTMLID: "broken", Target: "_self"}}

		html, err := navbar.Render(nodes)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(html)).To(ContainSubstring(`href=""`))
	})

	It("escapes display names and keeps onclick handlers", func() {
		nodes := []*navbar.Node{{ID: 1, DisplayName: "<b>Phones</b>", HTMLID: "phones", Target: "_self", Onclick: "openModal()"}}

		html, err := navbar.Render(nodes)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(html)).To(ContainSubstring("&lt;b&gt;Phones&lt;/b&gt;"))
		Expect(string(html)).To(ContainSubstring(`onclick="openModal()"`))
	})

	It("renders nothing for an empty tree", func() {
		html, err := navbar.Render(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(html).To(BeEmpty())
	})
})
