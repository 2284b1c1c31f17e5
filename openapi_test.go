package main_test

import (
	"context"
	"strings"

	"github.com/rowalls/uh-internal-project/internal/transport/rest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	It("loads and validates", func() {
		doc, err := rest.LoadOpenAPI(context.Background(), "api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Servers[0].URL).To(Equal(rest.APIPrefix))
	})

	It("documents every route a navbar link can point at", func() {
		doc, err := rest.LoadOpenAPI(context.Background(), "api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		for name, path := range rest.NavbarRoutes() {
			Expect(doc.Paths.Find(strings.TrimPrefix(path, rest.APIPrefix))).NotTo(BeNil(), name)
		}
	})
})
