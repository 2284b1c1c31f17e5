package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HealthHandler", func() {
	ok := func(context.Context) error { return nil }

	It("is healthy when every component answers", func() {
		h := NewHealthHandler(map[string]Check{"primary": ok, "portmap": ok, "cache": ok})

		rec := httptest.NewRecorder()
		h.healthCheckHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var resp HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Status).To(Equal(HealthHealthy))
		Expect(resp.Components).To(HaveLen(3))
	})

	It("reports the failing component and answers 503", func() {
		h := NewHealthHandler(map[string]Check{
			"primary": ok,
			"cache":   func(context.Context) error { return errors.New("dial tcp: connection refused") },
		})

		rec := httptest.NewRecorder()
		h.healthCheckHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		var resp HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Status).To(Equal(HealthUnhealthy))
		Expect(resp.Components["primary"].Status).To(Equal(HealthHealthy))
		Expect(resp.Components["cache"].Message).To(ContainSubstring("connection refused"))
	})
})
