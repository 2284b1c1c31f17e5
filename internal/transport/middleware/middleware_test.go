package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	applog "github.com/rowalls/uh-internal-project/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sensitive data filtering", func() {
	It("masks nested JSON keys", func() {
		out := filterSensitiveBody([]byte(`{"username":"jdoe","password":"hunter2","tokens":{"refresh_token":"abc"},"items":[{"api_key":"k"}]}`))

		var parsed map[string]interface{}
		Expect(json.Unmarshal([]byte(out), &parsed)).To(Succeed())
		Expect(parsed["username"]).To(Equal("jdoe"))
		Expect(parsed["password"]).To(Equal(filtered))
		Expect(parsed["tokens"]).To(Equal(filtered))
		Expect(parsed["items"]).To(Equal([]interface{}{map[string]interface{}{"api_key": filtered}}))
	})

	It("drops plain bodies that mention secrets", func() {
		Expect(filterSensitiveBody([]byte("password=hunter2"))).To(ContainSubstring("FILTERED"))
		Expect(filterSensitiveBody([]byte("hello"))).To(Equal("hello"))
	})

	It("masks credential headers", func() {
		h := http.Header{}
		h.Set("Authorization", "Bearer abc")
		h.Set("X-API-Key", "k")
		h.Set("Accept", "application/json")

		out := filterSensitiveHeaders(h)
		Expect(out["Authorization"]).To(Equal(filtered))
		Expect(out["X-Api-Key"]).To(Equal(filtered))
		Expect(out["Accept"]).To(Equal("application/json"))
	})

	It("truncates long bodies", func() {
		Expect(truncate(strings.Repeat("a", maxLoggedLen+10))).To(HaveSuffix("...(truncated)"))
	})
})

var _ = Describe("LoggingMiddleware", func() {
	It("logs without leaking the password and keeps the request body readable", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		var seen string
		handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			seen = body["password"]
			w.WriteHeader(http.StatusUnauthorized)
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"jdoe","password":"hunter2"}`))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(seen).To(Equal("hunter2"))
		Expect(buf.String()).NotTo(ContainSubstring("hunter2"))
		Expect(buf.String()).To(ContainSubstring("level=WARN"))
		Expect(buf.String()).To(ContainSubstring("status_code=401"))
	})
})

var _ = Describe("RequestID", func() {
	It("echoes the caller's trace id", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TraceHeader, "trace-123")

		RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)
		Expect(rec.Header().Get(TraceHeader)).To(Equal("trace-123"))
	})

	It("generates one when missing", func() {
		rec := httptest.NewRecorder()
		RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Header().Get(TraceHeader)).To(HaveLen(36))
	})

	It("replaces ids that would corrupt log lines", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TraceHeader, "abc\nlevel=ERROR")

		RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)
		Expect(rec.Header().Get(TraceHeader)).To(HaveLen(36))
	})

	It("stamps the trace id on request logs", func() {
		var buf bytes.Buffer
		logger := slog.New(applog.NewContextHandler(slog.NewTextHandler(&buf, nil)))
		handler := RequestID(LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

		traceID := rec.Header().Get(TraceHeader)
		Expect(traceID).NotTo(BeEmpty())
		Expect(strings.Count(buf.String(), "traceID="+traceID)).To(Equal(2))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("answers 500 without exposing the panic", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("db password is hunter2")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("hunter2"))
		Expect(rec.Body.String()).To(ContainSubstring("internal server error"))
		Expect(buf.String()).To(ContainSubstring("panic recovered"))
	})
})
