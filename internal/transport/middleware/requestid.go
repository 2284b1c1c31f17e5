package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rowalls/uh-internal-project/pkg/logger"
)

const (
	TraceHeader = "X-Trace-ID"

	maxTraceIDLen = 64
)

// RequestID attaches a trace id to the request's log fields and echoes it on
// the response. A caller-supplied id is kept only when it is short printable
// ASCII.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if !validTraceID(traceID) {
			traceID = uuid.NewString()
		}

		w.Header().Set(TraceHeader, traceID)
		next.ServeHTTP(w, r.WithContext(logger.With(r.Context(), "traceID", traceID)))
	})
}

func validTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
