package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/oidcguard/observability"
)

// Metrics records request count, duration and in-flight requests. A nil
// m disables recording.
func Metrics(m *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			m.RecordRequestStart(ctx)
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			m.RecordRequestEnd(ctx, r.URL.Path, sw.status, time.Since(start))
		})
	}
}
