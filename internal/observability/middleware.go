package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MetricsMiddleware считает запросы и их длительность.
// В метку route пишется шаблон маршрута chi, а не сам путь, чтобы username не попадал в метки.
func MetricsMiddleware(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(ww.Status())

			HttpRequestsTotal.WithLabelValues(serviceName, r.Method, route, status).Inc()
			HttpRequestDuration.WithLabelValues(serviceName, r.Method, route).Observe(duration)
		})
	}
}
