package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type httpObserver interface {
	ObserveHTTP(method, route string, status int)
}

// HTTPMetrics считает входящие запросы по шаблону маршрута chi
type HTTPMetrics struct {
	obs httpObserver
}

func NewHTTPMetrics(obs httpObserver) *HTTPMetrics {
	return &HTTPMetrics{obs: obs}
}

func (m *HTTPMetrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.obs.ObserveHTTP(r.Method, route, status)
	})
}
