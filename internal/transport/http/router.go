// Package httptransport assembles the HTTP surface: middleware chain, public
// catalog routes, authenticated registration routes, health and metrics.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	planhandler "covergate/internal/plan/handler"
	"covergate/internal/platform/metrics"
	"covergate/internal/platform/middleware"
	reghandler "covergate/internal/registration/handler"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	JWTValidator middleware.JWTValidator

	Registration *reghandler.Handler
	Plans        *planhandler.Handler

	// Ready reports readiness of downstream dependencies. Nil means always
	// ready.
	Ready func() error
}

// NewRouter wires the full route tree.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	if deps.Metrics != nil {
		r.Use(middleware.LatencyMiddleware(deps.Metrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if deps.Ready != nil {
			if err := deps.Ready(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public catalog.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		deps.Plans.Register(r)
	})

	// Authenticated workflow.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))
		deps.Registration.Register(r)
	})

	return r
}
