package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soletra/backdrop-backend/internal/auth"
	"github.com/soletra/backdrop-backend/internal/config"
	"github.com/soletra/backdrop-backend/internal/transport/middleware"
)

// RouterDeps collects everything the router mounts.
type RouterDeps struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	LoginPerMin int

	Tokens      *auth.TokenService
	RateLimiter *middleware.RateLimiter

	Session     *SessionHandler
	Presets     *PresetHandler
	Active      *ActiveHandler
	Diagnostics *DiagnosticsHandler
	Health      *HealthHandler
}

// NewRouter builds the HTTP routing table. The admin surface sits behind
// bearer-token auth; the storefront read path and health probes are
// public.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))

	r.Get("/health", deps.Health.Health)
	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)

	r.Get("/backdrop/active", deps.Active.Get)

	r.Route("/admin", func(r chi.Router) {
		r.With(deps.RateLimiter.Limit(deps.LoginPerMin)).
			Post("/session", deps.Session.Create)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Tokens, deps.Logger))

			r.Route("/presets", func(r chi.Router) {
				r.Get("/", deps.Presets.List)
				r.Post("/", deps.Presets.Create)
				r.Get("/{id}", deps.Presets.Get)
				r.Put("/{id}", deps.Presets.Update)
				r.Delete("/{id}", deps.Presets.Delete)
				r.Post("/{id}/activate", deps.Presets.Activate)
			})

			r.Get("/diagnostics/telemetry", deps.Diagnostics.Telemetry)
		})
	})

	return r
}
