package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/caredesk-hq/caredesk/internal/audit"
	"github.com/caredesk-hq/caredesk/internal/auth"
	"github.com/caredesk-hq/caredesk/internal/observability"
	"github.com/caredesk-hq/caredesk/internal/rbac"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	AuthHandler    *auth.Handler
	AuthMiddleware auth.Middleware
	AuditHandler   *audit.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with CareDesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Auth:    params.AuthMiddleware,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	loginRate := 10
	if params.Config != nil && params.Config.LoginRatePerMinute > 0 {
		loginRate = params.Config.LoginRatePerMinute
	}

	loginLimiter := httprate.Limit(loginRate, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))
	r.Route("/auth", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r, loginLimiter)
	})

	if params.AuditHandler != nil {
		r.Route("/audit", func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequireRole(rbac.RoleAdmin))
			params.AuditHandler.MountRoutes(r)
		})
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
