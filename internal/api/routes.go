package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignite/delivery-monitor/internal/config"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, rateLimit config.RateLimitConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(MetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Api-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Unauthenticated endpoints
	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/logout", h.HandleLogout)

	// API routes. RequireActor only attaches the admin to the context;
	// every service call re-checks authorization through the policy layer,
	// so a missing actor surfaces as 401 from the handler, not here.
	r.Route("/api", func(r chi.Router) {
		r.Use(h.authn.RequireActor)
		if rateLimit.Enabled {
			r.Use(NewRateLimiter(rateLimit).Middleware)
		}

		r.Get("/viewer", h.Viewer)

		r.Get("/deliveries", h.ListDeliveries)
		r.Get("/deliveries/{id}", h.GetDelivery)

		r.Get("/deny-list", h.ListDenyList)
		r.Get("/deny-list/lookup", h.LookupDenyList)

		r.Get("/apps", h.ListApps)
		r.Get("/apps/system", h.GetSystemApp)
		r.Get("/apps/{id}", h.GetApp)
		r.Patch("/apps/{id}", h.UpdateApp)

		r.Get("/teams", h.ListTeams)
		r.Get("/admins", h.ListAdmins)
	})

	return r
}
