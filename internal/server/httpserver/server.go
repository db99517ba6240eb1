// Package httpserver exposes the prayer journal REST API over chi.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/swpark/prayernote/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	prayers  service.PrayerService
	progress service.ProgressService
	stats    service.StatsService
	log      *zap.Logger
	origins  []string
}

// New constructs a server with injected services.
func New(auth service.AuthService, prayers service.PrayerService, progress service.ProgressService, stats service.StatsService, log *zap.Logger, corsOrigins []string) *Server {
	return &Server{auth: auth, prayers: prayers, progress: progress, stats: stats, log: log, origins: corsOrigins}
}

// Router builds the route tree. Everything under /api/v1 except the three
// credential endpoints requires a valid access token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(recoverMiddleware(s.log))
	r.Use(loggingMiddleware(s.log))
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.origins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/refresh", s.handleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)
			r.Patch("/auth/me", s.handleUpdateMe)
			r.Delete("/auth/me", s.handleDeleteMe)

			r.Route("/prayers", func(r chi.Router) {
				r.Post("/", s.handleCreatePrayer)
				r.Get("/", s.handleListPrayers)
				r.Route("/{prayerID}", func(r chi.Router) {
					r.Get("/", s.handleGetPrayer)
					r.Patch("/", s.handleUpdatePrayer)
					r.Delete("/", s.handleDeletePrayer)
					r.Post("/resolve", s.handleResolvePrayer)
					r.Get("/progress", s.handleListProgress)
					r.Post("/progress", s.handleCreateProgress)
				})
			})

			r.Patch("/progress/{progressID}", s.handleUpdateProgress)
			r.Delete("/progress/{progressID}", s.handleDeleteProgress)

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", s.handleDashboardStats)
				r.Get("/recent", s.handleRecentPrayers)
				r.Get("/unnoted", s.handleUnnotedPrayers)
			})
		})
	})

	return r
}
