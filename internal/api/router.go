package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MelDxKviel/reels-downloader-bot/internal/api/handler"
	mw "github.com/MelDxKviel/reels-downloader-bot/internal/api/middleware"
)

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(
	downloadHandler *handler.DownloadHandler,
	adminHandler *handler.AdminHandler,
	cacheHandler *handler.CacheHandler,
	healthHandler *handler.HealthHandler,
	accessChecker mw.AccessChecker,
	apiKey string,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(middleware.Timeout(10 * time.Minute))

	// Health endpoints (no auth)
	r.Get("/health", healthHandler.Live)
	r.Get("/ready", healthHandler.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		// Download routes authenticate the end user, not the operator.
		r.Group(func(r chi.Router) {
			r.Use(mw.UserAccess(accessChecker))
			r.Post("/downloads", downloadHandler.Submit)
			r.Get("/downloads/{jobID}", downloadHandler.GetStatus)
		})

		// Administrative routes (API key)
		r.Group(func(r chi.Router) {
			r.Use(mw.APIKeyAuth(apiKey))

			r.Get("/users", adminHandler.ListUsers)
			r.Post("/users/{userID}", adminHandler.AddUser)
			r.Delete("/users/{userID}", adminHandler.RemoveUser)
			r.Get("/users/{userID}/stats", adminHandler.UserStats)

			r.Get("/stats", adminHandler.Stats)

			r.Get("/cache", cacheHandler.Info)
			r.Delete("/cache", cacheHandler.Clear)
		})
	})

	return r
}
