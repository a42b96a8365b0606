// Package router sets up all HTTP routes and middleware chains for the
// devforum API. Comment submission and moderation sit behind a per-IP rate
// limiter because each request runs a classifier call.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"devforum/internal/handlers"
	"devforum/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", api.ListPosts)
			r.Post("/", api.CreatePost)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", api.GetPost)
				r.Get("/comments", api.ListComments)
				r.With(limiter.Middleware).Post("/comments", api.SubmitComment)
				r.Post("/bookmark", api.ToggleBookmark)
				r.Post("/star", api.ToggleStar)
			})
		})

		r.With(limiter.Middleware).Post("/moderate", api.Moderate)
		r.Get("/moderate/status", api.ModerationStatus)

		r.Get("/bookmarks", api.Bookmarks)
		r.Get("/stars", api.Stars)
		r.Get("/trending", api.Trending)
		r.Get("/insights", api.Insights)
		r.Post("/export", api.Export)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"Not found."}`)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, `{"error":"Method not allowed."}`)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, `{"status":"ok"}`)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
