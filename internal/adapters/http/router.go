package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers the API routes and middleware stack.
// Centralizing routes here keeps auth and error behavior consistent across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", handler.register)
		r.Post("/auth", handler.login)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/auth", handler.currentUser)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", handler.listProfiles)
			r.Get("/user/{user_id}", handler.profileByUserID)

			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Get("/me", handler.myProfile)
				r.Post("/", handler.upsertProfile)
				r.Delete("/", handler.deleteAccount)
				r.Put("/experience", handler.addExperience)
				r.Delete("/experience/{experience_id}", handler.deleteExperience)
			})
		})
	})

	return r
}
