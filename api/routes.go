package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes mounts every /api endpoint. Reads are public; mutations and
// the contact request listing require an admin token.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", handlers.healthHandler.health())

	r.Route("/admin", func(r chi.Router) {
		r.Post("/register", handlers.adminHandler.register())
		r.Post("/login", handlers.adminHandler.login())
	})

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", handlers.artistHandler.listArtists())
		r.Get("/search", handlers.artistHandler.searchArtists())
		r.Get("/{artistID}", handlers.artistHandler.getArtist())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Post("/", handlers.artistHandler.createArtist())
			r.Put("/{artistID}", handlers.artistHandler.updateArtist())
			r.Delete("/{artistID}", handlers.artistHandler.deleteArtist())
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", handlers.projectHandler.listProjects())
		r.Get("/search", handlers.projectHandler.searchProjects())
		r.Get("/category/{category}", handlers.projectHandler.listProjectsByCategory())
		r.Get("/{projectID}", handlers.projectHandler.getProject())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Post("/", handlers.projectHandler.createProject())
			r.Put("/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
		})
	})

	r.Route("/email", func(r chi.Router) {
		r.Post("/send", handlers.emailHandler.sendContactRequest())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Get("/requests", handlers.emailHandler.listContactRequests())
		})
	})
}
