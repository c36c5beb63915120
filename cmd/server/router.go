package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quillworks/quill-api/internal/api"
	apiMiddleware "github.com/quillworks/quill-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
	)
	postHandler := api.NewPostHandler(app.postService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Account endpoints (public)
		r.Post("/users/register", authHandler.Register)
		r.Post("/users/login", authHandler.Login)

		// Blog endpoints (require a bearer token)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/blogs", postHandler.CreatePost)
			r.Get("/blogs", postHandler.ListPosts)
			r.Get("/blogs/{id}", postHandler.GetPost)
			r.Put("/blogs/{id}", postHandler.UpdatePost)
			r.Delete("/blogs/{id}", postHandler.DeletePost)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
