package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lingoflow/lingoflow-api/internal/api"
	apimiddleware "github.com/lingoflow/lingoflow-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	userHandler := api.NewUserHandler(app.userService)
	wordHandler := api.NewWordHandler(app.wordService)
	vocabularyHandler := api.NewVocabularyHandler(app.vocabularyService)
	reviewHandler := api.NewReviewHandler(app.reviewService)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Profile endpoints
			r.Get("/users/me", userHandler.GetMe)
			r.Put("/users/me", userHandler.UpdateMe)
			r.Put("/users/me/password", userHandler.ChangePassword)

			// Word catalog endpoints
			r.Get("/words", wordHandler.List)
			r.Get("/words/learning", wordHandler.Learning)
			r.Get("/words/{id}", wordHandler.Get)
			r.Get("/words/{id}/example", wordHandler.Example)

			// Vocabulary endpoints
			r.Post("/vocabulary", vocabularyHandler.Add)
			r.Get("/vocabulary", vocabularyHandler.List)
			r.Delete("/vocabulary/{id}", vocabularyHandler.Remove)

			// Review endpoints
			r.Get("/review/queue", reviewHandler.GetQueue)
			r.Post("/review/{id}/rating", reviewHandler.SubmitRating)
			r.Post("/review/{id}/answer", reviewHandler.SubmitAnswer)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
