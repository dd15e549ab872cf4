package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dutsenko/contacts-api/internal/api"
	apiMiddleware "github.com/dutsenko/contacts-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	contactHandler := api.NewContactHandler(app.contactService, app.logger)

	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", contactHandler.CreateContact)
		r.Get("/", contactHandler.ListContacts)

		// Fixed paths must be registered before the {id} wildcard.
		r.Get("/search/", contactHandler.SearchContacts)
		r.Get("/upcoming_birthdays/", contactHandler.UpcomingBirthdays)

		r.Get("/{id}", contactHandler.GetContact)
		r.Put("/{id}", contactHandler.UpdateContact)
		r.Patch("/{id}", contactHandler.UpdateContactStatus)
		r.Delete("/{id}", contactHandler.DeleteContact)
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
