package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voss/nbshelf/internal/shelf"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *shelf.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Generated table of contents.
	r.Get("/toc", h.GetTOC)

	// Notebook files.
	r.Get("/notebooks", h.ListNotebooks)
	r.Post("/notebooks", h.AddNotebook)
	r.Get("/notebooks/{name}", h.GetNotebook)
	r.Delete("/notebooks/{name}", h.DeleteNotebook)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
