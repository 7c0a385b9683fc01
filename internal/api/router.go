package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/rapport/internal/notebook"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(nb *notebook.Notebook, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(nb)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/render", h.RenderNotes)

	r.Get("/export", h.Export)
	r.Get("/export.pdf", h.ExportPDF)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
