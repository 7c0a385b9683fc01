package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/rapport/internal/apperr"
	"github.com/starford/rapport/internal/checksum"
	"github.com/starford/rapport/internal/notebook"
	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/view"
)

// Handler holds API route handlers.
type Handler struct {
	nb *notebook.Notebook
}

// NewHandler creates a new Handler.
func NewHandler(nb *notebook.Notebook) *Handler {
	return &Handler{nb: nb}
}

// modeParam reads ?mode=, defaulting to card. ok is false after a 400 has
// been written.
func modeParam(w http.ResponseWriter, r *http.Request) (view.Mode, bool) {
	mode, err := view.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("mode must be card or list"))
		return "", false
	}
	return mode, true
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List meeting notes in insertion order
//	@Tags			notes
//	@Produce		json
//	@Success		200		{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, _ *http.Request) {
	notes := h.nb.Notes()
	writeJSON(w, http.StatusOK, NoteListResponse{Notes: notes, Total: len(notes)})
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Add a meeting note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateNoteRequest	true	"Note to add"
//	@Success		201		{object}	models.MeetingNote
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	ValidationResponse
//	@Failure		500		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.nb.Submit(r.Context(), req.Draft())
	if err != nil {
		var verr *noteservice.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
				Error:         "invalid note",
				MissingFields: nonNil(verr.Missing),
				Invalid:       verr.Invalid,
			})
		default:
			slog.Error("create note failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// RenderNotes handles GET /api/notes/render.
//
//	@Summary		Render the note collection as an HTML fragment
//	@Tags			notes
//	@Produce		html
//	@Param			mode	query		string	false	"Projection mode"	Enums(card, list)
//	@Success		200		{string}	string
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/render [get]
func (h *Handler) RenderNotes(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(w, r)
	if !ok {
		return
	}
	out, err := h.nb.Render(mode)
	if err != nil {
		slog.Error("render failed", slog.String("mode", string(mode)), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeHTML(w, http.StatusOK, string(out))
}

// Export handles GET /api/export.
//
//	@Summary		Printable HTML snapshot of the note collection
//	@Tags			export
//	@Produce		html
//	@Param			mode			query	string	false	"Projection mode"	Enums(card, list)
//	@Param			If-None-Match	header	string	false	"ETag of a previous export"
//	@Success		200		{string}	string
//	@Success		304		"Unchanged"
//	@Security		BearerAuth
//	@Router			/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(w, r)
	if !ok {
		return
	}
	snap, err := h.nb.Export(mode, false)
	if err != nil {
		slog.Error("export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	etag := checksum.ETag([]byte(snap.Body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("X-Snapshot-ID", snap.ID)
	writeHTML(w, http.StatusOK, snap.HTML)
}

// ExportPDF handles GET /api/export.pdf.
//
//	@Summary		PDF snapshot of the note collection
//	@Tags			export
//	@Produce		application/pdf
//	@Param			mode	query		string	false	"Projection mode"	Enums(card, list)
//	@Success		200		{file}		file
//	@Failure		503		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/export.pdf [get]
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(w, r)
	if !ok {
		return
	}
	pdf, snap, err := h.nb.ExportPDF(r.Context(), mode)
	if err != nil {
		if errors.Is(err, apperr.ErrSurfaceUnavailable) {
			slog.Warn("pdf export unavailable", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, errorBody("print surface unavailable"))
			return
		}
		slog.Error("pdf export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="meeting-notes.pdf"`)
	w.Header().Set("X-Snapshot-ID", snap.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
