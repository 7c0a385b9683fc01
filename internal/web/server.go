// Package web serves the browser pages: the add-note form with the current
// projection, and the printable export.
package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/notebook"
	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/view"
)

const maxFormBytes = 1 << 20

// Server renders pages from a notebook.
type Server struct {
	nb     *notebook.Notebook
	tmpl   *template.Template
	logger *slog.Logger
}

// NewServer parses the page templates.
func NewServer(nb *notebook.Notebook, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.New("index").Parse(indexHTML)
	if err != nil {
		return nil, err
	}
	return &Server{nb: nb, tmpl: tmpl, logger: logger}, nil
}

// Handler returns the page routes. sseHandler, if non-nil, is mounted at
// GET /events for the live refresh script.
func (s *Server) Handler(sseHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(withSecurityHeaders)
	r.Get("/", s.handleIndex)
	r.Post("/", s.handleSubmit)
	r.Get("/print", s.handlePrint)
	r.Get("/fragment", s.handleFragment)
	r.Get("/static/app.css", s.handleCSS)
	r.Get("/static/app.js", s.handleJS)
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}
	return r
}

type indexModel struct {
	Mode       view.Mode
	ToggleMode view.Mode
	Draft      models.Draft
	Notes      template.HTML
	// Missing is non-nil when the last submission was rejected.
	Missing []string
	Invalid []string
	Error   string
}

func (m indexModel) Rejected() bool { return m.Missing != nil || m.Invalid != nil }

func modeOf(r *http.Request) view.Mode {
	mode, err := view.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		return view.ModeCard
	}
	return mode
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, indexModel{Mode: modeOf(r)})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	mode := modeOf(r)
	if m, err := view.ParseMode(r.PostForm.Get("mode")); err == nil && r.PostForm.Get("mode") != "" {
		mode = m
	}
	d := &models.Draft{
		Date:      r.PostForm.Get("date"),
		StartTime: r.PostForm.Get("start_time"),
		EndTime:   r.PostForm.Get("end_time"),
		Reportee:  r.PostForm.Get("reportee"),
		Points:    r.PostForm.Get("points"),
	}

	_, err := s.nb.Submit(r.Context(), d)
	if err != nil {
		model := indexModel{Mode: mode, Draft: *d}
		status := http.StatusInternalServerError
		var verr *noteservice.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusUnprocessableEntity
			model.Missing = append([]string{}, verr.Missing...)
			model.Invalid = verr.Invalid
		} else {
			s.logger.Error("web: submit failed", slog.String("error", err.Error()))
			model.Error = "The note could not be saved. Your entry has been kept; please try again."
		}
		s.render(w, status, model)
		return
	}

	http.Redirect(w, r, "/?"+url.Values{"mode": {string(mode)}}.Encode(), http.StatusSeeOther)
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	snap, err := s.nb.Export(modeOf(r), true)
	if err != nil {
		s.logger.Error("web: export failed", slog.String("error", err.Error()))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(snap.HTML))
}

// handleFragment returns just the projection, for the live refresh script.
func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	notes, err := s.nb.Render(modeOf(r))
	if err != nil {
		s.logger.Error("web: render failed", slog.String("error", err.Error()))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(notes))
}

func (s *Server) render(w http.ResponseWriter, status int, model indexModel) {
	notes, err := s.nb.Render(model.Mode)
	if err != nil {
		s.logger.Error("web: render failed", slog.String("error", err.Error()))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	model.Notes = notes
	model.ToggleMode = model.Mode.Toggle()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; base-uri 'none'; frame-ancestors 'none'")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, model); err != nil {
		s.logger.Error("web: template", slog.String("error", err.Error()))
	}
}

func (s *Server) handleCSS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(appCSS))
}

func (s *Server) handleJS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(appJS))
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
