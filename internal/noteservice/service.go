// Package noteservice implements the note controller: the only entry point
// that creates meeting notes. It validates drafts, persists them, keeps the
// in-memory collection that projections render from, and resets the draft.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/store"
)

// CreatedCallback is called after a note has been accepted and the in-memory
// collection refreshed. total is the collection size including n. It runs
// under the controller lock and must not call back into the Service.
type CreatedCallback func(n models.MeetingNote, total int)

// Service coordinates validation, persistence and the view collection.
type Service struct {
	store     store.NoteStore
	validator *Validator
	logger    *slog.Logger
	onCreated CreatedCallback

	// mu serializes submissions so there is a single logical writer.
	mu    sync.Mutex
	notes []models.MeetingNote
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for accepted and rejected submissions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTimeOrder enables the end-after-start rule.
func WithTimeOrder(enforce bool) Option {
	return func(s *Service) { s.validator = NewValidator(enforce) }
}

// OnCreated registers cb to run after every accepted note.
func OnCreated(cb CreatedCallback) Option {
	return func(s *Service) { s.onCreated = cb }
}

// NewService creates a controller over st. Call Load before serving reads.
func NewService(st store.NoteStore, opts ...Option) *Service {
	s := &Service{
		store:     st,
		validator: NewValidator(false),
		logger:    slog.Default(),
		notes:     []models.MeetingNote{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the store contents.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh(ctx)
}

// Submit validates d, persists it as a new note, refreshes the collection and
// resets d. A *ValidationError leaves both d and the store untouched; a
// storage failure is returned as-is and d is kept so the user can retry.
func (s *Service) Submit(ctx context.Context, d *models.Draft) (models.MeetingNote, error) {
	if err := s.validator.Validate(*d); err != nil {
		s.logger.Debug("note rejected", slog.String("error", err.Error()))
		return models.MeetingNote{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := d.Note()
	if err := s.store.Add(ctx, &note); err != nil {
		s.logger.Error("note add failed", slog.String("error", err.Error()))
		return models.MeetingNote{}, err
	}
	if err := s.refresh(ctx); err != nil {
		// The note is stored; the next successful refresh picks it up.
		s.logger.Warn("refresh after add failed", slog.Int64("id", note.ID), slog.String("error", err.Error()))
		s.notes = append(s.notes, note)
	}
	d.Reset()

	s.logger.Info("note added",
		slog.Int64("id", note.ID),
		slog.String("reportee", note.Reportee),
		slog.String("date", note.Date))
	if s.onCreated != nil {
		s.onCreated(note, len(s.notes))
	}
	return note, nil
}

// Notes returns a snapshot of the in-memory collection. Callers own the
// returned slice.
func (s *Service) Notes() []models.MeetingNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

func (s *Service) refresh(ctx context.Context) error {
	all, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("noteservice: reload: %w", err)
	}
	s.notes = all
	return nil
}
