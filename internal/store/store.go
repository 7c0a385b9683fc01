package store

import (
	"context"

	"github.com/starford/rapport/internal/models"
)

// NoteStore is the durable, append-only collection of meeting notes.
// Consumers should depend on this interface rather than the concrete *DB type
// so tests can substitute failing or in-memory stores.
type NoteStore interface {
	// Add persists n and sets its ID and CreatedAt. Failures wrap
	// apperr.ErrStorage.
	Add(ctx context.Context, n *models.MeetingNote) error
	// All returns every persisted note in insertion order, read from the
	// backing medium on each call.
	All(ctx context.Context) ([]models.MeetingNote, error)
}

// Verify *DB satisfies NoteStore at compile time.
var _ NoteStore = (*DB)(nil)
