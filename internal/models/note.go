// Package models defines the domain types for rapport.
package models

import "time"

// MeetingNote is one persisted 1x1 meeting record. Records are immutable once
// stored; ID is issued by the store.
type MeetingNote struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Reportee  string    `json:"reportee"`
	Points    string    `json:"points"` // Markdown
	CreatedAt time.Time `json:"created_at"`
}

// TimeRange returns the "start - end" label used by every projection.
func (n MeetingNote) TimeRange() string {
	return n.StartTime + " - " + n.EndTime
}

// Draft holds unvalidated input for a note that has not been accepted yet.
type Draft struct {
	Date      string `json:"date" yaml:"date"`
	StartTime string `json:"start_time" yaml:"start"`
	EndTime   string `json:"end_time" yaml:"end"`
	Reportee  string `json:"reportee" yaml:"reportee"`
	Points    string `json:"points" yaml:"-"`
}

// Reset clears every field back to its empty default.
func (d *Draft) Reset() {
	*d = Draft{}
}

// Note builds the record to persist from the draft values.
func (d Draft) Note() MeetingNote {
	return MeetingNote{
		Date:      d.Date,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Reportee:  d.Reportee,
		Points:    d.Points,
	}
}

// InboxFile describes a pending markdown file in the drop folder. ModTime
// orders imports so notes are stored in the order they were dropped.
type InboxFile struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
}
