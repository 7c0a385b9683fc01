package api

import (
	"github.com/starford/rapport/internal/models"
)

// CreateNoteRequest is the request body for adding a note.
type CreateNoteRequest struct {
	Date      string `json:"date" example:"2024-06-01" validate:"required"`
	StartTime string `json:"start_time" example:"09:00" validate:"required"`
	EndTime   string `json:"end_time" example:"09:30" validate:"required"`
	Reportee  string `json:"reportee" example:"Alex" validate:"required"`
	Points    string `json:"points" example:"- roadmap\n- hiring" validate:"required"`
}

// Draft converts the request into a controller draft.
func (r CreateNoteRequest) Draft() *models.Draft {
	return &models.Draft{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reportee:  r.Reportee,
		Points:    r.Points,
	}
}

// NoteListResponse wraps the note collection.
type NoteListResponse struct {
	Notes []models.MeetingNote `json:"notes" validate:"required"`
	Total int                  `json:"total" example:"42" validate:"required"`
}

// ValidationResponse is returned with 422 when a draft is rejected.
type ValidationResponse struct {
	Error         string   `json:"error" example:"invalid note" validate:"required"`
	MissingFields []string `json:"missing_fields" example:"Reportee Name"`
	Invalid       []string `json:"invalid,omitempty" example:"End Time must be after Start Time"`
}
