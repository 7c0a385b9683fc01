package noteservice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/rapport/internal/markdown"
	"github.com/starford/rapport/internal/models"
)

// Field labels reported to users, in validation order.
const (
	FieldDate      = "Date"
	FieldStartTime = "Start Time"
	FieldEndTime   = "End Time"
	FieldReportee  = "Reportee Name"
	FieldPoints    = "Discussion Points"
)

const clockLayout = "15:04"

// ValidationError reports every field that blocked a draft from being saved.
type ValidationError struct {
	// Missing lists absent fields in validation order.
	Missing []string
	// Invalid lists cross-field problems; only populated when time ordering
	// is enforced.
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, strings.Join(e.Invalid, "; "))
	}
	return "invalid note: " + strings.Join(parts, "; ")
}

// Validator enforces the required-field invariants of a meeting note.
type Validator struct {
	enforceTimeOrder bool
}

// NewValidator returns a validator. With enforceTimeOrder the end time must be
// strictly after the start time; overnight ranges are then rejected.
func NewValidator(enforceTimeOrder bool) *Validator {
	return &Validator{enforceTimeOrder: enforceTimeOrder}
}

var pointsNotEmpty = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if markdown.IsEmpty(s) {
		return errors.New("cannot be blank")
	}
	return nil
})

// Validate returns nil when d may be persisted, otherwise a *ValidationError.
// All failing fields are collected.
func (v *Validator) Validate(d models.Draft) error {
	checks := []struct {
		label string
		value string
		rule  validation.Rule
	}{
		{FieldDate, d.Date, validation.Required},
		{FieldStartTime, d.StartTime, validation.Required},
		{FieldEndTime, d.EndTime, validation.Required},
		{FieldReportee, d.Reportee, validation.Required},
		{FieldPoints, d.Points, pointsNotEmpty},
	}

	verr := &ValidationError{}
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rule); err != nil {
			verr.Missing = append(verr.Missing, c.label)
		}
	}

	if v.enforceTimeOrder && d.StartTime != "" && d.EndTime != "" {
		verr.Invalid = append(verr.Invalid, timeOrderProblems(d.StartTime, d.EndTime)...)
	}

	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return verr
}

func timeOrderProblems(start, end string) []string {
	var problems []string
	clock := validation.Date(clockLayout)
	if err := validation.Validate(start, clock); err != nil {
		problems = append(problems, fmt.Sprintf("%s must be HH:MM", FieldStartTime))
	}
	if err := validation.Validate(end, clock); err != nil {
		problems = append(problems, fmt.Sprintf("%s must be HH:MM", FieldEndTime))
	}
	if len(problems) > 0 {
		return problems
	}
	s, _ := time.Parse(clockLayout, start)
	e, _ := time.Parse(clockLayout, end)
	if !e.After(s) {
		problems = append(problems, fmt.Sprintf("%s must be after %s", FieldEndTime, FieldStartTime))
	}
	return problems
}
