// Package view projects the note collection into its presentation shapes.
// Card and list modes render the same notes, in the same order, with the same
// per-note content; they differ only in the wrapping markup.
package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/starford/rapport/internal/markdown"
	"github.com/starford/rapport/internal/models"
)

// Mode selects a projection layout.
type Mode string

// Projection modes.
const (
	ModeCard Mode = "card"
	ModeList Mode = "list"
)

// EmptyMessage is rendered instead of an empty container.
const EmptyMessage = "No notes added yet."

// ParseMode maps a query value to a Mode. An empty value selects card mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCard:
		return ModeCard, nil
	case ModeList:
		return ModeList, nil
	}
	return "", fmt.Errorf("view: unknown mode %q", s)
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeList {
		return ModeCard
	}
	return ModeList
}

type noteView struct {
	ID        int64
	Reportee  string
	Date      string
	TimeRange string
	Points    template.HTML
}

type projection struct {
	Mode  Mode
	Empty string
	Notes []noteView
}

// Projector renders notes to HTML fragments.
type Projector struct {
	md   markdown.Renderer
	tmpl *template.Template
}

// NewProjector creates a projector that renders points with md.
func NewProjector(md markdown.Renderer) (*Projector, error) {
	tmpl, err := template.New("projection").Parse(projectionHTML)
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Projector{md: md, tmpl: tmpl}, nil
}

// Project renders notes in mode. The input slice is only read.
func (p *Projector) Project(notes []models.MeetingNote, mode Mode) (template.HTML, error) {
	data := projection{Mode: mode, Empty: EmptyMessage, Notes: make([]noteView, 0, len(notes))}
	for _, n := range notes {
		pts, err := p.md.Render(n.Points)
		if err != nil {
			return "", fmt.Errorf("view: note %d: %w", n.ID, err)
		}
		data.Notes = append(data.Notes, noteView{
			ID:        n.ID,
			Reportee:  n.Reportee,
			Date:      n.Date,
			TimeRange: n.TimeRange(),
			Points:    pts,
		})
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("view: execute: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

const projectionHTML = `{{define "note-body"}}<span class="note-title">{{.Reportee}}</span>
<span class="note-date">{{.Date}} &middot; {{.TimeRange}}</span>
<div class="note-points">{{.Points}}</div>{{end}}<section class="notes" data-mode="{{.Mode}}">
<h3>Meeting Notes</h3>
{{- if not .Notes}}
<p class="notes-empty">{{.Empty}}</p>
{{- else if eq .Mode "list"}}
<ul class="note-list">
{{- range .Notes}}
<li class="note note-row" data-note-id="{{.ID}}" style="border-bottom: 1px solid #e0e0e0; padding: 12px 0;">
{{template "note-body" .}}
</li>
{{- end}}
</ul>
{{- else}}
<div class="note-cards">
{{- range .Notes}}
<div class="note note-card" data-note-id="{{.ID}}" style="border: 1px solid #e0e0e0; border-radius: 8px; margin-bottom: 16px; padding: 16px; background: linear-gradient(90deg, #e3f2fd 0%, #fff 100%);">
{{template "note-body" .}}
</div>
{{- end}}
</div>
{{- end}}
</section>
`
