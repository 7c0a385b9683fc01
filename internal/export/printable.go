// Package export turns a rendered note projection into a standalone printable
// document and optionally prints it to PDF through a headless browser.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starford/rapport/internal/apperr"
)

// Title is the fixed document title of every export.
const Title = "Print Meeting Notes"

// Snapshot is a point-in-time printable document. It never changes after
// creation, whatever happens to the store afterwards.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Body      template.HTML // projection the document was built from
	HTML      string
}

// Surface prints a standalone HTML document, typically to PDF.
type Surface interface {
	Print(ctx context.Context, doc string) ([]byte, error)
}

// Exporter wraps rendered projections in the print shell.
type Exporter struct {
	tmpl    *template.Template
	surface Surface
}

// NewExporter creates an exporter. surface may be nil, in which case PDF
// printing reports apperr.ErrSurfaceUnavailable.
func NewExporter(surface Surface) (*Exporter, error) {
	tmpl, err := template.New("print").Parse(printHTML)
	if err != nil {
		return nil, fmt.Errorf("export: parse template: %w", err)
	}
	return &Exporter{tmpl: tmpl, surface: surface}, nil
}

type printData struct {
	Title     string
	ID        string
	Body      template.HTML
	AutoPrint bool
}

// Printable wraps rendered in the fixed HTML shell. With autoPrint the
// document opens the browser print dialog once loaded.
func (e *Exporter) Printable(rendered template.HTML, autoPrint bool) (*Snapshot, error) {
	snap := &Snapshot{ID: uuid.NewString(), CreatedAt: time.Now().UTC(), Body: rendered}
	var buf bytes.Buffer
	err := e.tmpl.Execute(&buf, printData{
		Title:     Title,
		ID:        snap.ID,
		Body:      rendered,
		AutoPrint: autoPrint,
	})
	if err != nil {
		return nil, fmt.Errorf("export: execute: %w", err)
	}
	snap.HTML = buf.String()
	return snap, nil
}

// PDF prints snap through the configured surface. Any failure to obtain a
// surface is reported as apperr.ErrSurfaceUnavailable, never dropped.
func (e *Exporter) PDF(ctx context.Context, snap *Snapshot) ([]byte, error) {
	if e.surface == nil {
		return nil, fmt.Errorf("%w: no surface configured", apperr.ErrSurfaceUnavailable)
	}
	pdf, err := e.surface.Print(ctx, snap.HTML)
	if err != nil {
		if errors.Is(err, apperr.ErrSurfaceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("export: print %s: %w", snap.ID, err)
	}
	return pdf, nil
}

// CountNotes returns the number of note blocks in an exported document.
func CountNotes(doc string) int {
	return strings.Count(doc, `data-note-id="`)
}

const printHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="rapport-snapshot" content="{{.ID}}" />
    <title>{{.Title}}</title>
    <style>
      body { font-family: 'Roboto', sans-serif; margin: 40px; }
      h2 { color: #1976d2; }
      .note { margin-bottom: 24px; padding: 16px; border: 1px solid #eee; border-radius: 8px; page-break-inside: avoid; }
      .note-title { display: block; font-weight: bold; color: #333; }
      .note-date { display: block; color: #555; }
      .note-points { margin-top: 8px; }
      ul.note-list { list-style: none; padding: 0; }
      @media print { body { margin: 0; } }
    </style>
  </head>
  <body{{if .AutoPrint}} onload="window.focus(); window.print();"{{end}}>
    <h2>1x1 Meeting Notes</h2>
    {{.Body}}
  </body>
</html>
`
