// Package notebook bundles the note controller with its projections and the
// print exporter. It is the surface shared by the HTTP API, the web pages,
// the MCP tools and the CLI commands.
package notebook

import (
	"context"
	"html/template"

	"github.com/starford/rapport/internal/export"
	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/view"
)

// Notebook renders and exports the controller's collection.
type Notebook struct {
	svc       *noteservice.Service
	projector *view.Projector
	exporter  *export.Exporter
}

// New creates a notebook.
func New(svc *noteservice.Service, projector *view.Projector, exporter *export.Exporter) *Notebook {
	return &Notebook{svc: svc, projector: projector, exporter: exporter}
}

// Submit forwards d to the controller.
func (nb *Notebook) Submit(ctx context.Context, d *models.Draft) (models.MeetingNote, error) {
	return nb.svc.Submit(ctx, d)
}

// Notes returns the current collection in insertion order.
func (nb *Notebook) Notes() []models.MeetingNote {
	return nb.svc.Notes()
}

// Render projects the current collection in mode.
func (nb *Notebook) Render(mode view.Mode) (template.HTML, error) {
	return nb.projector.Project(nb.svc.Notes(), mode)
}

// Export snapshots the collection as rendered in mode into a printable
// document. Later submissions do not affect the returned snapshot.
func (nb *Notebook) Export(mode view.Mode, autoPrint bool) (*export.Snapshot, error) {
	rendered, err := nb.Render(mode)
	if err != nil {
		return nil, err
	}
	return nb.exporter.Printable(rendered, autoPrint)
}

// ExportPDF snapshots the collection and prints it through the configured
// surface. It returns apperr.ErrSurfaceUnavailable when no surface exists.
func (nb *Notebook) ExportPDF(ctx context.Context, mode view.Mode) ([]byte, *export.Snapshot, error) {
	snap, err := nb.Export(mode, false)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := nb.PDF(ctx, snap)
	if err != nil {
		return nil, snap, err
	}
	return pdf, snap, nil
}

// PDF prints an existing snapshot.
func (nb *Notebook) PDF(ctx context.Context, snap *export.Snapshot) ([]byte, error) {
	return nb.exporter.PDF(ctx, snap)
}
