package export

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"testing"

	"github.com/starford/rapport/internal/apperr"
	"github.com/starford/rapport/internal/markdown"
	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/view"
)

type fakeSurface struct {
	docs []string
	err  error
}

func (f *fakeSurface) Print(_ context.Context, doc string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.docs = append(f.docs, doc)
	return []byte("%PDF-1.4 fake"), nil
}

func notes(n int) []models.MeetingNote {
	out := make([]models.MeetingNote, n)
	for i := range out {
		out[i] = models.MeetingNote{
			ID: int64(i + 1), Date: "2024-06-01", StartTime: "09:00", EndTime: "09:30",
			Reportee: fmt.Sprintf("Person %d", i+1), Points: "- item",
		}
	}
	return out
}

func render(t *testing.T, ns []models.MeetingNote, mode view.Mode) template.HTML {
	t.Helper()
	p, err := view.NewProjector(markdown.NewGoldmark())
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Project(ns, mode)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestPrintable_Shell(t *testing.T) {
	e, err := NewExporter(nil)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := e.Printable(render(t, notes(1), view.ModeCard), false)
	if err != nil {
		t.Fatalf("Printable: %v", err)
	}
	for _, want := range []string{"<title>Print Meeting Notes</title>", "<style>", "1x1 Meeting Notes", "Person 1", snap.ID} {
		if !strings.Contains(snap.HTML, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if strings.Contains(snap.HTML, "window.print") {
		t.Error("print script added without autoPrint")
	}
}

func TestPrintable_AutoPrint(t *testing.T) {
	e, _ := NewExporter(nil)
	snap, err := e.Printable(render(t, notes(1), view.ModeList), true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(snap.HTML, "window.print()") {
		t.Error("autoPrint document should trigger the print dialog")
	}
}

func TestPrintable_NoteCountMatchesSnapshot(t *testing.T) {
	e, _ := NewExporter(nil)
	for _, mode := range []view.Mode{view.ModeCard, view.ModeList} {
		for _, n := range []int{0, 1, 5} {
			snap, err := e.Printable(render(t, notes(n), mode), false)
			if err != nil {
				t.Fatal(err)
			}
			if got := CountNotes(snap.HTML); got != n {
				t.Errorf("%s/%d: note blocks = %d", mode, n, got)
			}
		}
	}
}

func TestPrintable_SnapshotIsStable(t *testing.T) {
	e, _ := NewExporter(nil)
	snap, err := e.Printable(render(t, notes(2), view.ModeCard), false)
	if err != nil {
		t.Fatal(err)
	}
	before := snap.HTML

	later, err := e.Printable(render(t, notes(4), view.ModeCard), false)
	if err != nil {
		t.Fatal(err)
	}
	if snap.HTML != before || CountNotes(snap.HTML) != 2 {
		t.Error("earlier snapshot changed")
	}
	if CountNotes(later.HTML) != 4 {
		t.Errorf("later snapshot = %d notes", CountNotes(later.HTML))
	}
}

func TestPrintable_UniqueSnapshotIDs(t *testing.T) {
	e, _ := NewExporter(nil)
	a, _ := e.Printable("", false)
	b, _ := e.Printable("", false)
	if a.ID == b.ID {
		t.Error("snapshot ids should differ")
	}
}

func TestPDF_NoSurface(t *testing.T) {
	e, _ := NewExporter(nil)
	snap, _ := e.Printable("", false)
	_, err := e.PDF(context.Background(), snap)
	if !errors.Is(err, apperr.ErrSurfaceUnavailable) {
		t.Fatalf("err = %v, want ErrSurfaceUnavailable", err)
	}
}

func TestPDF_SurfaceFailure(t *testing.T) {
	s := &fakeSurface{err: fmt.Errorf("%w: popup blocked", apperr.ErrSurfaceUnavailable)}
	e, _ := NewExporter(s)
	snap, _ := e.Printable("", false)
	if _, err := e.PDF(context.Background(), snap); !errors.Is(err, apperr.ErrSurfaceUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestPDF_Success(t *testing.T) {
	s := &fakeSurface{}
	e, _ := NewExporter(s)
	snap, _ := e.Printable(render(t, notes(2), view.ModeCard), false)
	pdf, err := e.PDF(context.Background(), snap)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Errorf("pdf = %q", pdf)
	}
	if len(s.docs) != 1 || s.docs[0] != snap.HTML {
		t.Error("surface should receive the snapshot document")
	}
}
