package internal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/rapport/internal/apperr"
	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/view"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = filepath.Join(dir, "rapport.db")
	cfg.Export.Dir = filepath.Join(dir, "exports")
	cfg.Export.Chrome.Enabled = false
	cfg.View.TerminalStyle = "notty"
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewCore(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	var created []int
	core, err := NewCore(ctx, cfg, discardLogger(), func(n models.MeetingNote, total int) {
		created = append(created, total)
	})
	if err != nil {
		t.Fatalf("NewCore: %v", err)
	}
	defer core.Close()

	if _, err := os.Stat(cfg.Export.Dir); err != nil {
		t.Errorf("export dir not created: %v", err)
	}
	if err := core.Ready(ctx); err != nil {
		t.Errorf("Ready: %v", err)
	}

	d := models.Draft{Date: "2024-06-01", StartTime: "09:00", EndTime: "09:30", Reportee: "Alex", Points: "- hiring"}
	if _, err := core.Notebook.Submit(ctx, &d); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(created) != 1 || created[0] != 1 {
		t.Errorf("created callback totals = %v", created)
	}

	out, err := core.Terminal.Render(core.Notebook.Notes(), view.ModeList)
	if err != nil || out == "" {
		t.Errorf("terminal render = %q, %v", out, err)
	}

	if _, _, err := core.Notebook.ExportPDF(ctx, view.ModeCard); !errors.Is(err, apperr.ErrSurfaceUnavailable) {
		t.Errorf("disabled chrome should report unavailable, got %v", err)
	}
}

func TestNewCore_ReloadsExistingNotes(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := NewCore(ctx, cfg, discardLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	d := models.Draft{Date: "2024-06-01", StartTime: "09:00", EndTime: "09:30", Reportee: "Alex", Points: "ok"}
	if _, err := first.Notebook.Submit(ctx, &d); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := NewCore(ctx, cfg, discardLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if notes := second.Notebook.Notes(); len(notes) != 1 || notes[0].Reportee != "Alex" {
		t.Errorf("reloaded notes = %+v", notes)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("Run without config should fail")
	}
}
