package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/rapport/internal/export"
	"github.com/starford/rapport/internal/markdown"
	"github.com/starford/rapport/internal/notebook"
	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/storage"
	"github.com/starford/rapport/internal/store"
	"github.com/starford/rapport/internal/view"
)

// Core holds the components shared by the server and the CLI commands.
type Core struct {
	DB       *store.DB
	Service  *noteservice.Service
	Notebook *notebook.Notebook
	Terminal *view.Terminal
	Exports  *storage.FS
}

// NewCore opens the note store, loads the collection and builds the
// projections and the exporter. onCreated may be nil.
func NewCore(ctx context.Context, cfg *Config, logger *slog.Logger, onCreated noteservice.CreatedCallback) (*Core, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := store.Open(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	opts := []noteservice.Option{
		noteservice.WithLogger(logger),
		noteservice.WithTimeOrder(cfg.Notes.EnforceTimeOrder),
	}
	if onCreated != nil {
		opts = append(opts, noteservice.OnCreated(onCreated))
	}
	svc := noteservice.NewService(db, opts...)
	if err := svc.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load notes: %w", err)
	}
	logger.Info("Notes loaded", slog.Int("count", len(svc.Notes())))

	projector, err := view.NewProjector(markdown.NewGoldmark())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var surface export.Surface
	if cfg.Export.Chrome.Enabled {
		surface = &export.ChromeSurface{
			ExecPath: cfg.Export.Chrome.ExecPath,
			Timeout:  cfg.Export.Chrome.Timeout,
		}
	}
	exporter, err := export.NewExporter(surface)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	term, err := view.NewTerminal(cfg.View.TerminalStyle, cfg.View.TerminalWidth)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	exports, err := storage.NewFS(cfg.Export.Dir)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init export storage: %w", err)
	}

	return &Core{
		DB:       db,
		Service:  svc,
		Notebook: notebook.New(svc, projector, exporter),
		Terminal: term,
		Exports:  exports,
	}, nil
}

// Ready reports whether the store still answers queries.
func (c *Core) Ready(ctx context.Context) error {
	_, err := c.DB.Count(ctx)
	return err
}

// Close releases the store.
func (c *Core) Close() error {
	return c.DB.Close()
}
