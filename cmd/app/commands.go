package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/starford/rapport/internal"
	"github.com/starford/rapport/internal/apperr"
	"github.com/starford/rapport/internal/mcpserver"
	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/parser"
	"github.com/starford/rapport/internal/view"
)

// openCore loads the config and opens the store with a logger on stderr, so
// stdout stays free for command output and the MCP transport.
func openCore(ctx context.Context, cmd *cli.Command) (*internal.Config, *internal.Core, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := internal.NewLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	core, err := internal.NewCore(ctx, cfg, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	return cfg, core, nil
}

func modeFlag(cfg *internal.Config, cmd *cli.Command) (view.Mode, error) {
	if !cmd.IsSet("mode") {
		return cfg.View.Mode(), nil
	}
	return view.ParseMode(cmd.String("mode"))
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Record a meeting note from flags or a Markdown file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Meeting date"},
			&cli.StringFlag{Name: "start", Usage: "Start time, HH:MM"},
			&cli.StringFlag{Name: "end", Usage: "End time, HH:MM"},
			&cli.StringFlag{Name: "reportee", Usage: "Name of the person met"},
			&cli.StringFlag{Name: "points", Usage: "Discussion points in Markdown"},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Markdown file with frontmatter; flags override its fields"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			d := &models.Draft{}
			if path := cmd.String("file"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read note file: %w", err)
				}
				if d, err = parser.ParseDraft(data); err != nil {
					return fmt.Errorf("parse %s: %w", path, err)
				}
			}
			override(&d.Date, cmd, "date")
			override(&d.StartTime, cmd, "start")
			override(&d.EndTime, cmd, "end")
			override(&d.Reportee, cmd, "reportee")
			override(&d.Points, cmd, "points")

			_, core, err := openCore(ctx, cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			note, err := core.Notebook.Submit(ctx, d)
			if err != nil {
				var verr *noteservice.ValidationError
				if errors.As(err, &verr) {
					return errors.New(rejectionMessage(verr))
				}
				return err
			}
			fmt.Fprintf(cmd.Root().Writer, "Added note %d: %s with %s (%s)\n", note.ID, note.Date, note.Reportee, note.TimeRange())
			return nil
		},
	}
}

func override(field *string, cmd *cli.Command, name string) {
	if cmd.IsSet(name) {
		*field = cmd.String(name)
	}
}

func rejectionMessage(verr *noteservice.ValidationError) string {
	var parts []string
	if n := len(verr.Missing); n > 0 {
		label := "field"
		if n > 1 {
			label = "fields"
		}
		parts = append(parts, fmt.Sprintf("Missing Information: please fill in the following %s: %s", label, strings.Join(verr.Missing, ", ")))
	}
	parts = append(parts, verr.Invalid...)
	return strings.Join(parts, "; ")
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print every note as cards or a list",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "card or list (default from config)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, core, err := openCore(ctx, cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			mode, err := modeFlag(cfg, cmd)
			if err != nil {
				return err
			}
			out, err := core.Terminal.Render(core.Notebook.Notes(), mode)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.Root().Writer, out)
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write a printable HTML snapshot, and optionally a PDF",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "card or list (default from config)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output HTML path; the PDF is written next to it (default: export dir)"},
			&cli.BoolFlag{Name: "pdf", Usage: "Also print the snapshot to PDF with headless Chrome"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, core, err := openCore(ctx, cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			mode, err := modeFlag(cfg, cmd)
			if err != nil {
				return err
			}
			snap, err := core.Notebook.Export(mode, false)
			if err != nil {
				return err
			}

			base := "meeting-notes-" + snap.ID
			save := func(ext string, data []byte) (string, error) {
				if out := cmd.String("out"); out != "" {
					path := strings.TrimSuffix(out, filepath.Ext(out)) + ext
					return path, writeFile(path, data)
				}
				return filepath.Join(core.Exports.Root(), base+ext), core.Exports.Write(base+ext, data)
			}

			htmlPath, err := save(".html", []byte(snap.HTML))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, htmlPath)

			if !cmd.Bool("pdf") {
				return nil
			}
			pdf, err := core.Notebook.PDF(ctx, snap)
			if err != nil {
				if errors.Is(err, apperr.ErrSurfaceUnavailable) {
					return fmt.Errorf("saved %s but PDF printing is unavailable: %w", htmlPath, err)
				}
				return err
			}
			pdfPath, err := save(".pdf", pdf)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, pdfPath)
			return nil
		},
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the notes to MCP clients over stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, core, err := openCore(ctx, cmd)
			if err != nil {
				return err
			}
			defer core.Close()

			return mcpserver.New(core.Notebook, core.Terminal, core.Exports, version).ServeStdio()
		},
	}
}
