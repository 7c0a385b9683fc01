package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/view"
)

// testConfig writes a config rooted in a temp dir and returns its path and
// the export directory.
func testConfig(t *testing.T, defaultMode string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	exportDir := filepath.Join(dir, "exports")
	cfg := fmt.Sprintf(`
sqlite:
  path: %s
view:
  default_mode: %s
  terminal_style: notty
  terminal_width: 60
export:
  dir: %s
  chrome:
    enabled: false
`, filepath.Join(dir, "rapport.db"), defaultMode, exportDir)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, exportDir
}

// runApp runs the CLI with args after the config flag and returns stdout.
func runApp(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	argv := append([]string{"rapport", "--config", configPath}, args...)
	err := app.Run(context.Background(), argv)
	return out.String(), err
}

func addNote(t *testing.T, configPath, who string) {
	t.Helper()
	if _, err := runApp(t, configPath, "add",
		"--date", "2024-06-01", "--start", "09:00", "--end", "09:30",
		"--reportee", who, "--points", "- roadmap"); err != nil {
		t.Fatalf("add %s: %v", who, err)
	}
}

func TestRejectionMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *noteservice.ValidationError
		want string
	}{
		{
			name: "single field",
			err:  &noteservice.ValidationError{Missing: []string{noteservice.FieldDate}},
			want: "Missing Information: please fill in the following field: " + noteservice.FieldDate,
		},
		{
			name: "several fields",
			err:  &noteservice.ValidationError{Missing: []string{noteservice.FieldReportee, noteservice.FieldPoints}},
			want: "Missing Information: please fill in the following fields: " + noteservice.FieldReportee + ", " + noteservice.FieldPoints,
		},
		{
			name: "invalid only",
			err:  &noteservice.ValidationError{Invalid: []string{"End Time must be after Start Time"}},
			want: "End Time must be after Start Time",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rejectionMessage(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.md")
	draft := "---\ndate: 2024-06-01\nstart: \"09:00\"\nend: \"09:30\"\nreportee: Alex\n---\n- roadmap\n"
	if err := os.WriteFile(file, []byte(draft), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "file",
			args: []string{"add", "--file", file},
			want: "with Alex (09:00 - 09:30)",
		},
		{
			name: "flags override file",
			args: []string{"add", "--file", file, "--reportee", "Mia", "--end", "10:00"},
			want: "with Mia (09:00 - 10:00)",
		},
		{
			name: "flags only",
			args: []string{"add", "--date", "2024-06-02", "--start", "10:00", "--end", "10:30", "--reportee", "Sam", "--points", "- hiring"},
			want: "2024-06-02 with Sam",
		},
		{
			name:    "missing fields",
			args:    []string{"add", "--date", "2024-06-02", "--points", "- hiring"},
			wantErr: "following fields: " + noteservice.FieldStartTime,
		},
		{
			name:    "missing file",
			args:    []string{"add", "--file", filepath.Join(dir, "gone.md")},
			wantErr: "read note file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := testConfig(t, "card")
			out, err := runApp(t, cfg, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				if list, _ := runApp(t, cfg, "list"); !strings.Contains(list, view.EmptyMessage) {
					t.Errorf("rejected add stored a note: %q", list)
				}
				return
			}
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestListCommand_Mode(t *testing.T) {
	tests := []struct {
		name        string
		defaultMode string
		args        []string
		wantBorder  bool
	}{
		{name: "config default card", defaultMode: "card", args: []string{"list"}, wantBorder: true},
		{name: "config default list", defaultMode: "list", args: []string{"list"}, wantBorder: false},
		{name: "flag overrides config", defaultMode: "list", args: []string{"list", "--mode", "card"}, wantBorder: true},
		{name: "short flag", defaultMode: "card", args: []string{"list", "-m", "list"}, wantBorder: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := testConfig(t, tt.defaultMode)
			addNote(t, cfg, "Alex")

			out, err := runApp(t, cfg, tt.args...)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if !strings.Contains(out, "Alex") {
				t.Errorf("output missing note: %q", out)
			}
			if got := strings.Contains(out, "╭"); got != tt.wantBorder {
				t.Errorf("card border = %v, want %v in %q", got, tt.wantBorder, out)
			}
		})
	}
}

func TestListCommand_BadMode(t *testing.T) {
	cfg, _ := testConfig(t, "card")
	if _, err := runApp(t, cfg, "list", "--mode", "grid"); err == nil {
		t.Fatal("unknown mode should fail")
	}
}

func TestExportCommand_Paths(t *testing.T) {
	outDir := t.TempDir()
	tests := []struct {
		name     string
		args     []string
		wantPath func(exportDir string) string
		wantErr  string
	}{
		{
			name:     "explicit out",
			args:     []string{"export", "--out", filepath.Join(outDir, "a", "report.html")},
			wantPath: func(string) string { return filepath.Join(outDir, "a", "report.html") },
		},
		{
			name:     "extension replaced",
			args:     []string{"export", "-o", filepath.Join(outDir, "b", "report.htm")},
			wantPath: func(string) string { return filepath.Join(outDir, "b", "report.html") },
		},
		{
			name:     "pdf without browser keeps html",
			args:     []string{"export", "--out", filepath.Join(outDir, "c", "report.html"), "--pdf"},
			wantPath: func(string) string { return filepath.Join(outDir, "c", "report.html") },
			wantErr:  "unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, exportDir := testConfig(t, "card")
			addNote(t, cfg, "Alex")

			out, err := runApp(t, cfg, tt.args...)
			if tt.wantErr == "" && err != nil {
				t.Fatalf("export: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
			want := tt.wantPath(exportDir)
			if strings.TrimSpace(out) != want {
				t.Errorf("printed %q, want %q", out, want)
			}
			doc, err := os.ReadFile(want)
			if err != nil {
				t.Fatalf("html not written: %v", err)
			}
			if !strings.Contains(string(doc), "Alex") {
				t.Error("export should contain the note")
			}
			pdf := strings.TrimSuffix(want, ".html") + ".pdf"
			if _, err := os.Stat(pdf); err == nil {
				t.Error("no pdf expected without a browser")
			}
		})
	}
}

func TestExportCommand_DefaultDir(t *testing.T) {
	cfg, exportDir := testConfig(t, "list")
	addNote(t, cfg, "Alex")

	out, err := runApp(t, cfg, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(exportDir, "meeting-notes-*.html"))
	if len(matches) != 1 {
		t.Fatalf("exports = %v", matches)
	}
	if strings.TrimSpace(out) != matches[0] {
		t.Errorf("printed %q, want %q", out, matches[0])
	}
}
