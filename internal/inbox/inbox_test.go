package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/starford/rapport/internal/apperr"
	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/parser"
	"github.com/starford/rapport/internal/storage"
	"github.com/starford/rapport/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// inboxTestEnv sets up an inbox dir, a store-backed service and the inbox.
func inboxTestEnv(t *testing.T, cb EventCallback) (string, storage.Provider, *noteservice.Service, *Inbox) {
	t.Helper()
	dir, fs := testutil.TestInbox(t)
	svc := noteservice.NewService(testutil.TestDB(t), noteservice.WithLogger(quietLogger()))
	return dir, fs, svc, New(fs, svc, quietLogger(), cb)
}

func writeDraft(t *testing.T, dir, name string, d models.Draft) {
	t.Helper()
	data, err := parser.FormatDraft(d)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func validDraft(who string) models.Draft {
	return models.Draft{Date: "2024-06-01", StartTime: "09:00", EndTime: "09:30", Reportee: who, Points: "- roadmap"}
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func TestScan_AcceptsAndRejects(t *testing.T) {
	var mu sync.Mutex
	var events []string
	dir, _, svc, in := inboxTestEnv(t, func(o Outcome, p string) {
		mu.Lock()
		events = append(events, string(o)+":"+p)
		mu.Unlock()
	})

	writeDraft(t, dir, "a.md", validDraft("Alex"))
	writeDraft(t, dir, "b.md", models.Draft{Date: "2024-06-01", Points: "- only points"})
	_ = os.WriteFile(filepath.Join(dir, "c.md"), []byte("---\n: bad: {{{\n---\nx\n"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644)

	st, err := in.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if st.Accepted != 1 || st.Rejected != 2 || st.Retry != 0 {
		t.Errorf("stats = %+v", st)
	}

	notes := svc.Notes()
	if len(notes) != 1 || notes[0].Reportee != "Alex" || notes[0].Points != "- roadmap" {
		t.Fatalf("notes = %+v", notes)
	}
	if exists(filepath.Join(dir, "a.md")) {
		t.Error("accepted file should be removed")
	}
	for _, name := range []string{"b", "c"} {
		if !exists(filepath.Join(dir, RejectedDir, name+".md")) {
			t.Errorf("%s.md not moved to rejected/", name)
		}
		if !exists(filepath.Join(dir, RejectedDir, name+".txt")) {
			t.Errorf("%s.txt reason missing", name)
		}
	}
	reason, _ := os.ReadFile(filepath.Join(dir, RejectedDir, "b.txt"))
	if want := noteservice.FieldReportee; !strings.Contains(string(reason), want) {
		t.Errorf("reason %q should name %q", reason, want)
	}
	if !exists(filepath.Join(dir, "notes.txt")) {
		t.Error("non-markdown file should be left alone")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 3 || events[0] != "accepted:a.md" {
		t.Errorf("events = %v", events)
	}
}

func TestScan_RejectedNotRescanned(t *testing.T) {
	dir, _, _, in := inboxTestEnv(t, nil)
	writeDraft(t, dir, "b.md", models.Draft{Points: "x"})

	if st, _ := in.Scan(context.Background()); st.Rejected != 1 {
		t.Fatalf("first scan = %+v", st)
	}
	st, err := in.Scan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st != (Stats{}) {
		t.Errorf("second scan = %+v, want nothing", st)
	}
}

type brokenSubmitter struct{}

func (brokenSubmitter) Submit(context.Context, *models.Draft) (models.MeetingNote, error) {
	return models.MeetingNote{}, fmt.Errorf("%w: disk full", apperr.ErrStorage)
}

func TestProcess_StorageFailureKeepsFile(t *testing.T) {
	dir, fs := testutil.TestInbox(t)
	in := New(fs, brokenSubmitter{}, quietLogger(), nil)
	writeDraft(t, dir, "a.md", validDraft("Alex"))

	if got := in.Process(context.Background(), "a.md"); got != Retry {
		t.Fatalf("outcome = %s, want retry", got)
	}
	if !exists(filepath.Join(dir, "a.md")) {
		t.Error("file must stay for the next pass")
	}
	if exists(filepath.Join(dir, RejectedDir)) {
		t.Error("storage failure must not reject the file")
	}
}

func TestProcess_MissingFileSkipped(t *testing.T) {
	_, _, _, in := inboxTestEnv(t, nil)
	if got := in.Process(context.Background(), "gone.md"); got != Skipped {
		t.Errorf("outcome = %s", got)
	}
}

func TestProcess_ReadFailureRetries(t *testing.T) {
	dir, _, _, in := inboxTestEnv(t, nil)
	if err := os.Mkdir(filepath.Join(dir, "odd.md"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := in.Process(context.Background(), "odd.md"); got != Retry {
		t.Errorf("outcome = %s, want retry", got)
	}
	if !exists(filepath.Join(dir, "odd.md")) {
		t.Error("unreadable entry must be left in place")
	}
}

func TestScan_ImportsInDropOrder(t *testing.T) {
	dir, _, svc, in := inboxTestEnv(t, nil)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, who := range []string{"Zoe", "Alex", "Mia"} {
		name := strings.ToLower(who) + ".md"
		writeDraft(t, dir, name, validDraft(who))
		mtime := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(filepath.Join(dir, name), mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}

	if st, err := in.Scan(context.Background()); err != nil || st.Accepted != 3 {
		t.Fatalf("scan = %+v, %v", st, err)
	}
	notes := svc.Notes()
	if len(notes) != 3 {
		t.Fatalf("notes = %d", len(notes))
	}
	for i, want := range []string{"Zoe", "Alex", "Mia"} {
		if notes[i].Reportee != want {
			t.Errorf("note %d = %s, want %s", i, notes[i].Reportee, want)
		}
	}
}

func TestWatch_ImportsNewFile(t *testing.T) {
	dir, _, svc, in := inboxTestEnv(t, nil)
	writeDraft(t, dir, "early.md", validDraft("Early"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- in.Watch(ctx, dir) }()

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return len(svc.Notes()) == 1
	}, "initial scan did not import existing file")

	time.Sleep(100 * time.Millisecond)
	writeDraft(t, dir, "late.md", validDraft("Late"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return len(svc.Notes()) == 2 && !exists(filepath.Join(dir, "late.md"))
	}, "new file not imported by watcher")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop")
	}
}
