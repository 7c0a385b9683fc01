package inbox

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/rapport/internal/storage"
)

// settle is how long a file must stay quiet before it is processed. Editors
// and copy tools often write a file in several steps.
const settle = 200 * time.Millisecond

// Watch scans the inbox once and then processes files as they appear under
// root until ctx is cancelled. Only root itself is watched; rejected/ is not.
func (in *Inbox) Watch(ctx context.Context, root string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}
	in.logger.Info("inbox: watching", slog.String("root", root))

	if st, err := in.Scan(ctx); err != nil {
		in.logger.Warn("inbox: initial scan failed", slog.String("error", err.Error()))
	} else if st.Accepted+st.Rejected+st.Retry > 0 {
		in.logger.Info("inbox: initial scan",
			slog.Int("accepted", st.Accepted),
			slog.Int("rejected", st.Rejected),
			slog.Int("retry", st.Retry))
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			in.logger.Info("inbox: stopped")
			return nil

		case <-timer.C:
			for rel := range pending {
				in.Process(ctx, rel)
			}
			clear(pending)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, ".md") || strings.HasPrefix(name, storage.TempPrefix) {
				continue
			}
			if filepath.Dir(ev.Name) != filepath.Clean(root) {
				continue
			}
			pending[name] = struct{}{}
			timer.Reset(settle)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			in.logger.Error("inbox: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}
