// Package inbox imports meeting notes dropped as Markdown files into a folder.
//
// Every top-level .md file is parsed into a draft and submitted through the
// note service. Accepted files are deleted. Rejected files are moved into
// rejected/ next to a .txt file holding the reason. Files that hit a storage
// failure stay where they are and are retried on the next pass.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/starford/rapport/internal/apperr"
	"github.com/starford/rapport/internal/models"
	"github.com/starford/rapport/internal/noteservice"
	"github.com/starford/rapport/internal/parser"
	"github.com/starford/rapport/internal/storage"
)

// RejectedDir is the subdirectory rejected files are moved into.
const RejectedDir = "rejected"

// Outcome is the result of processing one inbox file.
type Outcome string

const (
	Accepted Outcome = "accepted"
	Rejected Outcome = "rejected"
	Retry    Outcome = "retry"
	Skipped  Outcome = "skipped"
)

// Submitter accepts drafts. *noteservice.Service implements it.
type Submitter interface {
	Submit(ctx context.Context, d *models.Draft) (models.MeetingNote, error)
}

// EventCallback is called after a file has been accepted or rejected.
type EventCallback func(outcome Outcome, path string)

// Stats summarises a scan.
type Stats struct {
	Accepted int
	Rejected int
	Retry    int
}

// Inbox processes drafts from a storage.Provider.
type Inbox struct {
	fs     storage.Provider
	svc    Submitter
	logger *slog.Logger
	cb     EventCallback
}

// New creates an inbox. cb may be nil.
func New(fs storage.Provider, svc Submitter, logger *slog.Logger, cb EventCallback) *Inbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{fs: fs, svc: svc, logger: logger, cb: cb}
}

// Scan processes every pending file once, oldest first.
func (in *Inbox) Scan(ctx context.Context) (Stats, error) {
	var st Stats
	files, err := in.fs.List("")
	if err != nil {
		return st, err
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		switch in.Process(ctx, f.Path) {
		case Accepted:
			st.Accepted++
		case Rejected:
			st.Rejected++
		case Retry:
			st.Retry++
		}
	}
	return st, nil
}

// Process handles a single file relative to the inbox root.
func (in *Inbox) Process(ctx context.Context, rel string) Outcome {
	data, err := in.fs.Read(rel)
	if errors.Is(err, apperr.ErrNotFound) {
		// Already processed or removed by the user.
		in.logger.Debug("inbox: read skipped", slog.String("path", rel))
		return Skipped
	}
	if err != nil {
		in.logger.Warn("inbox: read failed, will retry", slog.String("path", rel), slog.String("error", err.Error()))
		return Retry
	}

	d, err := parser.ParseDraft(data)
	if err != nil {
		return in.reject(rel, err)
	}

	note, err := in.svc.Submit(ctx, d)
	var verr *noteservice.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &verr):
		return in.reject(rel, verr)
	case errors.Is(err, apperr.ErrStorage):
		in.logger.Warn("inbox: storage failure, will retry", slog.String("path", rel), slog.String("error", err.Error()))
		return Retry
	default:
		in.logger.Warn("inbox: submit failed", slog.String("path", rel), slog.String("error", err.Error()))
		return Retry
	}

	if err := in.fs.Delete(rel); err != nil {
		// The note is stored; leaving the file would import it twice.
		in.logger.Error("inbox: delete accepted file failed", slog.String("path", rel), slog.String("error", err.Error()))
	}
	in.logger.Info("inbox: imported", slog.String("path", rel), slog.Int64("id", note.ID))
	in.emit(Accepted, rel)
	return Accepted
}

func (in *Inbox) reject(rel string, reason error) Outcome {
	name := path.Base(rel)
	dst := path.Join(RejectedDir, name)
	if err := in.fs.Move(rel, dst); err != nil {
		in.logger.Error("inbox: move rejected file failed", slog.String("path", rel), slog.String("error", err.Error()))
		return Retry
	}
	msg := fmt.Sprintf("%s\n", reason.Error())
	if err := in.fs.Write(strings.TrimSuffix(dst, ".md")+".txt", []byte(msg)); err != nil {
		in.logger.Warn("inbox: write reason failed", slog.String("path", dst), slog.String("error", err.Error()))
	}
	in.logger.Info("inbox: rejected", slog.String("path", rel), slog.String("reason", reason.Error()))
	in.emit(Rejected, rel)
	return Rejected
}

func (in *Inbox) emit(o Outcome, rel string) {
	if in.cb != nil {
		in.cb(o, rel)
	}
}
