// Package apperr holds the sentinel errors shared across rapport packages.
package apperr

import "errors"

var (
	// ErrNotFound marks a file that no longer exists, typically one another
	// pass already imported or the user removed.
	ErrNotFound = errors.New("not found")
	// ErrStorage marks any failure of the backing note store. Callers surface
	// it as-is; nothing in rapport retries it.
	ErrStorage = errors.New("storage failure")
	// ErrSurfaceUnavailable is returned when no print surface (headless
	// browser) can be created for an export.
	ErrSurfaceUnavailable = errors.New("print surface unavailable")
)
