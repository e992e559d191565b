package draft

import (
	"log/slog"

	"github.com/draft2d/draft/internal/logging"
)

// SetLogger configures the logger for draft and all its sub-packages.
// By default, draft produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by draft:
//   - [slog.LevelDebug]: per-entity codec decisions (skipped layers, handle allocation)
//   - [slog.LevelWarn]: recoverable issues (unsupported DXF entity, failed equation)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	draft.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by draft.
// Sub-packages (param/, dxf/, svg/) share the same logger configuration
// through internal/logging without introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
