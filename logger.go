package glyphmesh

import (
	"log/slog"

	"github.com/gogpu/glyphmesh/internal/logging"
)

// SetLogger configures the logger for glyphmesh and all its sub-packages.
// By default, glyphmesh produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore silent output.
//
// Log levels used:
//   - [slog.LevelDebug]: per-flush and per-frame counts
//   - [slog.LevelWarn]: atlas rebuilds, overflows, failed uploads
//
// Example:
//
//	glyphmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.L()
}
