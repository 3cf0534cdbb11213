package viewer

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/gogpu/viewer/internal/logging"
)

// loggerPtr stores the package logger. Accessed atomically so that
// SetLogger can be called concurrently with viewers being created.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Nop())
}

// SetLogger configures the default logger for viewers created afterwards
// and for the gg raster backend. By default nothing is logged. Pass nil to
// restore silence.
//
// Log levels used by the viewer:
//   - [slog.LevelDebug]: per-frame diagnostics (face counts, union fallbacks)
//   - [slog.LevelInfo]: lifecycle (load batches, renderer switches)
//   - [slog.LevelWarn]: contained failures (conversion, selection authority)
//   - [slog.LevelError]: caller contract violations
//
// Example:
//
//	viewer.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	l = logging.OrNop(l)
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
