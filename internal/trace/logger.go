package trace

import (
	"log/slog"
	"sync/atomic"

	"github.com/verte-zerg/tuitrace/internal/logging"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Discard())
}

// SetLogger configures the logger used by the tracer. By default nothing is
// logged. Pass nil to restore the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: pointer transitions and discarded attempts
//   - [slog.LevelInfo]: stroke and exercise completion
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
