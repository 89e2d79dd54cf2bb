package level

import (
	"log/slog"
	"sync/atomic"

	"github.com/verte-zerg/tuitrace/internal/logging"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Discard())
}

// SetLogger configures the logger used by the controller. Pass nil to
// restore the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger {
	return loggerPtr.Load()
}
