// Package invariant reports programming-contract violations. Builds tagged
// arcadedebug panic on the first violation; other builds log and let the
// caller degrade to a no-op.
package invariant

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// SetLogger installs the logger used for release-mode reports.
func SetLogger(log *zap.Logger) {
	logger.Store(log)
}

// Violated reports a broken contract. It returns only in release builds.
func Violated(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if debugBuild {
		panic("invariant violated: " + msg)
	}
	if log := logger.Load(); log != nil {
		log.Warn("invariant violated", zap.String("detail", msg))
	}
}

// Check calls Violated when cond is false and returns cond.
func Check(cond bool, format string, args ...any) bool {
	if !cond {
		Violated(format, args...)
	}
	return cond
}
