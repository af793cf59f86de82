//go:build !arcadedebug

package invariant

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReleaseViolationLogsInsteadOfPanicking(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	if Check(false, "split %s", "small") {
		t.Fatal("Check must report false for a failed condition")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["detail"]; got != "split small" {
		t.Fatalf("unexpected detail %v", got)
	}
}
