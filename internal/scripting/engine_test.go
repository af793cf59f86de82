package scripting

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/ai"
	"github.com/driftfield/arcade/internal/wave"
)

func newShippedEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func writeScript(t *testing.T, dir, sub, body string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(p, "hook.lua"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestShippedVolleyMatchesBuiltinSpread(t *testing.T) {
	e := newShippedEngine(t)
	req := ai.VolleyRequest{Phase: "fury", Pattern: "spread", Shots: 5, Spread: 0.3, Base: 0.7}
	got, ok := e.PlanVolley(req)
	if !ok {
		t.Fatal("boss_volley hook not used")
	}
	want := ai.PlanVolley(req)
	if len(got) != len(want) {
		t.Fatalf("got %d angles, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("angle %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShippedWaveBonus(t *testing.T) {
	e := newShippedEngine(t)
	b, ok := e.WaveBonus(wave.BonusContext{Wave: 3, Elapsed: 12.5})
	if !ok || b != 3000-125 {
		t.Fatalf("bonus = %d ok=%v", b, ok)
	}
	b, _ = e.WaveBonus(wave.BonusContext{Wave: 1, Elapsed: 500})
	if b != 0 {
		t.Fatalf("bonus not floored: %d", b)
	}
}

func TestMissingHooksFallBack(t *testing.T) {
	e, err := NewEngine(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	defer e.Close()
	if e.Has("boss_volley") {
		t.Fatal("unexpected hook")
	}
	if _, ok := e.PlanVolley(ai.VolleyRequest{Pattern: "single"}); ok {
		t.Fatal("missing boss_volley must report ok=false")
	}
	if _, ok := e.WaveBonus(wave.BonusContext{Wave: 1}); ok {
		t.Fatal("missing wave_bonus must report ok=false")
	}
}

func TestFailingHooksFallBack(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "boss", `function boss_volley(ctx) error("boom") end`)
	writeScript(t, dir, "wave", `function wave_bonus(ctx) return "lots" end`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	defer e.Close()
	if _, ok := e.PlanVolley(ai.VolleyRequest{Pattern: "single"}); ok {
		t.Fatal("erroring hook must report ok=false")
	}
	if _, ok := e.WaveBonus(wave.BonusContext{Wave: 1}); ok {
		t.Fatal("non-number bonus must report ok=false")
	}
	// The VM stays usable after a failed call.
	if _, ok := e.PlanVolley(ai.VolleyRequest{Pattern: "single"}); ok {
		t.Fatal("second call changed behaviour")
	}
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", `function broken(`)
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected load error")
	}
}
