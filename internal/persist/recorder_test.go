package persist

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/world"
)

type memStore struct {
	mu   sync.Mutex
	runs []RunRow
	ms   [][]Milestone
	err  error
}

func (m *memStore) Record(_ context.Context, run RunRow, milestones []Milestone) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.runs = append(m.runs, run)
	m.ms = append(m.ms, milestones)
	return int64(len(m.runs)), nil
}

func deliver(bus *event.Bus) {
	bus.SwapBuffers()
	bus.DispatchAll()
}

func TestRecorderWritesRunOnGameOver(t *testing.T) {
	store := &memStore{}
	bus := event.NewBus()
	played := 12.0
	rec := NewRecorder(store, 99, "abc123", func() float64 { return played }, zap.NewNop())
	rec.Attach(bus)

	event.Emit(bus, world.WaveStarted{Wave: 1})
	event.Emit(bus, world.WaveCleared{Wave: 1, Bonus: 900, Elapsed: 10})
	deliver(bus)
	played = 31.5
	event.Emit(bus, world.WaveStarted{Wave: 2})
	event.Emit(bus, world.BossPhaseChanged{From: 0, To: 1, Name: "fury"})
	event.Emit(bus, world.GameOver{Score: 4200, Wave: 2, Stats: world.Stats{ShipsLost: 3, PlayTime: 31.5}})
	deliver(bus)
	rec.Close()

	if len(store.runs) != 1 {
		t.Fatalf("expected one run, got %d", len(store.runs))
	}
	run := store.runs[0]
	if run.Seed != 99 || run.Ruleset != "abc123" || run.Score != 4200 || run.Wave != 2 || run.ShipsLost != 3 || run.PlaySeconds != 31.5 {
		t.Fatalf("unexpected run %+v", run)
	}
	ms := store.ms[0]
	if len(ms) != 2 {
		t.Fatalf("expected two milestones, got %+v", ms)
	}
	if ms[0].Kind != "wave_cleared" || ms[0].Value != 900 || ms[0].At != 12 {
		t.Fatalf("unexpected wave milestone %+v", ms[0])
	}
	if ms[1].Kind != "boss_phase" || ms[1].Wave != 2 || ms[1].Value != 1 || ms[1].At != 31.5 {
		t.Fatalf("unexpected boss milestone %+v", ms[1])
	}
}

func TestRecorderSurvivesStoreErrors(t *testing.T) {
	store := &memStore{err: errors.New("db down")}
	bus := event.NewBus()
	rec := NewRecorder(store, 1, "", nil, zap.NewNop())
	rec.Attach(bus)

	event.Emit(bus, world.GameOver{Score: 10, Wave: 1})
	deliver(bus)
	rec.Close()
	rec.Close()

	if len(store.runs) != 0 {
		t.Fatalf("failed write recorded: %+v", store.runs)
	}
}

func TestBossPhaseBeforeAnyClearUsesPlayClock(t *testing.T) {
	store := &memStore{}
	bus := event.NewBus()
	played := 0.0
	rec := NewRecorder(store, 1, "", func() float64 { return played }, zap.NewNop())
	rec.Attach(bus)

	event.Emit(bus, world.WaveStarted{Wave: 1})
	deliver(bus)
	played = 47.25
	event.Emit(bus, world.BossPhaseChanged{From: 1, To: 2, Name: "storm"})
	deliver(bus)
	event.Emit(bus, world.GameOver{Score: 1, Wave: 1, Stats: world.Stats{PlayTime: 50}})
	deliver(bus)
	rec.Close()

	if len(store.ms) != 1 || len(store.ms[0]) != 1 {
		t.Fatalf("expected one milestone, got %+v", store.ms)
	}
	if m := store.ms[0][0]; m.Kind != "boss_phase" || m.At != 47.25 || m.Wave != 1 {
		t.Fatalf("unexpected boss milestone %+v", m)
	}
}
