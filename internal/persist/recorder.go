package persist

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/world"
)

// RunStore persists finished runs. *RunRepo implements it.
type RunStore interface {
	Record(ctx context.Context, run RunRow, milestones []Milestone) (int64, error)
}

type job struct {
	run        RunRow
	milestones []Milestone
}

// Clock reports the run's play time in seconds. It is read from event
// handlers, which run on the game loop after the tick that emitted them.
type Clock func() float64

// Recorder listens to a run's events and writes the run to a RunStore once
// the game is over. Event handlers run on the game loop; the write happens
// on the recorder's own goroutine.
type Recorder struct {
	store   RunStore
	seed    uint64
	ruleset string
	clock   Clock
	timeout time.Duration
	log     *zap.Logger

	wave       int
	milestones []Milestone

	jobs chan job
	wg   sync.WaitGroup
	once sync.Once
}

func NewRecorder(store RunStore, seed uint64, ruleset string, clock Clock, log *zap.Logger) *Recorder {
	return &Recorder{
		store:   store,
		seed:    seed,
		ruleset: ruleset,
		clock:   clock,
		timeout: 10 * time.Second,
		log:     log,
		wave:    1,
		jobs:    make(chan job, 4),
	}
}

// Attach subscribes the recorder to bus and starts the writer.
func (r *Recorder) Attach(bus *event.Bus) {
	event.Subscribe(bus, r.onWaveStarted)
	event.Subscribe(bus, r.onWaveCleared)
	event.Subscribe(bus, r.onBossPhase)
	event.Subscribe(bus, r.onGameOver)

	r.wg.Add(1)
	go r.writer()
}

// Close waits for pending writes.
func (r *Recorder) Close() {
	r.once.Do(func() { close(r.jobs) })
	r.wg.Wait()
}

func (r *Recorder) onWaveStarted(ev world.WaveStarted) {
	r.wave = ev.Wave
}

func (r *Recorder) onWaveCleared(ev world.WaveCleared) {
	r.milestones = append(r.milestones, Milestone{
		Kind:  "wave_cleared",
		Wave:  ev.Wave,
		Value: ev.Bonus,
		At:    r.now(),
	})
}

func (r *Recorder) onBossPhase(ev world.BossPhaseChanged) {
	r.milestones = append(r.milestones, Milestone{
		Kind:  "boss_phase",
		Wave:  r.wave,
		Value: int64(ev.To),
		At:    r.now(),
	})
}

func (r *Recorder) now() float64 {
	if r.clock == nil {
		return 0
	}
	return r.clock()
}

func (r *Recorder) onGameOver(ev world.GameOver) {
	st := ev.Stats
	j := job{
		run: RunRow{
			Seed:               r.seed,
			Ruleset:            r.ruleset,
			Score:              ev.Score,
			Wave:               ev.Wave,
			AsteroidsDestroyed: st.AsteroidsDestroyed,
			EnemiesDestroyed:   st.EnemiesDestroyed,
			BossesDefeated:     st.BossesDefeated,
			ShotsFired:         st.ShotsFired,
			BombsDropped:       st.BombsDropped,
			ShipsLost:          st.ShipsLost,
			PlaySeconds:        st.PlayTime,
		},
		milestones: r.milestones,
	}
	r.milestones = nil
	select {
	case r.jobs <- j:
	default:
		r.log.Warn("run recorder backlog full, dropping run", zap.Int64("score", ev.Score))
	}
}

func (r *Recorder) writer() {
	defer r.wg.Done()
	for j := range r.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		id, err := r.store.Record(ctx, j.run, j.milestones)
		cancel()
		if err != nil {
			r.log.Error("record run", zap.Error(err), zap.Int64("score", j.run.Score))
			continue
		}
		r.log.Info("run recorded",
			zap.Int64("id", id),
			zap.Int64("score", j.run.Score),
			zap.Int("wave", j.run.Wave),
			zap.Int("milestones", len(j.milestones)),
		)
	}
}
