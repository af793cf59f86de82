package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/core/event"
	coresys "github.com/driftfield/arcade/internal/core/system"
	"github.com/driftfield/arcade/internal/world"
)

// DirectorSystem runs the wave state machine and the play clock, and
// closes the run after the last ship is lost. Phase 5 (Director).
type DirectorSystem struct {
	deps  *Deps
	ended bool
}

func NewDirectorSystem(deps *Deps) *DirectorSystem {
	return &DirectorSystem{deps: deps}
}

func (s *DirectorSystem) Phase() coresys.Phase { return coresys.PhaseDirector }

func (s *DirectorSystem) Update(dt time.Duration) {
	sess := s.deps.Session
	if sess.Over {
		s.finish()
		return
	}
	secs := dt.Seconds()
	sess.Stats.PlayTime += secs
	s.deps.Director.Update(secs)
}

// finish reports GameOver once. End settles every credit earned earlier in
// the tick, including hits resolved after the fatal one.
func (s *DirectorSystem) finish() {
	if s.ended {
		return
	}
	s.ended = true
	sess := s.deps.Session
	final := s.deps.Director.End()
	event.Emit(s.deps.Bus, world.GameOver{Score: final.Score, Wave: final.Wave, Stats: sess.Stats})
	s.deps.Log.Info("game over",
		zap.Int64("score", final.Score),
		zap.Int("wave", final.Wave),
		zap.Int("asteroids", sess.Stats.AsteroidsDestroyed),
		zap.Float64("play_time", sess.Stats.PlayTime),
	)
}
