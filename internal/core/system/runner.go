package system

import (
	"time"

	"github.com/driftfield/arcade/internal/core/invariant"
)

// Runner drives the tick systems. Systems are bucketed by phase as they
// register, so a tick walks Commit through Output without sorting. Systems
// sharing a phase run in registration order.
type Runner struct {
	phases [phaseCount][]System
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds s to its phase bucket. A system reporting an unknown phase
// is a wiring bug and is dropped.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if !invariant.Check(p >= 0 && p < phaseCount, "system registered with unknown phase %d", p) {
		return
	}
	r.phases[p] = append(r.phases[p], s)
}

// Tick runs one simulation step across every phase.
func (r *Runner) Tick(dt time.Duration) {
	for _, bucket := range r.phases {
		for _, s := range bucket {
			s.Update(dt)
		}
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	n := 0
	for _, bucket := range r.phases {
		n += len(bucket)
	}
	return n
}
