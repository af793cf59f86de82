package system

import (
	"time"

	coresys "github.com/driftfield/arcade/internal/core/system"
	"github.com/driftfield/arcade/internal/world"
)

// CommitSystem applies the previous tick's destroys and creates before
// anything else runs. Phase 0 (Commit).
type CommitSystem struct {
	reg *world.Registry
}

func NewCommitSystem(reg *world.Registry) *CommitSystem {
	return &CommitSystem{reg: reg}
}

func (s *CommitSystem) Phase() coresys.Phase { return coresys.PhaseCommit }

func (s *CommitSystem) Update(_ time.Duration) {
	s.reg.BeginTick()
}
