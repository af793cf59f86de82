package system

import (
	"time"

	"github.com/driftfield/arcade/internal/ai"
	coresys "github.com/driftfield/arcade/internal/core/system"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

// AISystem hands every enemy the current view of the ship and live bombs.
// Phase 2 (AI).
type AISystem struct {
	deps  *Deps
	bombs []geom.Vec2
}

func NewAISystem(deps *Deps) *AISystem {
	return &AISystem{deps: deps}
}

func (s *AISystem) Phase() coresys.Phase { return coresys.PhaseAI }

func (s *AISystem) Update(dt time.Duration) {
	reg := s.deps.Registry
	sit := ai.Situation{Difficulty: s.deps.Director.Difficulty()}
	if ship := reg.Get(s.deps.Session.ShipID); ship != nil {
		sit.Target = ai.Target{Present: true, Pos: ship.Pos, Vel: ship.Vel}
	}
	s.bombs = s.bombs[:0]
	reg.ForEachAlive(world.MaskProjectile, func(e *world.Entity) {
		if e.Projectile.Weapon == world.WeaponBomb {
			s.bombs = append(s.bombs, e.Pos)
		}
	})
	sit.Bombs = s.bombs
	s.deps.AI.Update(dt.Seconds(), sit)
}
