package system

import (
	"time"

	coresys "github.com/driftfield/arcade/internal/core/system"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

// lifetimeEpsilon absorbs float drift when summing fixed steps, so a
// lifetime that is an exact multiple of the step expires on that step.
const lifetimeEpsilon = 1e-9

// MotionSystem applies gravity, integrates positions, wraps at the world
// edges and ages projectiles and pickups. Phase 3 (Motion).
type MotionSystem struct {
	deps *Deps
}

func NewMotionSystem(deps *Deps) *MotionSystem {
	return &MotionSystem{deps: deps}
}

func (s *MotionSystem) Phase() coresys.Phase { return coresys.PhaseMotion }

func (s *MotionSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	sim := s.deps.Config.Simulation
	reg := s.deps.Registry
	reg.ForEachAlive(world.MaskShip|world.MaskAsteroid, func(e *world.Entity) {
		for _, w := range s.deps.Wells {
			e.Vel = e.Vel.Add(w.Pull(e.Pos, secs))
		}
	})
	reg.ForEachAlive(world.MaskAll, func(e *world.Entity) {
		e.Pos = geom.Wrap(e.Pos.Add(e.Vel.Scale(secs)), sim.Width, sim.Height)
		e.Rotation += e.Spin * secs

		if pk := e.Pickup; pk != nil {
			pk.Age += secs
			if pk.Lifetime > 0 && pk.Age >= pk.Lifetime-lifetimeEpsilon {
				reg.Destroy(e.ID, world.CauseExpired)
			}
			return
		}
		p := e.Projectile
		if p == nil {
			return
		}
		p.Age += secs
		if p.Age < p.Lifetime-lifetimeEpsilon {
			return
		}
		if p.Weapon == world.WeaponBomb {
			// Detonation happens in the collision phase.
			p.Armed = true
			return
		}
		reg.Destroy(e.ID, world.CauseExpired)
	})
}
