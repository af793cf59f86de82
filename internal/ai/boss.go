package ai

import (
	"math"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/data"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

const maxVolleyShots = 64

// updateBoss runs one boss. The phase is chosen once per call from the
// health fraction, so any number of hits between two calls produce at most
// one transition.
func (c *Controller) updateBoss(e *world.Entity, secs float64, s Situation) {
	en := e.Enemy
	if en.State == world.StateDeadPending {
		return
	}
	en.PhaseTime += secs
	en.TimeInState += secs
	if en.Cooldown > 0 {
		en.Cooldown -= secs
	}

	if idx := c.phases.PhaseFor(en.HealthFraction()); idx > en.Phase {
		c.enterPhase(e, idx)
	}
	ph := c.phases.Phase(en.Phase)
	bc := c.boss

	if !s.Target.Present {
		idle(e, bc.IdleSpeed, bc.Steering, secs)
		return
	}

	strength := c.scale(s)
	toward := s.Target.Pos.Sub(e.Pos)
	steer(e, bossMovement(e, ph, toward, ph.Speed*strength), bc.Steering, secs)
	e.Rotation = geom.TurnToward(e.Rotation, toward.Angle(), radians(bc.TurnRate)*secs)

	if en.Cooldown <= 0 {
		c.volley(e, ph, toward.Angle())
		en.Cooldown = ph.Cooldown / strength
		en.Volleys++
	}
}

func (c *Controller) enterPhase(e *world.Entity, idx int) {
	en := e.Enemy
	from := en.Phase
	ph := c.phases.Phase(idx)
	en.Phase = idx
	en.PhaseName = ph.Name
	en.PhaseTime = 0
	en.Volleys = 0
	event.Emit(c.bus, world.BossPhaseChanged{ID: e.ID, From: from, To: idx, Name: ph.Name})
}

func bossMovement(e *world.Entity, ph *data.BossPhase, toward geom.Vec2, speed float64) geom.Vec2 {
	dir := toward.Norm()
	switch ph.Movement {
	case data.MoveApproach:
		return dir.Scale(speed)
	case data.MoveOrbit, data.MoveStrafe:
		tangent := dir.Rotate(math.Pi / 2)
		if ph.Movement == data.MoveStrafe && int(e.Enemy.PhaseTime/2)%2 == 1 {
			tangent = tangent.Scale(-1)
		}
		correction := 0.0
		if ph.Range > 0 {
			correction = math.Max(-1, math.Min(1, (toward.Len()-ph.Range)/ph.Range))
		}
		return tangent.Add(dir.Scale(correction)).ClampLen(1).Scale(speed)
	}
	return geom.Vec2{}
}

func (c *Controller) volley(e *world.Entity, ph *data.BossPhase, base float64) {
	req := VolleyRequest{
		Phase:   ph.Name,
		Pattern: ph.Attack,
		Shots:   ph.Shots,
		Spread:  radians(ph.Spread),
		Base:    base,
		Volley:  e.Enemy.Volleys,
	}
	var angles []float64
	ok := false
	if c.planner != nil {
		angles, ok = c.planner.PlanVolley(req)
	}
	if !ok {
		angles = PlanVolley(req)
	}
	if len(angles) > maxVolleyShots {
		c.log.Warn("boss volley truncated", zap.String("phase", ph.Name), zap.Int("shots", len(angles)))
		angles = angles[:maxVolleyShots]
	}
	bc := c.boss
	for _, a := range angles {
		c.fire(e, a, ph.ProjectileSpeed, bc.ProjectileRadius, bc.Damage, bc.ProjectileLifetime.Seconds())
	}
	if len(angles) > 0 {
		event.Emit(c.bus, world.ShotFired{Owner: e.ID, Weapon: world.WeaponNormal})
	}
}

// PlanVolley returns the built-in firing angles for a pattern.
func PlanVolley(req VolleyRequest) []float64 {
	n := req.Shots
	if n < 1 {
		n = 1
	}
	out := make([]float64, 0, n)
	switch req.Pattern {
	case data.AttackSpread:
		mid := float64(n-1) / 2
		for i := 0; i < n; i++ {
			out = append(out, req.Base+(float64(i)-mid)*req.Spread)
		}
	case data.AttackRing, data.AttackSpiral:
		start := req.Base
		if req.Pattern == data.AttackSpiral {
			start += float64(req.Volley) * req.Spread
		}
		for i := 0; i < n; i++ {
			out = append(out, start+2*math.Pi*float64(i)/float64(n))
		}
	default:
		out = append(out, req.Base)
	}
	return out
}
