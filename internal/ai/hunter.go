package ai

import (
	"math"

	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

func (c *Controller) updateHunter(e *world.Entity, secs float64, s Situation) {
	en := e.Enemy
	if en.State == world.StateDeadPending {
		return
	}
	en.TimeInState += secs
	if en.Cooldown > 0 {
		en.Cooldown -= secs
	}

	hc := c.hunter
	if !s.Target.Present {
		if en.State == world.StateEvading && en.TimeInState >= hc.EvadeDuration.Seconds() {
			c.setHunterState(e, world.StateSeeking)
		}
		idle(e, hc.IdleSpeed, hc.Steering, secs)
		return
	}

	dist := e.Pos.Dist(s.Target.Pos)
	c.transitionHunter(e, dist, s)

	strength := c.scale(s)
	speed := hc.Speed * strength
	turn := radians(hc.TurnRate) * secs

	switch en.State {
	case world.StateSeeking:
		dir := Predict(s.Target.Pos, s.Target.Vel, hc.LeadTime.Seconds()).Sub(e.Pos).Norm()
		steer(e, dir.Scale(speed), hc.Steering, secs)
		if !dir.IsZero() {
			e.Rotation = geom.TurnToward(e.Rotation, dir.Angle(), turn)
		}

	case world.StateAttacking:
		toward := s.Target.Pos.Sub(e.Pos).Norm()
		band := (dist - hc.HoldRange) / hc.HoldRange
		band = math.Max(-1, math.Min(1, band))
		steer(e, toward.Scale(band*speed), hc.Steering, secs)

		aim := InterceptPoint(e.Pos, s.Target.Pos, s.Target.Vel, hc.ProjectileSpeed).Sub(e.Pos).Angle()
		e.Rotation = geom.TurnToward(e.Rotation, aim, turn)
		if en.Cooldown <= 0 {
			c.fire(e, aim, hc.ProjectileSpeed, c.shotRadius, hc.Damage, hc.ProjectileLifetime.Seconds())
			event.Emit(c.bus, world.ShotFired{Owner: e.ID, Weapon: world.WeaponNormal})
			en.Cooldown = hc.FireCooldown.Seconds() / strength
		}

	case world.StateEvading:
		away := e.Pos.Sub(nearestThreat(e.Pos, s.Target.Pos, s.Bombs)).Norm()
		if away.IsZero() {
			away = geom.FromAngle(e.Rotation+math.Pi, 1)
		}
		steer(e, away.Scale(speed), hc.Steering, secs)
		e.Rotation = geom.TurnToward(e.Rotation, away.Angle(), turn)
	}
}

// transitionHunter moves the state machine. Inputs are distance to the
// player, own health, time in state and nearby bombs. A hunter at or below
// the evade threshold breaks off every attack, however long ago it was hit.
func (c *Controller) transitionHunter(e *world.Entity, dist float64, s Situation) {
	en := e.Enemy
	hc := c.hunter
	next := en.State
	switch en.State {
	case world.StateSeeking:
		if dist <= hc.FiringRange {
			next = world.StateAttacking
		}
	case world.StateAttacking:
		switch {
		case en.HealthFraction() <= hc.EvadeHealthFraction || c.bombNear(e.Pos, s.Bombs):
			next = world.StateEvading
		case dist > hc.FiringRange*hc.LoseRangeFactor:
			next = world.StateSeeking
		}
	case world.StateEvading:
		if en.TimeInState >= hc.EvadeDuration.Seconds() {
			next = world.StateSeeking
		}
	}
	if next != en.State {
		c.setHunterState(e, next)
	}
}

func (c *Controller) setHunterState(e *world.Entity, next world.BehaviorState) {
	en := e.Enemy
	event.Emit(c.bus, world.HunterStateChanged{ID: e.ID, From: en.State, To: next})
	en.State = next
	en.TimeInState = 0
}

func (c *Controller) bombNear(pos geom.Vec2, bombs []geom.Vec2) bool {
	r2 := c.alert * c.alert
	for _, b := range bombs {
		if pos.DistSq(b) <= r2 {
			return true
		}
	}
	return false
}

// nearestThreat picks the closest of the player and its bombs.
func nearestThreat(pos, player geom.Vec2, bombs []geom.Vec2) geom.Vec2 {
	best, bestSq := player, pos.DistSq(player)
	for _, b := range bombs {
		if d := pos.DistSq(b); d < bestSq {
			best, bestSq = b, d
		}
	}
	return best
}
