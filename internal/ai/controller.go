// Package ai drives hunters and bosses. Every decision reads only the
// enemy's own state and the situation passed in for the tick.
package ai

import (
	"math"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/data"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

// Target is the player ship as seen by the AI this tick. Present is false
// while the ship is destroyed or respawning.
type Target struct {
	Present bool
	Pos     geom.Vec2
	Vel     geom.Vec2
}

// Situation is everything the AI reads besides the enemy itself.
type Situation struct {
	Target     Target
	Bombs      []geom.Vec2 // live player bombs
	Difficulty float64
}

// VolleyRequest describes one boss volley to plan.
type VolleyRequest struct {
	Phase   string
	Pattern string
	Shots   int
	Spread  float64 // radians
	Base    float64 // angle toward the player
	Volley  int     // volleys already fired in this phase
}

// VolleyPlanner may override boss firing angles. ok=false falls back to
// the built-in patterns.
type VolleyPlanner interface {
	PlanVolley(req VolleyRequest) (angles []float64, ok bool)
}

type Controller struct {
	hunter     config.HunterConfig
	boss       config.BossConfig
	shotRadius float64
	alert      float64
	aggression float64
	phases     *data.BossPhaseTable
	factory    *world.Factory
	reg        *world.Registry
	bus        *event.Bus
	planner    VolleyPlanner
	log        *zap.Logger
}

func NewController(cfg *config.Config, phases *data.BossPhaseTable, factory *world.Factory, bus *event.Bus, log *zap.Logger) *Controller {
	return &Controller{
		hunter:     cfg.Hunter,
		boss:       cfg.Boss,
		shotRadius: cfg.Weapons.ProjectileRadius,
		alert:      cfg.Bomb.AlertRadius,
		aggression: cfg.Waves.Aggression,
		phases:     phases,
		factory:    factory,
		reg:        factory.Registry(),
		bus:        bus,
		log:        log,
	}
}

// SetPlanner installs a volley planner, typically the Lua hook.
func (c *Controller) SetPlanner(p VolleyPlanner) {
	c.planner = p
}

// Update evaluates every live enemy once.
func (c *Controller) Update(secs float64, s Situation) {
	c.reg.ForEachAlive(world.MaskEnemy, func(e *world.Entity) {
		switch e.Enemy.Type {
		case world.EnemyHunter:
			c.updateHunter(e, secs, s)
		case world.EnemyBoss:
			c.updateBoss(e, secs, s)
		}
	})
}

// scale returns the strength factor for the current difficulty.
func (c *Controller) scale(s Situation) float64 {
	d := s.Difficulty
	if d < 1 {
		d = 1
	}
	return 1 + (d-1)*c.aggression
}

// steer blends velocity toward desired at rate per second.
func steer(e *world.Entity, desired geom.Vec2, rate, secs float64) {
	k := rate * secs
	if k > 1 {
		k = 1
	}
	e.Vel = e.Vel.Add(desired.Sub(e.Vel).Scale(k))
}

// idle drifts along the current heading without firing.
func idle(e *world.Entity, speed, rate, secs float64) {
	steer(e, geom.FromAngle(e.Rotation, speed), rate, secs)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func (c *Controller) fire(e *world.Entity, angle, speed, radius, damage, lifetime float64) {
	dir := geom.FromAngle(angle, 1)
	pos := e.Pos.Add(dir.Scale(e.Radius + radius + 1))
	c.factory.Shot(e.ID, world.FactionHostile, world.WeaponNormal, pos, dir.Scale(speed), radius, damage, lifetime)
}
