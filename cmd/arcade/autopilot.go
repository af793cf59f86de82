package main

import (
	"math"

	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/sim"
	"github.com/driftfield/arcade/internal/world"
)

// autopilot stands in for a human at the controls: it turns toward the
// nearest threat, fires when lined up and drops bombs on close enemies.
type autopilot struct {
	weapon world.WeaponKind
}

func newAutopilot() *autopilot {
	return &autopilot{weapon: world.WeaponNormal}
}

func (a *autopilot) Intent(f *sim.Frame) world.Intent {
	if f == nil {
		return world.Intent{}
	}
	ships := f.Find(world.KindShip)
	if len(ships) == 0 {
		return world.Intent{}
	}
	ship := ships[0]

	var target *world.EntityView
	best := math.Inf(1)
	enemyClose := false
	for i := range f.Entities {
		v := &f.Entities[i]
		if v.Kind != world.KindAsteroid && v.Kind != world.KindEnemy {
			continue
		}
		d := ship.Pos.Dist(v.Pos)
		if v.Kind == world.KindEnemy && d < 150 {
			enemyClose = true
		}
		if d < best {
			best, target = d, v
		}
	}

	in := world.Intent{DropBomb: enemyClose, Weapon: a.pickWeapon(f)}
	if target == nil {
		return in
	}
	diff := geom.AngleDiff(ship.Rotation, target.Pos.Sub(ship.Pos).Angle())
	in.Turn = math.Max(-1, math.Min(1, diff*4))
	in.Fire = math.Abs(diff) < 0.15
	if best > 350 {
		in.Thrust = 0.4
	}
	return in
}

// pickWeapon switches to the laser against bosses and spreads in later
// waves.
func (a *autopilot) pickWeapon(f *sim.Frame) world.WeaponKind {
	next := world.WeaponNormal
	switch {
	case f.Wave.BossSpawned:
		next = world.WeaponLaser
	case f.Wave.Wave >= 3:
		next = world.WeaponSpread
	case f.Wave.Wave == 2:
		next = world.WeaponRapid
	}
	if next == a.weapon {
		return world.WeaponNone
	}
	a.weapon = next
	return next
}
