package system

import (
	"math"
	"time"

	coresys "github.com/driftfield/arcade/internal/core/system"
	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

// InputSystem applies the player's intent: upgrades, weapon selection,
// steering, firing, bombs and respawn. Phase 1 (Input).
type InputSystem struct {
	deps   *Deps
	intent func() world.Intent
}

func NewInputSystem(deps *Deps, intent func() world.Intent) *InputSystem {
	return &InputSystem{deps: deps, intent: intent}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(dt time.Duration) {
	sess := s.deps.Session
	if sess.Over {
		return
	}
	secs := dt.Seconds()
	in := s.intent()
	reg := s.deps.Registry

	if in.Upgrades != nil {
		sess.ApplyUpgrades(*in.Upgrades)
		if ship := reg.Get(sess.ShipID); ship != nil {
			ship.Ship.Mult = sess.Mult
			ship.Radius = s.deps.Config.Ship.Radius * sess.Mult.Radius
		}
	}
	if in.Weapon != world.WeaponNone && in.Weapon != world.WeaponBomb {
		sess.Weapon = in.Weapon
	}

	ship := reg.Get(sess.ShipID)
	if ship == nil {
		if !reg.Exists(sess.ShipID) {
			s.respawn(secs)
		}
		return
	}
	s.fly(ship, in, secs)
	if in.Fire && ship.Ship.Cooldown <= 0 {
		s.fire(ship)
	}
	if in.DropBomb && ship.Ship.BombCooldown <= 0 {
		s.dropBomb(ship)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (s *InputSystem) fly(ship *world.Entity, in world.Intent, secs float64) {
	sc := s.deps.Config.Ship
	st := ship.Ship
	st.Shield = math.Max(0, st.Shield-secs)
	st.Boost = math.Max(0, st.Boost-secs)
	st.Cooldown -= secs
	st.BombCooldown -= secs

	ship.Rotation += clamp(in.Turn, -1, 1) * sc.TurnSpeed * math.Pi / 180 * secs
	boost := 1.0
	if st.Boost > 0 {
		boost = s.deps.Config.PowerUps.BoostFactor
	}
	thrust := clamp(in.Thrust, 0, 1)
	st.Thrusting = thrust > 0
	if st.Thrusting {
		accel := sc.Acceleration * st.Mult.Acceleration * boost * thrust
		ship.Vel = ship.Vel.Add(geom.FromAngle(ship.Rotation, accel*secs))
	}
	ship.Vel = ship.Vel.Scale(math.Exp(-sc.Drag * secs)).ClampLen(sc.MaxSpeed * boost)
}

func (s *InputSystem) fire(ship *world.Entity) {
	sess := s.deps.Session
	wc := s.deps.Config.Weapons
	f := s.deps.Factory
	damage := wc.Damage * sess.Mult.Damage
	nose := ship.Pos.Add(geom.FromAngle(ship.Rotation, ship.Radius))
	shoot := func(angle float64) {
		vel := ship.Vel.Add(geom.FromAngle(angle, wc.ProjectileSpeed))
		f.Shot(ship.ID, world.FactionPlayer, sess.Weapon, nose, vel, wc.ProjectileRadius, damage, wc.ProjectileLifetime.Seconds())
	}

	cooldown := wc.Cooldown
	switch sess.Weapon {
	case world.WeaponRapid:
		shoot(ship.Rotation)
		cooldown = wc.RapidCooldown
	case world.WeaponSpread:
		n := max(wc.SpreadCount, 1)
		step := wc.SpreadAngle * math.Pi / 180
		mid := float64(n-1) / 2
		for i := 0; i < n; i++ {
			shoot(ship.Rotation + (float64(i)-mid)*step)
		}
	case world.WeaponLaser:
		f.Laser(ship.ID, nose, ship.Rotation, wc.LaserDamage*sess.Mult.Damage)
		cooldown = wc.LaserCooldown
	default:
		shoot(ship.Rotation)
	}
	ship.Ship.Cooldown = cooldown.Seconds()
	sess.Stats.ShotsFired++
	event.Emit(s.deps.Bus, world.ShotFired{Owner: ship.ID, Weapon: sess.Weapon})
}

func (s *InputSystem) dropBomb(ship *world.Entity) {
	bc := s.deps.Config.Bomb
	active := 0
	s.deps.Registry.ForEachAlive(world.MaskProjectile, func(e *world.Entity) {
		if e.Projectile.Weapon == world.WeaponBomb {
			active++
		}
	})
	if bc.MaxActive > 0 && active >= bc.MaxActive {
		return
	}
	if _, ok := s.deps.Factory.Bomb(ship.ID, ship.Pos, bc.Damage*s.deps.Session.Mult.Damage); !ok {
		return
	}
	ship.Ship.BombCooldown = bc.Cooldown.Seconds()
	s.deps.Session.Stats.BombsDropped++
	event.Emit(s.deps.Bus, world.ShotFired{Owner: ship.ID, Weapon: world.WeaponBomb})
}

// respawn counts down and recreates the ship at the world center.
func (s *InputSystem) respawn(secs float64) {
	sess := s.deps.Session
	sess.RespawnIn -= secs
	if sess.RespawnIn > 0 {
		return
	}
	sim := s.deps.Config.Simulation
	id, ok := s.deps.Factory.Ship(geom.V(sim.Width/2, sim.Height/2), sess.Mult)
	if !ok {
		return
	}
	sess.ShipID = id
	sess.RespawnIn = 0
	event.Emit(s.deps.Bus, world.ShipRespawned{ID: id})
}
