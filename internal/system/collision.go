package system

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/ai"
	"github.com/driftfield/arcade/internal/collision"
	coresys "github.com/driftfield/arcade/internal/core/system"
	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

// CollisionSystem detonates armed bombs, resolves projectile hits and
// applies ship contacts. Phase 4 (Collision).
type CollisionSystem struct {
	deps      *Deps
	baseAngle float64
	bodies    []collision.Body
	blast     []*world.Entity
}

func NewCollisionSystem(deps *Deps) *CollisionSystem {
	return &CollisionSystem{
		deps:      deps,
		baseAngle: deps.Config.Ship.BaseAngle * math.Pi / 180,
	}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	reg := s.deps.Registry
	s.detonate()

	s.bodies = s.bodies[:0]
	reg.ForEachAlive(world.MaskAll, func(e *world.Entity) {
		if b, ok := collision.BodyOf(e, s.baseAngle); ok {
			s.bodies = append(s.bodies, b)
		}
	})
	overlaps := s.deps.Resolver.FindOverlaps(s.bodies)
	hits, contacts := collision.SelectHits(s.bodies, overlaps)
	for _, h := range hits {
		s.applyHit(h)
	}
	for _, c := range contacts {
		s.applyContact(c)
	}
}

// detonate blows up every armed bomb. Targets are gathered before damage
// so fragments spawned by the blast are not caught in it.
func (s *CollisionSystem) detonate() {
	reg := s.deps.Registry
	for _, bomb := range reg.Alive(world.MaskProjectile) {
		p := bomb.Projectile
		if p.Weapon != world.WeaponBomb || !p.Armed || !reg.Exists(bomb.ID) {
			continue
		}
		event.Emit(s.deps.Bus, world.BombDetonated{ID: bomb.ID, Pos: bomb.Pos, Radius: p.Blast})
		reg.Destroy(bomb.ID, world.CauseDetonated)

		s.blast = s.blast[:0]
		reg.ForEachAlive(world.MaskAsteroid|world.MaskEnemy, func(e *world.Entity) {
			if e.Pos.Dist(bomb.Pos) <= p.Blast+e.Radius {
				s.blast = append(s.blast, e)
			}
		})
		for _, e := range s.blast {
			if reg.Get(e.ID) != nil {
				s.damage(e, p.Damage, world.CauseBlast)
			}
		}
	}
}

func (s *CollisionSystem) applyHit(h collision.Hit) {
	reg := s.deps.Registry
	proj, target := reg.Get(h.Projectile), reg.Get(h.Target)
	if proj == nil || target == nil {
		// Removed earlier in this phase.
		return
	}
	p := proj.Projectile
	cause := world.CauseProjectile
	if p.Weapon == world.WeaponLaser {
		cause = world.CauseLaser
	}
	if target.Kind == world.KindShip {
		s.hitShip(target, cause)
	} else {
		s.damage(target, p.Damage, cause)
	}
	if !p.Piercing {
		reg.Destroy(proj.ID, world.CauseSpent)
	}
}

// damage applies amount to an asteroid or enemy and settles the
// consequences of a kill.
func (s *CollisionSystem) damage(e *world.Entity, amount float64, cause world.Cause) {
	switch e.Kind {
	case world.KindAsteroid:
		s.damageAsteroid(e, amount, cause)
	case world.KindEnemy:
		if !ai.ApplyDamage(e, amount) {
			return
		}
		en := e.Enemy
		s.deps.Registry.Destroy(e.ID, cause)
		s.deps.Director.Credit(int64(en.Score))
		stats := &s.deps.Session.Stats
		stats.EnemiesDestroyed++
		if en.Type == world.EnemyBoss {
			stats.BossesDefeated++
			s.deps.Log.Info("boss defeated", zap.Uint64("id", uint64(e.ID)))
		}
	}
}

func (s *CollisionSystem) damageAsteroid(e *world.Entity, amount float64, cause world.Cause) {
	res := s.deps.Split.OnAsteroidHit(e, amount)
	if !res.Destroyed {
		e.Asteroid.HP = res.RemainingHP
		return
	}
	if !s.deps.Registry.Destroy(e.ID, cause) {
		return
	}
	for _, child := range res.Children {
		s.deps.Factory.Asteroid(child)
	}
	s.deps.Director.Credit(int64(res.Score))
	s.maybeDrop(e.Pos)
	sess := s.deps.Session
	sess.Stats.AsteroidsDestroyed++
	if res.Yield.Amount > 0 {
		sess.AddResource(res.Yield.Material, res.Yield.Amount)
		event.Emit(s.deps.Bus, world.ResourceGained{Material: res.Yield.Material, Amount: res.Yield.Amount})
	}
}

// maybeDrop rolls for a power-up where a rock was destroyed.
func (s *CollisionSystem) maybeDrop(pos geom.Vec2) {
	pc := s.deps.Config.PowerUps
	rng := s.deps.Loot
	if rng == nil || pc.DropChance <= 0 || rng.Float64() >= pc.DropChance {
		return
	}
	typ := world.PowerUp(1 + rng.IntN(world.PowerUpCount))
	vel := geom.V((rng.Float64()*2-1)*pc.DriftSpeed, (rng.Float64()*2-1)*pc.DriftSpeed)
	s.deps.Factory.PowerUp(typ, pos, vel)
}

// applyContact handles the ship touching a rock, an enemy or a pickup. A
// shielded ship smashes rocks and shrugs off enemies. Pickups are always
// collected.
func (s *CollisionSystem) applyContact(c collision.Overlap) {
	reg := s.deps.Registry
	a, b := reg.Get(c.A), reg.Get(c.B)
	if a == nil || b == nil {
		return
	}
	ship, other := a, b
	if b.Kind == world.KindShip {
		ship, other = b, a
	}
	if ship.Kind != world.KindShip {
		return
	}
	if other.Kind == world.KindPickup {
		s.collect(ship, other)
		return
	}
	if ship.Ship.Shield > 0 {
		if other.Kind == world.KindAsteroid {
			s.damageAsteroid(other, other.Asteroid.HP, world.CauseShield)
		}
		return
	}
	s.killShip(ship, world.CauseCollision)
}

func (s *CollisionSystem) collect(ship, pickup *world.Entity) {
	if !s.deps.Registry.Destroy(pickup.ID, world.CauseCollected) {
		return
	}
	pc := s.deps.Config.PowerUps
	sess := s.deps.Session
	typ := pickup.Pickup.Type
	switch typ {
	case world.PowerUpShield:
		ship.Ship.Shield = math.Max(ship.Ship.Shield, pc.ShieldDuration.Seconds()*ship.Ship.Mult.Shield)
	case world.PowerUpSpeed:
		ship.Ship.Boost = pc.BoostDuration.Seconds()
	case world.PowerUpRapid:
		sess.Weapon = world.WeaponRapid
	case world.PowerUpSpread:
		sess.Weapon = world.WeaponSpread
	}
	sess.Stats.PowerUpsCollected++
	event.Emit(s.deps.Bus, world.PowerUpCollected{ID: pickup.ID, Type: typ})
}

func (s *CollisionSystem) hitShip(ship *world.Entity, cause world.Cause) {
	if ship.Ship.Shield > 0 {
		return
	}
	s.killShip(ship, cause)
}

func (s *CollisionSystem) killShip(ship *world.Entity, cause world.Cause) {
	if !s.deps.Registry.Destroy(ship.ID, cause) {
		return
	}
	sess := s.deps.Session
	sess.Lives--
	sess.Stats.ShipsLost++
	event.Emit(s.deps.Bus, world.ShipDestroyed{LivesLeft: sess.Lives})
	if sess.Lives > 0 {
		sess.RespawnIn = s.deps.Config.Ship.RespawnDelay.Seconds()
		return
	}

	// The director phase closes the run once this tick's credit is in.
	sess.Over = true
}
