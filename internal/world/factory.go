package world

import (
	"math"

	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/core/ecs"
	"github.com/driftfield/arcade/internal/geom"
)

// Factory turns configured templates into Registry creates.
type Factory struct {
	cfg *config.Config
	reg *Registry
}

func NewFactory(cfg *config.Config, reg *Registry) *Factory {
	return &Factory{cfg: cfg, reg: reg}
}

func (f *Factory) Registry() *Registry { return f.reg }

// AsteroidRadius returns the configured radius of a size class.
func (f *Factory) AsteroidRadius(size SizeClass) float64 {
	a := f.cfg.Asteroids
	switch size {
	case SizeLarge:
		return a.LargeRadius
	case SizeMedium:
		return a.MediumRadius
	}
	return a.SmallRadius
}

// Ship creates the player ship with radius and shield scaled by m.
func (f *Factory) Ship(pos geom.Vec2, m Multipliers) (ecs.EntityID, bool) {
	sc := f.cfg.Ship
	return f.reg.Create(Spec{
		Kind:     KindShip,
		Pos:      pos,
		Rotation: -math.Pi / 2,
		Radius:   sc.Radius * m.Radius,
		Ship: &Ship{
			Shield: sc.SpawnShield.Seconds() * m.Shield,
			Mult:   m,
		},
	})
}

func (f *Factory) Asteroid(a AsteroidSpec) (ecs.EntityID, bool) {
	return f.reg.Create(Spec{
		Kind:   KindAsteroid,
		Pos:    a.Pos,
		Vel:    a.Vel,
		Spin:   a.Spin,
		Radius: f.AsteroidRadius(a.Size),
		Asteroid: &Asteroid{
			Size:     a.Size,
			Material: a.Material,
			HP:       a.HP,
		},
	})
}

// Hunter creates a hunter whose hit points grow with difficulty.
func (f *Factory) Hunter(pos geom.Vec2, rotation, difficulty float64) (ecs.EntityID, bool) {
	hc := f.cfg.Hunter
	hp := math.Ceil(hc.HP * difficulty)
	return f.reg.Create(Spec{
		Kind:     KindEnemy,
		Pos:      pos,
		Vel:      geom.FromAngle(rotation, hc.IdleSpeed),
		Rotation: rotation,
		Radius:   hc.Radius,
		Enemy: &Enemy{
			Type:  EnemyHunter,
			HP:    hp,
			MaxHP: hp,
			State: StateSeeking,
			Score: hc.Score,
		},
	})
}

// Boss creates a boss in its first phase.
func (f *Factory) Boss(pos geom.Vec2, rotation, difficulty float64, firstPhase string) (ecs.EntityID, bool) {
	bc := f.cfg.Boss
	hp := math.Ceil(bc.HP * difficulty)
	return f.reg.Create(Spec{
		Kind:     KindEnemy,
		Pos:      pos,
		Rotation: rotation,
		Radius:   bc.Radius,
		Enemy: &Enemy{
			Type:      EnemyBoss,
			HP:        hp,
			MaxHP:     hp,
			State:     StateSeeking,
			Score:     bc.Score,
			PhaseName: firstPhase,
		},
	})
}

// Shot creates a ballistic projectile.
func (f *Factory) Shot(owner ecs.EntityID, faction Faction, weapon WeaponKind, pos, vel geom.Vec2,
	radius, damage, lifetime float64) (ecs.EntityID, bool) {
	return f.reg.Create(Spec{
		Kind:     KindProjectile,
		Pos:      pos,
		Vel:      vel,
		Rotation: vel.Angle(),
		Radius:   radius,
		Projectile: &Projectile{
			Owner:    owner,
			Faction:  faction,
			Weapon:   weapon,
			Damage:   damage,
			Lifetime: lifetime,
		},
	})
}

// Laser creates a piercing beam from pos along angle.
func (f *Factory) Laser(owner ecs.EntityID, pos geom.Vec2, angle, damage float64) (ecs.EntityID, bool) {
	wc := f.cfg.Weapons
	return f.reg.Create(Spec{
		Kind:     KindProjectile,
		Pos:      pos,
		Rotation: angle,
		Radius:   wc.LaserWidth,
		Projectile: &Projectile{
			Owner:    owner,
			Faction:  FactionPlayer,
			Weapon:   WeaponLaser,
			Damage:   damage,
			Lifetime: wc.LaserLifetime.Seconds(),
			Piercing: true,
			Length:   wc.LaserRange,
			Width:    wc.LaserWidth,
		},
	})
}

// Bomb drops a fused bomb at pos.
func (f *Factory) Bomb(owner ecs.EntityID, pos geom.Vec2, damage float64) (ecs.EntityID, bool) {
	bc := f.cfg.Bomb
	return f.reg.Create(Spec{
		Kind:   KindProjectile,
		Pos:    pos,
		Radius: bc.Radius,
		Projectile: &Projectile{
			Owner:    owner,
			Faction:  FactionPlayer,
			Weapon:   WeaponBomb,
			Damage:   damage,
			Lifetime: bc.Fuse.Seconds(),
			Blast:    bc.BlastRadius,
		},
	})
}

// PowerUp drops a drifting pickup at pos.
func (f *Factory) PowerUp(typ PowerUp, pos, vel geom.Vec2) (ecs.EntityID, bool) {
	pc := f.cfg.PowerUps
	return f.reg.Create(Spec{
		Kind:   KindPickup,
		Pos:    pos,
		Vel:    vel,
		Spin:   1.5,
		Radius: pc.Radius,
		Pickup: &Pickup{
			Type:     typ,
			Lifetime: pc.Lifetime.Seconds(),
		},
	})
}
