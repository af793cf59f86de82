package world

import (
	"github.com/driftfield/arcade/internal/core/ecs"
	"github.com/driftfield/arcade/internal/geom"
)

// Kind tags the variant carried by an Entity.
type Kind uint8

const (
	KindShip Kind = iota + 1
	KindAsteroid
	KindProjectile
	KindEnemy
	KindPickup
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAsteroid:
		return "asteroid"
	case KindProjectile:
		return "projectile"
	case KindEnemy:
		return "enemy"
	case KindPickup:
		return "pickup"
	}
	return "unknown"
}

func (k Kind) Mask() KindMask { return KindMask(1) << k }

// KindMask selects a set of kinds for ForEachAlive.
type KindMask uint8

const (
	MaskShip       = KindMask(1) << KindShip
	MaskAsteroid   = KindMask(1) << KindAsteroid
	MaskProjectile = KindMask(1) << KindProjectile
	MaskEnemy      = KindMask(1) << KindEnemy
	MaskPickup     = KindMask(1) << KindPickup
	MaskAll        = MaskShip | MaskAsteroid | MaskProjectile | MaskEnemy | MaskPickup
)

func (m KindMask) Has(k Kind) bool { return m&k.Mask() != 0 }

// SizeClass orders asteroids; a smaller value is a smaller rock.
type SizeClass uint8

const (
	SizeSmall SizeClass = iota + 1
	SizeMedium
	SizeLarge
)

func (s SizeClass) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	}
	return "unknown"
}

type Material uint8

const (
	MaterialPlain Material = iota
	MaterialIce
	MaterialMetal
	MaterialCrystal

	MaterialCount = int(MaterialCrystal) + 1
)

var materialNames = [MaterialCount]string{"plain", "ice", "metal", "crystal"}

func (m Material) String() string {
	if int(m) < MaterialCount {
		return materialNames[m]
	}
	return "unknown"
}

// ParseMaterial maps a table name to its Material.
func ParseMaterial(name string) (Material, bool) {
	for i, n := range materialNames {
		if n == name {
			return Material(i), true
		}
	}
	return 0, false
}

type EnemyType uint8

const (
	EnemyHunter EnemyType = iota + 1
	EnemyBoss
)

func (t EnemyType) String() string {
	if t == EnemyBoss {
		return "boss"
	}
	return "hunter"
}

// BehaviorState is the enemy state machine position. Bosses only use
// StateSeeking (alive, see Enemy.Phase) and StateDeadPending.
type BehaviorState uint8

const (
	StateSeeking BehaviorState = iota
	StateAttacking
	StateEvading
	StateDeadPending
)

func (s BehaviorState) String() string {
	switch s {
	case StateSeeking:
		return "seeking"
	case StateAttacking:
		return "attacking"
	case StateEvading:
		return "evading"
	case StateDeadPending:
		return "dead_pending"
	}
	return "unknown"
}

type WeaponKind uint8

const (
	WeaponNone WeaponKind = iota
	WeaponNormal
	WeaponRapid
	WeaponSpread
	WeaponLaser
	WeaponBomb
)

func (w WeaponKind) String() string {
	switch w {
	case WeaponNormal:
		return "normal"
	case WeaponRapid:
		return "rapid"
	case WeaponSpread:
		return "spread"
	case WeaponLaser:
		return "laser"
	case WeaponBomb:
		return "bomb"
	}
	return "none"
}

// Faction decides which bodies a projectile may hit.
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionHostile
)

// Entity is the single record for every simulated object. Exactly one of the
// payload pointers is set, matching Kind. Pointers handed out by the Registry
// are valid for the current tick only.
type Entity struct {
	ID       ecs.EntityID
	Kind     Kind
	Pos      geom.Vec2
	Vel      geom.Vec2
	Rotation float64 // radians
	Spin     float64 // radians per second
	Radius   float64
	Alive    bool
	Born     uint64 // tick the entity was created in

	Ship       *Ship
	Asteroid   *Asteroid
	Projectile *Projectile
	Enemy      *Enemy
	Pickup     *Pickup
}

// StateTag is the short state label exposed in snapshots.
func (e *Entity) StateTag() string {
	switch e.Kind {
	case KindShip:
		if e.Ship.Shield > 0 {
			return "shielded"
		}
		return "flying"
	case KindAsteroid:
		return e.Asteroid.Size.String() + "/" + e.Asteroid.Material.String()
	case KindProjectile:
		return e.Projectile.Weapon.String()
	case KindEnemy:
		if e.Enemy.Type == EnemyBoss && e.Enemy.State != StateDeadPending {
			return e.Enemy.PhaseName
		}
		return e.Enemy.State.String()
	case KindPickup:
		return e.Pickup.Type.String()
	}
	return ""
}

type Ship struct {
	Thrusting    bool
	Shield       float64 // seconds of invulnerability left
	Boost        float64 // seconds of speed boost left
	Cooldown     float64 // seconds until the gun may fire
	BombCooldown float64
	Mult         Multipliers // upgrade multipliers in effect at spawn/apply time
}

type Asteroid struct {
	Size     SizeClass
	Material Material
	HP       float64
}

type Projectile struct {
	Owner    ecs.EntityID
	Faction  Faction
	Weapon   WeaponKind
	Damage   float64
	Lifetime float64 // seconds; fuse length for bombs
	Age      float64
	Piercing bool
	Length   float64 // beam length for lasers
	Width    float64 // beam half-width for lasers
	Blast    float64 // blast radius for bombs
	Armed    bool    // bomb fuse burnt out, detonates in the collision phase
}

// Beam returns the laser segment endpoints.
func (e *Entity) Beam() (geom.Vec2, geom.Vec2) {
	return e.Pos, e.Pos.Add(geom.FromAngle(e.Rotation, e.Projectile.Length))
}

type Enemy struct {
	Type        EnemyType
	HP          float64
	MaxHP       float64
	State       BehaviorState
	TimeInState float64
	Cooldown    float64 // seconds until the next volley
	Score       int

	// boss only
	Phase     int
	PhaseName string
	PhaseTime float64
	Volleys   int // volleys fired in the current phase
}

// HealthFraction returns HP/MaxHP in [0,1].
func (en *Enemy) HealthFraction() float64 {
	if en.MaxHP <= 0 {
		return 0
	}
	f := en.HP / en.MaxHP
	if f < 0 {
		return 0
	}
	return f
}

// Spec describes an entity to create. Payloads are copied by the registry.
type Spec struct {
	Kind     Kind
	Pos      geom.Vec2
	Vel      geom.Vec2
	Rotation float64
	Spin     float64
	Radius   float64

	Ship       *Ship
	Asteroid   *Asteroid
	Projectile *Projectile
	Enemy      *Enemy
	Pickup     *Pickup
}

// AsteroidSpec is a rock waiting to be created, as produced by splitting and
// wave spawning. Radius is filled in by the Factory from the size class.
type AsteroidSpec struct {
	Size     SizeClass
	Material Material
	HP       float64
	Pos      geom.Vec2
	Vel      geom.Vec2
	Spin     float64
}
