package world

import (
	"github.com/driftfield/arcade/internal/core/ecs"
	"github.com/driftfield/arcade/internal/geom"
)

// Game events. Emitted during a tick and delivered, in emission order, once
// the tick completes.

// Cause explains why an entity was destroyed.
type Cause string

const (
	CauseProjectile Cause = "projectile"
	CauseLaser      Cause = "laser"
	CauseBlast      Cause = "blast"
	CauseCollision  Cause = "collision"
	CauseShield     Cause = "shield"
	CauseExpired    Cause = "expired"
	CauseDetonated  Cause = "detonated"
	CauseSpent      Cause = "spent" // projectile consumed by its hit
	CauseDefeated   Cause = "defeated"
	CauseCollected  Cause = "collected" // pickup taken by the ship
)

type EntityDestroyed struct {
	ID    ecs.EntityID
	Kind  Kind
	Cause Cause
}

type ScoreChanged struct {
	Delta int64
	Total int64
}

type ResourceGained struct {
	Material Material
	Amount   int
}

type WaveStarted struct {
	Wave       int
	Difficulty float64
	Asteroids  int
}

type WaveCleared struct {
	Wave    int
	Bonus   int64
	Elapsed float64 // seconds
}

type BossPhaseChanged struct {
	ID   ecs.EntityID
	From int
	To   int
	Name string
}

type HunterStateChanged struct {
	ID   ecs.EntityID
	From BehaviorState
	To   BehaviorState
}

type ShotFired struct {
	Owner  ecs.EntityID
	Weapon WeaponKind
}

type BombDetonated struct {
	ID     ecs.EntityID
	Pos    geom.Vec2
	Radius float64
}

type PowerUpCollected struct {
	ID   ecs.EntityID
	Type PowerUp
}

type ShipDestroyed struct {
	LivesLeft int
}

type ShipRespawned struct {
	ID ecs.EntityID
}

// PopulationCapped reports a spawn dropped because the entity cap was hit.
type PopulationCapped struct {
	Kind Kind
	Cap  int
}

type GameOver struct {
	Score int64
	Wave  int
	Stats Stats
}
