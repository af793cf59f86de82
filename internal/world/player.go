package world

import "github.com/driftfield/arcade/internal/core/ecs"

// Multipliers are the upgrade factors a collaborator-owned economy applies
// to the ship. The simulation only reads them.
type Multipliers struct {
	Radius       float64
	Acceleration float64
	Damage       float64
	Shield       float64
}

func DefaultMultipliers() Multipliers {
	return Multipliers{Radius: 1, Acceleration: 1, Damage: 1, Shield: 1}
}

// sanitize replaces non-positive factors with 1.
func (m Multipliers) sanitize() Multipliers {
	fix := func(v float64) float64 {
		if v <= 0 {
			return 1
		}
		return v
	}
	return Multipliers{
		Radius:       fix(m.Radius),
		Acceleration: fix(m.Acceleration),
		Damage:       fix(m.Damage),
		Shield:       fix(m.Shield),
	}
}

// Intent is one tick of player control, supplied by the input collaborator.
type Intent struct {
	Thrust   float64    // 0..1
	Turn     float64    // -1..1, positive turns counter-clockwise
	Fire     bool       // hold to fire the selected weapon
	DropBomb bool       // drop a bomb if one is available
	Weapon   WeaponKind // WeaponNone keeps the current selection
	Upgrades *Multipliers
}

// Stats are run totals reported at game over.
type Stats struct {
	AsteroidsDestroyed int
	EnemiesDestroyed   int
	BossesDefeated     int
	ShotsFired         int
	BombsDropped       int
	ShipsLost          int
	PowerUpsCollected  int
	PlayTime           float64 // seconds
}

// Session is the player's state outside the ship entity: lives, respawn
// timer, selected weapon, inventory and statistics.
type Session struct {
	ShipID    ecs.EntityID
	Lives     int
	RespawnIn float64 // seconds until respawn while no ship exists
	Weapon    WeaponKind
	Mult      Multipliers
	Resources [MaterialCount]int
	Stats     Stats
	Over      bool
}

func NewSession(lives int) *Session {
	return &Session{
		Lives:  lives,
		Weapon: WeaponNormal,
		Mult:   DefaultMultipliers(),
	}
}

// ApplyUpgrades installs new multipliers, ignoring non-positive factors.
func (s *Session) ApplyUpgrades(m Multipliers) {
	s.Mult = m.sanitize()
}

// AddResource credits mined material.
func (s *Session) AddResource(m Material, amount int) {
	if amount <= 0 || int(m) >= MaterialCount {
		return
	}
	s.Resources[m] += amount
}
