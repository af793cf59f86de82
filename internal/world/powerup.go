package world

import (
	"math"
	"math/rand/v2"

	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/geom"
)

// PowerUp is the effect a pickup grants when the ship touches it.
type PowerUp uint8

const (
	PowerUpShield PowerUp = iota + 1
	PowerUpSpeed
	PowerUpRapid
	PowerUpSpread

	PowerUpCount = int(PowerUpSpread)
)

func (p PowerUp) String() string {
	switch p {
	case PowerUpShield:
		return "shield"
	case PowerUpSpeed:
		return "speed"
	case PowerUpRapid:
		return "rapid"
	case PowerUpSpread:
		return "spread"
	}
	return "unknown"
}

type Pickup struct {
	Type     PowerUp
	Lifetime float64 // seconds; 0 never expires
	Age      float64
}

// GravityWell pulls ships and asteroids inside Radius toward Pos.
type GravityWell struct {
	Pos      geom.Vec2
	Radius   float64
	Strength float64
}

// Pull returns the velocity change for a body at pos over secs. The pull
// follows the inverse square of the distance, capped at Strength.
func (w GravityWell) Pull(pos geom.Vec2, secs float64) geom.Vec2 {
	to := w.Pos.Sub(pos)
	d := to.Len()
	if d <= 0 || d >= w.Radius {
		return geom.Vec2{}
	}
	accel := math.Min(w.Strength/(d*d), w.Strength)
	return to.Scale(accel * secs / d)
}

// PlaceWells scatters the configured wells inside the world, keeping
// margin clear of every edge.
func PlaceWells(gc config.GravityConfig, width, height float64, rng *rand.Rand) []GravityWell {
	if gc.Wells <= 0 {
		return nil
	}
	mx := math.Min(gc.Margin, width/2)
	my := math.Min(gc.Margin, height/2)
	wells := make([]GravityWell, gc.Wells)
	for i := range wells {
		wells[i] = GravityWell{
			Pos:      geom.V(mx+rng.Float64()*(width-2*mx), my+rng.Float64()*(height-2*my)),
			Radius:   gc.Radius,
			Strength: gc.Strength,
		}
	}
	return wells
}
