package sim

import (
	"github.com/driftfield/arcade/internal/wave"
	"github.com/driftfield/arcade/internal/world"
)

// Frame is the immutable result of one tick, handed to rendering, audio
// and HUD collaborators.
type Frame struct {
	Tick      uint64
	Entities  []world.EntityView
	Events    []any // emission order
	Wave      wave.WaveState
	Lives     int
	Weapon    world.WeaponKind
	Mult      world.Multipliers
	Resources [world.MaterialCount]int
	Stats     world.Stats
	Wells     []world.GravityWell // fixed for the run; do not modify
	Over      bool
}

// EventsOf returns the frame's events of type T in emission order.
func EventsOf[T any](f *Frame) []T {
	if f == nil {
		return nil
	}
	var out []T
	for _, ev := range f.Events {
		if t, ok := ev.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the views of every live entity of kind.
func (f *Frame) Find(kind world.Kind) []world.EntityView {
	var out []world.EntityView
	for _, v := range f.Entities {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}
