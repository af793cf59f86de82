package world

import (
	"github.com/driftfield/arcade/internal/core/ecs"
	"github.com/driftfield/arcade/internal/geom"
)

// EntityView is the read-only copy of an entity handed to renderers.
type EntityView struct {
	ID       ecs.EntityID
	Kind     Kind
	Pos      geom.Vec2
	Rotation float64
	Radius   float64
	State    string
}

// Snapshot copies every live committed entity in slot order.
func (r *Registry) Snapshot() []EntityView {
	out := make([]EntityView, 0, r.world.Live())
	r.ForEachAlive(MaskAll, func(e *Entity) {
		out = append(out, EntityView{
			ID:       e.ID,
			Kind:     e.Kind,
			Pos:      e.Pos,
			Rotation: e.Rotation,
			Radius:   e.Radius,
			State:    e.StateTag(),
		})
	})
	return out
}
