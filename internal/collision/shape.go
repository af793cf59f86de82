// Package collision finds overlapping bodies and picks which hits count.
package collision

import (
	"math"

	"github.com/driftfield/arcade/internal/core/ecs"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeTriangle
	ShapeSegment
)

// Body is the collision view of one entity for one tick.
type Body struct {
	ID       ecs.EntityID
	Kind     world.Kind
	Faction  world.Faction
	Owner    ecs.EntityID // firing entity for projectiles
	Piercing bool
	Shape    Shape
	Center   geom.Vec2
	Radius   float64      // circle radius, triangle circumradius, segment half-width
	Tri      [3]geom.Vec2 // ShapeTriangle vertices
	A, B     geom.Vec2    // ShapeSegment endpoints
}

// Contact describes where two bodies touch. Distance is measured between
// the reference points of the bodies (centers, or the beam origin).
type Contact struct {
	Point    geom.Vec2
	Distance float64
}

// ShipTriangle returns the ship silhouette inscribed in its nominal circle:
// the tip on the heading, the rear vertices baseAngle radians either side.
func ShipTriangle(center geom.Vec2, heading, radius, baseAngle float64) [3]geom.Vec2 {
	return [3]geom.Vec2{
		center.Add(geom.FromAngle(heading, radius)),
		center.Add(geom.FromAngle(heading+baseAngle, radius)),
		center.Add(geom.FromAngle(heading-baseAngle, radius)),
	}
}

// BodyOf builds the body for a live entity. Ships become triangles, lasers
// segments and everything else circles. Bombs have no body.
func BodyOf(e *world.Entity, shipBaseAngle float64) (Body, bool) {
	b := Body{
		ID:     e.ID,
		Kind:   e.Kind,
		Shape:  ShapeCircle,
		Center: e.Pos,
		Radius: e.Radius,
	}
	switch e.Kind {
	case world.KindShip:
		b.Faction = world.FactionPlayer
		b.Shape = ShapeTriangle
		b.Tri = ShipTriangle(e.Pos, e.Rotation, e.Radius, shipBaseAngle)
	case world.KindEnemy:
		b.Faction = world.FactionHostile
	case world.KindAsteroid, world.KindPickup:
		b.Faction = world.FactionNeutral
	case world.KindProjectile:
		p := e.Projectile
		if p.Weapon == world.WeaponBomb {
			return Body{}, false
		}
		b.Faction = p.Faction
		b.Owner = p.Owner
		b.Piercing = p.Piercing
		if p.Weapon == world.WeaponLaser {
			b.Shape = ShapeSegment
			b.A, b.B = e.Beam()
			b.Radius = p.Width
		}
	}
	return b, true
}

// Test reports whether a and b overlap. Test(a, b) and Test(b, a) agree on
// both the answer and the contact.
func Test(a, b Body) (Contact, bool) {
	if a.Shape > b.Shape {
		a, b = b, a
	}
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return circleCircle(a, b)
	case a.Shape == ShapeCircle && b.Shape == ShapeTriangle:
		return triangleCircle(b, a)
	case a.Shape == ShapeCircle && b.Shape == ShapeSegment:
		return segmentCircle(b, a)
	}
	// Shapes that never meet in play fall back to their bounding circles.
	return circleCircle(bounding(a), bounding(b))
}

func circleCircle(a, b Body) (Contact, bool) {
	d := a.Center.Dist(b.Center)
	if d > a.Radius+b.Radius {
		return Contact{}, false
	}
	// Weighted so swapping a and b yields the same point.
	sum := a.Radius + b.Radius
	p := a.Center.Scale(b.Radius / sum).Add(b.Center.Scale(a.Radius / sum))
	return Contact{Point: p, Distance: d}, true
}

func triangleCircle(t, c Body) (Contact, bool) {
	d := t.Center.Dist(c.Center)
	if geom.PointInTriangle(c.Center, t.Tri[0], t.Tri[1], t.Tri[2]) {
		return Contact{Point: c.Center, Distance: d}, true
	}
	best, bestSq := geom.Vec2{}, math.Inf(1)
	for i := 0; i < 3; i++ {
		q := geom.ClosestOnSegment(c.Center, t.Tri[i], t.Tri[(i+1)%3])
		if dsq := q.DistSq(c.Center); dsq < bestSq {
			best, bestSq = q, dsq
		}
	}
	if bestSq > c.Radius*c.Radius {
		return Contact{}, false
	}
	return Contact{Point: best, Distance: d}, true
}

func segmentCircle(s, c Body) (Contact, bool) {
	q := geom.ClosestOnSegment(c.Center, s.A, s.B)
	if q.Dist(c.Center) > c.Radius+s.Radius {
		return Contact{}, false
	}
	return Contact{Point: q, Distance: s.A.Dist(q)}, true
}

func bounding(b Body) Body {
	if b.Shape == ShapeSegment {
		b.Center = b.A.Add(b.B).Scale(0.5)
		b.Radius += b.A.Dist(b.B) / 2
	}
	b.Shape = ShapeCircle
	return b
}
