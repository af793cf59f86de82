package geom

import "math"

// Vec2 is a 2D vector in world units. Value type, never shared.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2  { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64    { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64  { return v.X*o.Y - v.Y*o.X }
func (v Vec2) Len() float64          { return math.Hypot(v.X, v.Y) }
func (v Vec2) LenSq() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Dist(o Vec2) float64   { return v.Sub(o).Len() }
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }
func (v Vec2) Angle() float64        { return math.Atan2(v.Y, v.X) }
func (v Vec2) IsZero() bool          { return v.X == 0 && v.Y == 0 }

// Norm returns the unit vector, or the zero vector for zero input.
func (v Vec2) Norm() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated counter-clockwise by rad.
func (v Vec2) Rotate(rad float64) Vec2 {
	s, c := math.Sincos(rad)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// ClampLen limits the vector length to max.
func (v Vec2) ClampLen(max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// FromAngle returns a vector of length mag pointing at rad.
func FromAngle(rad, mag float64) Vec2 {
	s, c := math.Sincos(rad)
	return Vec2{c * mag, s * mag}
}

// AngleDiff returns target-current normalized to [-pi, pi].
func AngleDiff(current, target float64) float64 {
	d := math.Mod(target-current, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// TurnToward rotates current toward target by at most maxStep radians.
func TurnToward(current, target, maxStep float64) float64 {
	d := AngleDiff(current, target)
	if math.Abs(d) <= maxStep {
		return current + d
	}
	if d > 0 {
		return current + maxStep
	}
	return current - maxStep
}

// ClosestOnSegment returns the point on segment ab closest to p.
func ClosestOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	l2 := ab.LenSq()
	if l2 == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// PointInTriangle tests p against triangle abc using barycentric coordinates.
// Degenerate triangles contain nothing.
func PointInTriangle(p, a, b, c Vec2) bool {
	denom := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if math.Abs(denom) < 1e-9 {
		return false
	}
	l1 := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / denom
	l2 := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / denom
	l3 := 1 - l1 - l2
	return l1 >= 0 && l2 >= 0 && l3 >= 0
}

// Wrap folds p into [0,w) x [0,h).
func Wrap(p Vec2, w, h float64) Vec2 {
	if w > 0 {
		p.X = math.Mod(p.X, w)
		if p.X < 0 {
			p.X += w
		}
	}
	if h > 0 {
		p.Y = math.Mod(p.Y, h)
		if p.Y < 0 {
			p.Y += h
		}
	}
	return p
}
