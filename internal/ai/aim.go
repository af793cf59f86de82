package ai

import (
	"math"

	"github.com/driftfield/arcade/internal/geom"
)

// InterceptPoint returns where a shot fired now from shooter at speed should
// aim to meet a target moving at constant velocity. The flight time is
// refined a few rounds; a near-stationary target is aimed at directly.
func InterceptPoint(shooter, target, targetVel geom.Vec2, speed float64) geom.Vec2 {
	if targetVel.LenSq() < 0.01 || speed <= 0 {
		return target
	}
	dist := shooter.Dist(target)
	if dist < 1 {
		return target
	}
	t := dist / speed
	for i := 0; i < 5; i++ {
		predicted := target.Add(targetVel.Scale(t))
		d := shooter.Dist(predicted)
		if d == 0 {
			break
		}
		next := d / speed
		if math.Abs(next-t) < 0.001 {
			t = next
			break
		}
		t = next
	}
	return target.Add(targetVel.Scale(t))
}

// Predict extrapolates a position linearly over lead seconds.
func Predict(pos, vel geom.Vec2, lead float64) geom.Vec2 {
	return pos.Add(vel.Scale(lead))
}
