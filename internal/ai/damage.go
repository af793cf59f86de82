package ai

import "github.com/driftfield/arcade/internal/world"

// ApplyDamage lowers an enemy's hit points and reports whether this hit
// killed it. A killed enemy enters DeadPending, which no later evaluation
// leaves. Damage to a dead or non-enemy entity is ignored.
func ApplyDamage(e *world.Entity, amount float64) bool {
	if e == nil || e.Enemy == nil || amount <= 0 {
		return false
	}
	en := e.Enemy
	if en.State == world.StateDeadPending {
		return false
	}
	en.HP -= amount
	if en.HP > 0 {
		return false
	}
	en.HP = 0
	en.State = world.StateDeadPending
	en.TimeInState = 0
	return true
}
