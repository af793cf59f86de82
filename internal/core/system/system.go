package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseCommit    Phase = iota // 0: apply last tick's registry mutations
	PhaseInput                  // 1: player intent, upgrades, weapons, respawn
	PhaseAI                     // 2: enemy behaviour decisions
	PhaseMotion                 // 3: integrate motion, lifetimes, fuses
	PhaseCollision              // 4: overlaps, damage, splits, destroy/create requests
	PhaseDirector               // 5: wave director evaluation
	PhaseOutput                 // 6: event delivery + snapshot publish

	phaseCount = PhaseOutput + 1
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
