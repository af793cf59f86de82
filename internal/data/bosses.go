package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Boss movement patterns.
const (
	MoveApproach = "approach"
	MoveOrbit    = "orbit"
	MoveStrafe   = "strafe"
	MoveHold     = "hold"
)

// Boss attack patterns.
const (
	AttackSingle = "single"
	AttackSpread = "spread"
	AttackRing   = "ring"
	AttackSpiral = "spiral"
)

// BossPhase is one named stage of a boss fight. A phase is entered once the
// boss health fraction drops to Threshold or below.
type BossPhase struct {
	Name            string  `yaml:"name"`
	Threshold       float64 `yaml:"threshold"`
	Movement        string  `yaml:"movement"`
	Speed           float64 `yaml:"speed"`
	Range           float64 `yaml:"range"` // preferred distance for orbit/strafe
	Attack          string  `yaml:"attack"`
	Shots           int     `yaml:"shots"`
	Spread          float64 `yaml:"spread"`   // degrees between shots, spiral step for spiral
	Cooldown        float64 `yaml:"cooldown"` // seconds between volleys
	ProjectileSpeed float64 `yaml:"projectile_speed"`
}

type bossFile struct {
	Phases []BossPhase `yaml:"phases"`
}

// BossPhaseTable is the ordered phase list, thresholds strictly decreasing.
type BossPhaseTable struct {
	phases []BossPhase
}

// LoadBossPhaseTable loads boss_phases.yaml.
func LoadBossPhaseTable(path string) (*BossPhaseTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boss phases: %w", err)
	}
	return ParseBossPhaseTable(raw)
}

func ParseBossPhaseTable(raw []byte) (*BossPhaseTable, error) {
	var f bossFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse boss phases: %w", err)
	}
	if len(f.Phases) == 0 {
		return nil, fmt.Errorf("boss phases: table is empty")
	}
	for i := range f.Phases {
		p := &f.Phases[i]
		if i > 0 && p.Threshold >= f.Phases[i-1].Threshold {
			return nil, fmt.Errorf("boss phases: %q threshold %v not below %q", p.Name, p.Threshold, f.Phases[i-1].Name)
		}
		switch p.Movement {
		case MoveApproach, MoveOrbit, MoveStrafe, MoveHold:
		default:
			return nil, fmt.Errorf("boss phases: %q unknown movement %q", p.Name, p.Movement)
		}
		switch p.Attack {
		case AttackSingle, AttackSpread, AttackRing, AttackSpiral:
		default:
			return nil, fmt.Errorf("boss phases: %q unknown attack %q", p.Name, p.Attack)
		}
		if p.Shots < 1 {
			p.Shots = 1
		}
		if p.Cooldown <= 0 || p.ProjectileSpeed <= 0 {
			return nil, fmt.Errorf("boss phases: %q needs positive cooldown and projectile_speed", p.Name)
		}
	}
	return &BossPhaseTable{phases: f.Phases}, nil
}

// Phase returns phase i. The caller keeps i within Count.
func (t *BossPhaseTable) Phase(i int) *BossPhase {
	return &t.phases[i]
}

// PhaseFor returns the deepest phase whose threshold is at or above the
// health fraction. Phase 0 applies above every threshold.
func (t *BossPhaseTable) PhaseFor(fraction float64) int {
	idx := 0
	for i := 1; i < len(t.phases); i++ {
		if fraction <= t.phases[i].Threshold {
			idx = i
		}
	}
	return idx
}

func (t *BossPhaseTable) Count() int {
	return len(t.phases)
}
