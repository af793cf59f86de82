package data

import (
	"path/filepath"
	"testing"

	"github.com/driftfield/arcade/internal/world"
)

func TestLoadShippedTables(t *testing.T) {
	mats, err := LoadMaterialTable(filepath.Join("..", "..", "data", "yaml", "materials.yaml"))
	if err != nil {
		t.Fatalf("materials: %v", err)
	}
	if got := mats.Get(world.MaterialMetal).HP; got <= 1 {
		t.Fatalf("metal must take several hits, hp = %v", got)
	}
	if got := mats.Get(world.MaterialCrystal).ExtraChildren; got != 1 {
		t.Fatalf("crystal extra children = %d", got)
	}
	phases, err := LoadBossPhaseTable(filepath.Join("..", "..", "data", "yaml", "boss_phases.yaml"))
	if err != nil {
		t.Fatalf("boss phases: %v", err)
	}
	if phases.Count() < 2 {
		t.Fatalf("expected several phases, got %d", phases.Count())
	}
}

func TestMaterialPickFollowsWeights(t *testing.T) {
	mats, err := ParseMaterialTable([]byte(`
materials:
  - {name: plain, hp: 1, weight: 1}
  - {name: ice, hp: 1, weight: 0}
  - {name: metal, hp: 3, weight: 3}
  - {name: crystal, hp: 1, weight: 0}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cases := []struct {
		u    float64
		want world.Material
	}{
		{0, world.MaterialPlain},
		{0.24, world.MaterialPlain},
		{0.25, world.MaterialMetal},
		{0.99, world.MaterialMetal},
	}
	for _, tc := range cases {
		if got := mats.Pick(tc.u); got != tc.want {
			t.Errorf("Pick(%v) = %v, want %v", tc.u, got, tc.want)
		}
	}
}

func TestMaterialTableRejectsMissingEntries(t *testing.T) {
	_, err := ParseMaterialTable([]byte(`
materials:
  - {name: plain, hp: 1, weight: 1}
`))
	if err == nil {
		t.Fatal("expected error for incomplete table")
	}
	_, err = ParseMaterialTable([]byte(`
materials:
  - {name: granite, hp: 1, weight: 1}
`))
	if err == nil {
		t.Fatal("expected error for unknown material")
	}
}

func TestPhaseForPicksDeepestCrossed(t *testing.T) {
	tbl, err := ParseBossPhaseTable([]byte(`
phases:
  - {name: one, threshold: 1.0, movement: approach, attack: single, cooldown: 1, projectile_speed: 100}
  - {name: two, threshold: 0.5, movement: orbit, attack: spread, shots: 3, cooldown: 1, projectile_speed: 100}
  - {name: three, threshold: 0.2, movement: hold, attack: ring, shots: 8, cooldown: 1, projectile_speed: 100}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cases := []struct {
		frac float64
		want int
	}{
		{1, 0},
		{0.51, 0},
		{0.5, 1},
		{0.3, 1},
		{0.1, 2},
		{0, 2},
	}
	for _, tc := range cases {
		if got := tbl.PhaseFor(tc.frac); got != tc.want {
			t.Errorf("PhaseFor(%v) = %d, want %d", tc.frac, got, tc.want)
		}
	}
}

func TestBossPhaseTableRejectsRisingThreshold(t *testing.T) {
	_, err := ParseBossPhaseTable([]byte(`
phases:
  - {name: one, threshold: 0.5, movement: approach, attack: single, cooldown: 1, projectile_speed: 100}
  - {name: two, threshold: 0.7, movement: orbit, attack: single, cooldown: 1, projectile_speed: 100}
`))
	if err == nil {
		t.Fatal("expected error for non-decreasing thresholds")
	}
}
