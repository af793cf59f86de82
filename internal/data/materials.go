package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/driftfield/arcade/internal/world"
)

// MaterialInfo holds the gameplay numbers of one asteroid material.
type MaterialInfo struct {
	Name          string  `yaml:"name"`
	HP            float64 `yaml:"hp"`             // damage needed before the rock breaks
	ExtraChildren int     `yaml:"extra_children"` // added to the base split fan-out
	SpeedFactor   float64 `yaml:"speed_factor"`   // scales child separation speed
	YieldMin      int     `yaml:"yield_min"`
	YieldMax      int     `yaml:"yield_max"`
	Weight        int     `yaml:"weight"` // relative spawn frequency

	Material world.Material `yaml:"-"`
}

type materialFile struct {
	Materials []MaterialInfo `yaml:"materials"`
}

// MaterialTable maps every material to its numbers.
type MaterialTable struct {
	byMaterial  [world.MaterialCount]*MaterialInfo
	totalWeight int
}

// LoadMaterialTable loads materials.yaml.
func LoadMaterialTable(path string) (*MaterialTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read materials: %w", err)
	}
	return ParseMaterialTable(raw)
}

// ParseMaterialTable builds the table from YAML. Every material must appear
// exactly once.
func ParseMaterialTable(raw []byte) (*MaterialTable, error) {
	var f materialFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse materials: %w", err)
	}
	t := &MaterialTable{}
	for i := range f.Materials {
		m := &f.Materials[i]
		mat, ok := world.ParseMaterial(m.Name)
		if !ok {
			return nil, fmt.Errorf("materials: unknown material %q", m.Name)
		}
		if t.byMaterial[mat] != nil {
			return nil, fmt.Errorf("materials: %q listed twice", m.Name)
		}
		if m.HP <= 0 {
			return nil, fmt.Errorf("materials: %q needs positive hp", m.Name)
		}
		if m.YieldMax < m.YieldMin || m.YieldMin < 0 || m.Weight < 0 || m.ExtraChildren < 0 {
			return nil, fmt.Errorf("materials: %q has invalid ranges", m.Name)
		}
		if m.SpeedFactor <= 0 {
			m.SpeedFactor = 1
		}
		m.Material = mat
		t.byMaterial[mat] = m
		t.totalWeight += m.Weight
	}
	for i, m := range t.byMaterial {
		if m == nil {
			return nil, fmt.Errorf("materials: missing %q", world.Material(i))
		}
	}
	if t.totalWeight == 0 {
		return nil, fmt.Errorf("materials: all spawn weights are zero")
	}
	return t, nil
}

// Get returns the entry for m. Never nil for a loaded table.
func (t *MaterialTable) Get(m world.Material) *MaterialInfo {
	if int(m) >= world.MaterialCount {
		return t.byMaterial[world.MaterialPlain]
	}
	return t.byMaterial[m]
}

// Pick maps u in [0,1) onto a material by spawn weight.
func (t *MaterialTable) Pick(u float64) world.Material {
	target := int(u * float64(t.totalWeight))
	for _, m := range t.byMaterial {
		if target < m.Weight {
			return m.Material
		}
		target -= m.Weight
	}
	return world.MaterialPlain
}

// Count returns the number of materials loaded.
func (t *MaterialTable) Count() int {
	return len(t.byMaterial)
}
