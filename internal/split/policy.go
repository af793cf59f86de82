// Package split decides what a hit does to an asteroid.
package split

import (
	"math"
	"math/rand/v2"

	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/core/invariant"
	"github.com/driftfield/arcade/internal/data"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

// Yield is the resource drop of a destroyed asteroid.
type Yield struct {
	Material world.Material
	Amount   int
}

// Result is the outcome of one hit. When Destroyed is false only
// RemainingHP is meaningful.
type Result struct {
	Destroyed   bool
	RemainingHP float64
	Children    []world.AsteroidSpec
	Score       int
	Yield       Yield
}

// Policy maps (asteroid, impact) to children, score and yield. It reads the
// asteroid but never mutates it; the caller applies the result.
type Policy struct {
	cfg       config.AsteroidConfig
	materials *data.MaterialTable
	rng       *rand.Rand
}

func NewPolicy(cfg config.AsteroidConfig, materials *data.MaterialTable, rng *rand.Rand) *Policy {
	return &Policy{cfg: cfg, materials: materials, rng: rng}
}

// ChildSize returns the size class children of size split into. Small rocks
// never split; asking for their children is a contract violation.
func ChildSize(size world.SizeClass) (world.SizeClass, bool) {
	switch size {
	case world.SizeLarge:
		return world.SizeMedium, true
	case world.SizeMedium:
		return world.SizeSmall, true
	}
	invariant.Violated("child size requested for %s asteroid", size)
	return 0, false
}

// Score returns the points for destroying a rock of size; smaller rocks
// are worth more.
func (p *Policy) Score(size world.SizeClass) int {
	switch size {
	case world.SizeLarge:
		return p.cfg.LargeScore
	case world.SizeMedium:
		return p.cfg.MediumScore
	}
	return p.cfg.SmallScore
}

func (p *Policy) radius(size world.SizeClass) float64 {
	switch size {
	case world.SizeLarge:
		return p.cfg.LargeRadius
	case world.SizeMedium:
		return p.cfg.MediumRadius
	}
	return p.cfg.SmallRadius
}

// OnAsteroidHit applies impact as damage. Hits that leave hit points only
// report the remainder; a lethal hit yields children, score and resources.
func (p *Policy) OnAsteroidHit(a *world.Entity, impact float64) Result {
	rock := a.Asteroid
	if rock == nil || impact <= 0 {
		return Result{RemainingHP: hpOf(rock)}
	}
	remaining := rock.HP - impact
	if remaining > 0 {
		return Result{RemainingHP: remaining}
	}

	mat := p.materials.Get(rock.Material)
	res := Result{
		Destroyed: true,
		Score:     p.Score(rock.Size),
		Yield:     Yield{Material: rock.Material, Amount: p.yield(mat)},
	}
	if rock.Size == world.SizeSmall {
		return res
	}
	childSize, ok := ChildSize(rock.Size)
	if !ok {
		return res
	}
	res.Children = p.children(a, childSize, mat, impact)
	return res
}

func hpOf(rock *world.Asteroid) float64 {
	if rock == nil {
		return 0
	}
	return rock.HP
}

func (p *Policy) yield(mat *data.MaterialInfo) int {
	if mat.YieldMax <= 0 {
		return 0
	}
	return mat.YieldMin + p.rng.IntN(mat.YieldMax-mat.YieldMin+1)
}

// children fans the fragments out at even angles from a random offset so
// no two share a velocity, each inheriting the parent velocity.
func (p *Policy) children(a *world.Entity, size world.SizeClass, mat *data.MaterialInfo, impact float64) []world.AsteroidSpec {
	n := p.cfg.ChildrenPerSplit + mat.ExtraChildren
	out := make([]world.AsteroidSpec, 0, n)
	base := p.rng.Float64() * 2 * math.Pi
	offset := p.radius(size) * 0.5
	for i := 0; i < n; i++ {
		dir := base + 2*math.Pi*float64(i)/float64(n)
		speed := p.cfg.ChildSpeedMin + p.rng.Float64()*(p.cfg.ChildSpeedMax-p.cfg.ChildSpeedMin)
		speed = speed*mat.SpeedFactor + p.cfg.ImpactSpeedFactor*impact
		out = append(out, world.AsteroidSpec{
			Size:     size,
			Material: a.Asteroid.Material,
			HP:       mat.HP,
			Pos:      a.Pos.Add(geom.FromAngle(dir, offset)),
			Vel:      a.Vel.Add(geom.FromAngle(dir, speed)),
			Spin:     (p.rng.Float64()*2 - 1) * p.cfg.MaxSpin,
		})
	}
	return out
}
