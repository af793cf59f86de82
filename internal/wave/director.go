// Package wave runs the wave loop: spawn a population, wait for it to be
// cleared, pay the clear bonus, raise the difficulty, repeat.
package wave

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/data"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

type State uint8

const (
	StateSpawning State = iota
	StateInProgress
	StateClearing
	StateAdvancing
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateInProgress:
		return "in_progress"
	case StateClearing:
		return "clearing"
	case StateAdvancing:
		return "advancing"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// WaveState is the director's state. State() hands out copies only.
type WaveState struct {
	Wave         int
	State        State
	Remaining    int     // live asteroids, pending children included
	Elapsed      float64 // seconds since the wave's population spawned
	Score        int64
	Difficulty   float64
	BossSpawned  bool
	Intermission float64 // seconds left before the next population spawns
}

// BonusContext is handed to a BonusScorer when a wave is cleared.
type BonusContext struct {
	Wave       int
	Elapsed    float64
	Difficulty float64
	Score      int64
}

// BonusScorer may override the clear bonus. ok=false uses the default
// formula.
type BonusScorer interface {
	WaveBonus(ctx BonusContext) (bonus int64, ok bool)
}

type Director struct {
	cfg       config.WaveConfig
	ast       config.AsteroidConfig
	width     float64
	height    float64
	factory   *world.Factory
	reg       *world.Registry
	materials *data.MaterialTable
	phases    *data.BossPhaseTable
	bus       *event.Bus
	rng       *rand.Rand
	bonus     BonusScorer
	log       *zap.Logger

	st      WaveState
	pending int64 // score credited this tick, applied on Update
}

func NewDirector(cfg *config.Config, factory *world.Factory, materials *data.MaterialTable,
	phases *data.BossPhaseTable, bus *event.Bus, rng *rand.Rand, log *zap.Logger) *Director {
	return &Director{
		cfg:       cfg.Waves,
		ast:       cfg.Asteroids,
		width:     cfg.Simulation.Width,
		height:    cfg.Simulation.Height,
		factory:   factory,
		reg:       factory.Registry(),
		materials: materials,
		phases:    phases,
		bus:       bus,
		rng:       rng,
		log:       log,
		st: WaveState{
			Wave:         1,
			State:        StateSpawning,
			Difficulty:   1,
			Intermission: cfg.Waves.Intermission.Seconds(),
		},
	}
}

func (d *Director) SetBonusScorer(b BonusScorer) {
	d.bonus = b
}

// State returns a copy of the wave state.
func (d *Director) State() WaveState { return d.st }

func (d *Director) Difficulty() float64 { return d.st.Difficulty }

// Credit records score earned during the current tick.
func (d *Director) Credit(delta int64) {
	d.pending += delta
}

// End applies outstanding credit and freezes the director.
func (d *Director) End() WaveState {
	d.applyCredits()
	d.st.State = StateGameOver
	return d.st
}

// Update advances the state machine once. Clearing and Advancing resolve
// within the same call that observes the last asteroid gone.
func (d *Director) Update(secs float64) {
	d.applyCredits()
	switch d.st.State {
	case StateSpawning:
		d.st.Intermission -= secs
		if d.st.Intermission > 0 {
			return
		}
		d.spawnWave()
	case StateInProgress:
		d.st.Elapsed += secs
		d.st.Remaining = d.reg.Count(world.KindAsteroid)
		if d.st.Remaining == 0 {
			d.clear()
			d.advance()
			return
		}
		d.maybeHunter(secs)
		d.maybeBoss()
	}
}

func (d *Director) applyCredits() {
	if d.pending == 0 {
		return
	}
	d.st.Score += d.pending
	event.Emit(d.bus, world.ScoreChanged{Delta: d.pending, Total: d.st.Score})
	d.pending = 0
}

// AsteroidCount is the initial population of the current wave.
func (d *Director) AsteroidCount() int {
	n := int(math.Round(float64(d.cfg.BaseAsteroids)*d.st.Difficulty)) + d.cfg.AsteroidsPerWave*(d.st.Wave-1)
	if d.cfg.MaxAsteroids > 0 && n > d.cfg.MaxAsteroids {
		n = d.cfg.MaxAsteroids
	}
	return n
}

// SpeedMultiplier scales spawn speeds: speed_growth compounded once per
// wave after the first, capped at max_speed_multiplier.
func (d *Director) SpeedMultiplier() float64 {
	m := math.Pow(d.cfg.SpeedGrowth, float64(d.st.Wave-1))
	if d.cfg.MaxSpeedMultiplier > 0 && m > d.cfg.MaxSpeedMultiplier {
		m = d.cfg.MaxSpeedMultiplier
	}
	return m
}

func (d *Director) spawnWave() {
	want := d.AsteroidCount()
	boost := d.SpeedMultiplier()
	created := 0
	for i := 0; i < want; i++ {
		pos, heading := d.edgeSpawn(d.ast.LargeRadius)
		mat := d.materials.Pick(d.rng.Float64())
		info := d.materials.Get(mat)
		speed := (d.ast.SpawnSpeedMin + d.rng.Float64()*(d.ast.SpawnSpeedMax-d.ast.SpawnSpeedMin)) * boost
		_, ok := d.factory.Asteroid(world.AsteroidSpec{
			Size:     world.SizeLarge,
			Material: mat,
			HP:       info.HP,
			Pos:      pos,
			Vel:      geom.FromAngle(heading, speed*info.SpeedFactor),
			Spin:     (d.rng.Float64()*2 - 1) * d.ast.MaxSpin,
		})
		if ok {
			created++
		}
	}
	d.st.State = StateInProgress
	d.st.Elapsed = 0
	d.st.BossSpawned = false
	d.st.Remaining = d.reg.Count(world.KindAsteroid)
	event.Emit(d.bus, world.WaveStarted{Wave: d.st.Wave, Difficulty: d.st.Difficulty, Asteroids: created})
	d.log.Info("wave started",
		zap.Int("wave", d.st.Wave),
		zap.Float64("difficulty", d.st.Difficulty),
		zap.Int("asteroids", created))
}

// edgeSpawn picks a point on the world border heading roughly inward,
// retrying a few times to keep clear of the ship.
func (d *Director) edgeSpawn(radius float64) (geom.Vec2, float64) {
	center := geom.V(d.width/2, d.height/2)
	ships := d.reg.Alive(world.MaskShip)
	var pos geom.Vec2
	for try := 0; try < 4; try++ {
		u := d.rng.Float64()
		switch d.rng.IntN(4) {
		case 0:
			pos = geom.V(u*d.width, 0)
		case 1:
			pos = geom.V(u*d.width, d.height)
		case 2:
			pos = geom.V(0, u*d.height)
		default:
			pos = geom.V(d.width, u*d.height)
		}
		if !d.nearShip(pos, radius, ships) {
			break
		}
	}
	heading := center.Sub(pos).Angle() + (d.rng.Float64()-0.5)*0.8
	return pos, heading
}

func (d *Director) nearShip(pos geom.Vec2, radius float64, ships []*world.Entity) bool {
	for _, s := range ships {
		if pos.Dist(s.Pos) < s.Radius+radius+d.cfg.SpawnMargin {
			return true
		}
	}
	return false
}

func (d *Director) maybeHunter(secs float64) {
	if d.cfg.MaxHunters <= 0 || d.cfg.HunterRate <= 0 {
		return
	}
	chance := 1 - math.Exp(-d.cfg.HunterRate*d.st.Difficulty*secs)
	if d.rng.Float64() >= chance {
		return
	}
	if d.reg.CountEnemies(world.EnemyHunter) >= d.cfg.MaxHunters {
		return
	}
	pos, heading := d.edgeSpawn(0)
	d.factory.Hunter(pos, heading, d.st.Difficulty)
}

// maybeBoss injects one boss per wave once the score or wave threshold is
// crossed, never while another boss lives.
func (d *Director) maybeBoss() {
	if d.st.BossSpawned || d.phases == nil {
		return
	}
	byScore := d.cfg.BossScore > 0 && d.st.Score >= d.cfg.BossScore
	byWave := d.cfg.BossWave > 0 && d.st.Wave >= d.cfg.BossWave
	if !byScore && !byWave {
		return
	}
	if d.reg.CountEnemies(world.EnemyBoss) > 0 {
		return
	}
	pos, heading := d.edgeSpawn(0)
	if _, ok := d.factory.Boss(pos, heading, d.st.Difficulty, d.phases.Phase(0).Name); ok {
		d.st.BossSpawned = true
		d.log.Info("boss injected", zap.Int("wave", d.st.Wave), zap.Int64("score", d.st.Score))
	}
}

func (d *Director) clear() {
	d.st.State = StateClearing
	ctx := BonusContext{Wave: d.st.Wave, Elapsed: d.st.Elapsed, Difficulty: d.st.Difficulty, Score: d.st.Score}
	bonus := DefaultBonus(d.cfg, ctx)
	if d.bonus != nil {
		if b, ok := d.bonus.WaveBonus(ctx); ok {
			bonus = b
		}
	}
	if bonus < 0 {
		bonus = 0
	}
	d.st.Score += bonus
	event.Emit(d.bus, world.WaveCleared{Wave: d.st.Wave, Bonus: bonus, Elapsed: d.st.Elapsed})
	if bonus > 0 {
		event.Emit(d.bus, world.ScoreChanged{Delta: bonus, Total: d.st.Score})
	}
	d.log.Info("wave cleared",
		zap.Int("wave", d.st.Wave),
		zap.Int64("bonus", bonus),
		zap.Float64("elapsed", d.st.Elapsed))
}

func (d *Director) advance() {
	d.st.State = StateAdvancing
	d.st.Wave++
	d.st.Difficulty = NextDifficulty(d.cfg, d.st.Difficulty, d.st.Wave)
	d.st.State = StateSpawning
	d.st.Intermission = d.cfg.Intermission.Seconds()
	d.st.Elapsed = 0
	d.st.Remaining = 0
}

// DefaultBonus pays BonusPerWave per wave number minus a per-second decay,
// never below zero.
func DefaultBonus(cfg config.WaveConfig, ctx BonusContext) int64 {
	b := cfg.BonusPerWave*int64(ctx.Wave) - int64(cfg.BonusDecayPerSecond*ctx.Elapsed)
	if b < 0 {
		return 0
	}
	return b
}

// NextDifficulty returns the multiplier for wave. It never drops below prev.
func NextDifficulty(cfg config.WaveConfig, prev float64, wave int) float64 {
	next := 1 + cfg.DifficultyGrowth*float64(wave-1)
	if cfg.MaxDifficulty > 0 && next > cfg.MaxDifficulty {
		next = cfg.MaxDifficulty
	}
	if next < prev {
		next = prev
	}
	return next
}
