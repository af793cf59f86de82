// Package sim assembles the registry, systems and director into a
// fixed-step engine that one collaborator drives tick by tick.
package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/ai"
	"github.com/driftfield/arcade/internal/collision"
	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/core/event"
	coresys "github.com/driftfield/arcade/internal/core/system"
	"github.com/driftfield/arcade/internal/data"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/split"
	"github.com/driftfield/arcade/internal/system"
	"github.com/driftfield/arcade/internal/wave"
	"github.com/driftfield/arcade/internal/world"
)

// Tables are the data tables the engine reads.
type Tables struct {
	Materials *data.MaterialTable
	Phases    *data.BossPhaseTable
}

type options struct {
	log     *zap.Logger
	seed    uint64
	planner ai.VolleyPlanner
	bonus   wave.BonusScorer
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithSeed fixes the random source. Zero derives a seed from the clock.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

func WithVolleyPlanner(p ai.VolleyPlanner) Option {
	return func(o *options) { o.planner = p }
}

func WithBonusScorer(b wave.BonusScorer) Option {
	return func(o *options) { o.bonus = b }
}

// Engine owns one run. Tick must be called from a single goroutine;
// Latest may be read from any goroutine.
type Engine struct {
	cfg      *config.Config
	log      *zap.Logger
	seed     uint64
	bus      *event.Bus
	reg      *world.Registry
	factory  *world.Factory
	session  *world.Session
	director *wave.Director
	wells    []world.GravityWell
	runner   *coresys.Runner

	intent world.Intent
	latest atomic.Pointer[Frame]
}

func New(cfg *config.Config, tables Tables, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("sim: nil config")
	}
	if tables.Materials == nil || tables.Phases == nil {
		return nil, errors.New("sim: material and boss phase tables are required")
	}
	o := options{log: zap.NewNop(), seed: cfg.Simulation.Seed}
	for _, opt := range opts {
		opt(&o)
	}
	if o.seed == 0 {
		o.seed = uint64(time.Now().UnixNano())
	}

	e := &Engine{cfg: cfg, log: o.log, seed: o.seed}
	e.bus = event.NewBus()
	e.reg = world.NewRegistry(cfg.Simulation.MaxEntities, e.bus, o.log)
	e.factory = world.NewFactory(cfg, e.reg)
	e.session = world.NewSession(cfg.Ship.Lives)

	center := geom.V(cfg.Simulation.Width/2, cfg.Simulation.Height/2)
	shipID, ok := e.factory.Ship(center, e.session.Mult)
	if !ok {
		return nil, fmt.Errorf("sim: no room for the ship (max_entities=%d)", cfg.Simulation.MaxEntities)
	}
	e.session.ShipID = shipID

	e.director = wave.NewDirector(cfg, e.factory, tables.Materials, tables.Phases, e.bus,
		rand.New(rand.NewPCG(o.seed, 1)), o.log)
	if o.bonus != nil {
		e.director.SetBonusScorer(o.bonus)
	}
	e.wells = world.PlaceWells(cfg.Gravity, cfg.Simulation.Width, cfg.Simulation.Height,
		rand.New(rand.NewPCG(o.seed, 4)))
	ctrl := ai.NewController(cfg, tables.Phases, e.factory, e.bus, o.log)
	if o.planner != nil {
		ctrl.SetPlanner(o.planner)
	}

	deps := &system.Deps{
		Config:   cfg,
		Log:      o.log,
		Bus:      e.bus,
		Registry: e.reg,
		Factory:  e.factory,
		Session:  e.session,
		Director: e.director,
		AI:       ctrl,
		Split:    split.NewPolicy(cfg.Asteroids, tables.Materials, rand.New(rand.NewPCG(o.seed, 2))),
		Resolver: collision.NewResolver(),
		Loot:     rand.New(rand.NewPCG(o.seed, 3)),
		Wells:    e.wells,
	}
	e.runner = coresys.NewRunner()
	e.runner.Register(system.NewCommitSystem(e.reg))
	e.runner.Register(system.NewInputSystem(deps, func() world.Intent { return e.intent }))
	e.runner.Register(system.NewAISystem(deps))
	e.runner.Register(system.NewMotionSystem(deps))
	e.runner.Register(system.NewCollisionSystem(deps))
	e.runner.Register(system.NewDirectorSystem(deps))
	e.runner.Register(system.NewOutputSystem(e.bus, e.publish))

	o.log.Debug("engine ready",
		zap.Uint64("seed", o.seed),
		zap.Int("max_entities", cfg.Simulation.MaxEntities),
		zap.Int("systems", e.runner.Len()),
		zap.Int("gravity_wells", len(e.wells)),
	)
	return e, nil
}

// Tick advances the simulation by dt with the given intent and returns the
// resulting frame. Steps longer than max_step are clamped. Once the game is
// over Tick no longer advances and returns the final frame.
func (e *Engine) Tick(dt time.Duration, in world.Intent) *Frame {
	if e.session.Over || dt <= 0 {
		return e.latest.Load()
	}
	if limit := e.cfg.Simulation.MaxStep; limit > 0 && dt > limit {
		dt = limit
	}
	e.intent = in
	e.runner.Tick(dt)
	return e.latest.Load()
}

// Latest returns the last published frame, or nil before the first tick.
func (e *Engine) Latest() *Frame { return e.latest.Load() }

func (e *Engine) Bus() *event.Bus { return e.bus }

func (e *Engine) Registry() *world.Registry { return e.reg }

func (e *Engine) Factory() *world.Factory { return e.factory }

func (e *Engine) Seed() uint64 { return e.seed }

func (e *Engine) Over() bool { return e.session.Over }

// PlayTime returns the seconds played so far. Like Tick it belongs to the
// game loop goroutine; event handlers may call it.
func (e *Engine) PlayTime() float64 { return e.session.Stats.PlayTime }

func (e *Engine) publish() {
	s := e.session
	f := &Frame{
		Tick:      e.reg.Tick(),
		Entities:  e.reg.Snapshot(),
		Events:    append([]any(nil), e.bus.Front()...),
		Wave:      e.director.State(),
		Lives:     s.Lives,
		Weapon:    s.Weapon,
		Mult:      s.Mult,
		Resources: s.Resources,
		Stats:     s.Stats,
		Wells:     e.wells,
		Over:      s.Over,
	}
	e.latest.Store(f)
}
