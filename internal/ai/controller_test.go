package ai

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/data"
	"github.com/driftfield/arcade/internal/geom"
	"github.com/driftfield/arcade/internal/world"
)

const testPhases = `
phases:
  - {name: approach, threshold: 1.0, movement: approach, speed: 60, attack: single, cooldown: 1.5, projectile_speed: 250}
  - {name: fury, threshold: 0.5, movement: orbit, speed: 110, range: 200, attack: spread, shots: 5, spread: 17, cooldown: 1.2, projectile_speed: 280}
  - {name: storm, threshold: 0.25, movement: strafe, speed: 140, range: 200, attack: spiral, shots: 8, spread: 15, cooldown: 0.8, projectile_speed: 300}
`

const dt = 1.0 / 60

type fixture struct {
	cfg     *config.Config
	bus     *event.Bus
	reg     *world.Registry
	factory *world.Factory
	ctrl    *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	phases, err := data.ParseBossPhaseTable([]byte(testPhases))
	if err != nil {
		t.Fatalf("phases: %v", err)
	}
	cfg := config.Defaults()
	bus := event.NewBus()
	reg := world.NewRegistry(0, bus, zap.NewNop())
	f := world.NewFactory(cfg, reg)
	return &fixture{cfg: cfg, bus: bus, reg: reg, factory: f, ctrl: NewController(cfg, phases, f, bus, zap.NewNop())}
}

// step runs one AI tick plus a plain motion integration.
func (f *fixture) step(s Situation) {
	f.reg.BeginTick()
	f.ctrl.Update(dt, s)
	f.reg.ForEachAlive(world.MaskEnemy, func(e *world.Entity) {
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	})
}

func (f *fixture) drain() []any {
	f.bus.SwapBuffers()
	return append([]any(nil), f.bus.Front()...)
}

func player(x, y float64) Situation {
	return Situation{Target: Target{Present: true, Pos: geom.V(x, y)}, Difficulty: 1}
}

func TestSeekingHunterConvergesOnStationaryPlayer(t *testing.T) {
	f := newFixture(t)
	id, _ := f.factory.Hunter(geom.V(0, 0), math.Pi, 1)
	s := player(1000, 400)
	for i := 0; i < 150; i++ {
		f.step(s)
	}
	e := f.reg.Get(id)
	if e.Enemy.State != world.StateSeeking {
		t.Fatalf("hunter left seeking: %v", e.Enemy.State)
	}
	want := s.Target.Pos.Sub(e.Pos).Angle()
	if d := geom.AngleDiff(e.Rotation, want); math.Abs(d) > 1e-4 {
		t.Fatalf("heading off the player by %v rad", d)
	}
	if d := geom.AngleDiff(e.Vel.Angle(), want); math.Abs(d) > 1e-3 {
		t.Fatalf("velocity off the player by %v rad", d)
	}
}

func TestSeekingLeadsMovingPlayer(t *testing.T) {
	f := newFixture(t)
	id, _ := f.factory.Hunter(geom.V(0, 0), 0, 1)
	s := player(1000, 0)
	s.Target.Vel = geom.V(0, 200)
	for i := 0; i < 200; i++ {
		f.step(s)
	}
	e := f.reg.Get(id)
	lead := Predict(s.Target.Pos, s.Target.Vel, f.cfg.Hunter.LeadTime.Seconds())
	if d := geom.AngleDiff(e.Rotation, lead.Sub(e.Pos).Angle()); math.Abs(d) > 1e-3 {
		t.Fatalf("hunter not steering at the lead point, off by %v", d)
	}
}

func TestHunterEvadesWhenHurtThenReturns(t *testing.T) {
	f := newFixture(t)
	id, _ := f.factory.Hunter(geom.V(0, 0), 0, 1)
	s := player(200, 0)
	f.step(s)
	e := f.reg.Get(id)
	if e.Enemy.State != world.StateAttacking {
		t.Fatalf("expected attacking inside firing range, got %v", e.Enemy.State)
	}
	if ApplyDamage(e, 1) {
		t.Fatal("non-lethal hit reported as kill")
	}
	f.step(s)
	if e.Enemy.State != world.StateAttacking {
		t.Fatal("hit above the evade threshold must not trigger evading")
	}
	ApplyDamage(e, 1)
	f.step(s)
	if e.Enemy.State != world.StateEvading {
		t.Fatalf("expected evading after dropping below threshold, got %v", e.Enemy.State)
	}
	ticks := int(math.Ceil(f.cfg.Hunter.EvadeDuration.Seconds()/dt)) + 1
	for i := 0; i < ticks && e.Enemy.State == world.StateEvading; i++ {
		f.step(s)
	}
	if e.Enemy.State == world.StateEvading {
		t.Fatal("hunter never left evading")
	}
}

func TestHunterHurtWhileSeekingEvadesOnceInRange(t *testing.T) {
	f := newFixture(t)
	id, _ := f.factory.Hunter(geom.V(0, 0), 0, 1)
	far := player(1200, 0)
	f.step(far)
	e := f.reg.Get(id)
	ApplyDamage(e, 2)
	for i := 0; i < 10; i++ {
		f.step(far)
	}
	if e.Enemy.State != world.StateSeeking {
		t.Fatalf("expected seeking out of range, got %v", e.Enemy.State)
	}

	// Keep the player 200 units ahead of the hunter, inside firing range.
	var seen []world.BehaviorState
	for i := 0; i < 10 && e.Enemy.State != world.StateEvading; i++ {
		f.step(player(e.Pos.X+200, e.Pos.Y))
		seen = append(seen, e.Enemy.State)
	}
	if e.Enemy.State != world.StateEvading {
		t.Fatalf("hunter at %.0f%% health never evaded: %v", 100*e.Enemy.HealthFraction(), seen)
	}
}

func TestHunterEvadesNearbyBomb(t *testing.T) {
	f := newFixture(t)
	id, _ := f.factory.Hunter(geom.V(0, 0), 0, 1)
	s := player(200, 0)
	f.step(s)
	s.Bombs = []geom.Vec2{geom.V(50, 0)}
	f.step(s)
	if got := f.reg.Get(id).Enemy.State; got != world.StateEvading {
		t.Fatalf("expected evading next to a bomb, got %v", got)
	}
}

func TestNoPlayerFallsBackToIdle(t *testing.T) {
	f := newFixture(t)
	f.factory.Hunter(geom.V(0, 0), 0, 1)
	f.factory.Boss(geom.V(500, 0), 0, 1, "approach")
	for i := 0; i < 120; i++ {
		f.step(Situation{Difficulty: 1})
	}
	if n := f.reg.Count(world.KindProjectile); n != 0 {
		t.Fatalf("enemies fired %d shots with no target", n)
	}
	for _, e := range f.reg.Alive(world.MaskEnemy) {
		if e.Enemy.State != world.StateSeeking {
			t.Fatalf("idle enemy changed state to %v", e.Enemy.State)
		}
	}
}

func TestBossPhaseChangesOnceUnderSimultaneousHits(t *testing.T) {
	f := newFixture(t)
	id, _ := f.factory.Boss(geom.V(0, 0), 0, 1, "approach")
	s := player(400, 0)
	f.step(s)
	f.drain()

	boss := f.reg.Get(id)
	// Three projectiles land in the same tick and together cross 50%.
	for _, dmg := range []float64{8, 7, 6} {
		ApplyDamage(boss, dmg)
	}
	f.step(s)
	f.step(s)

	var changes []world.BossPhaseChanged
	for _, ev := range f.drain() {
		if pc, ok := ev.(world.BossPhaseChanged); ok {
			changes = append(changes, pc)
		}
	}
	if len(changes) != 1 {
		t.Fatalf("expected exactly one phase change, got %d", len(changes))
	}
	if changes[0].From != 0 || changes[0].To != 1 || changes[0].Name != "fury" {
		t.Fatalf("unexpected change %+v", changes[0])
	}
	if boss.Enemy.PhaseTime > 2*dt {
		t.Fatalf("phase timer not reset on entry: %v", boss.Enemy.PhaseTime)
	}
}

func TestBossSkipsToDeepestCrossedPhase(t *testing.T) {
	f := newFixture(t)
	id, _ := f.factory.Boss(geom.V(0, 0), 0, 1, "approach")
	f.step(player(400, 0))
	f.drain()
	boss := f.reg.Get(id)
	ApplyDamage(boss, boss.Enemy.MaxHP*0.8)
	f.step(player(400, 0))
	var changes []world.BossPhaseChanged
	for _, ev := range f.drain() {
		if pc, ok := ev.(world.BossPhaseChanged); ok {
			changes = append(changes, pc)
		}
	}
	if len(changes) != 1 || changes[0].To != 2 {
		t.Fatalf("expected one jump to the last phase, got %+v", changes)
	}

	if !ApplyDamage(boss, boss.Enemy.MaxHP) {
		t.Fatal("lethal hit not reported")
	}
	if ApplyDamage(boss, 1) {
		t.Fatal("dead boss took damage")
	}
	if boss.Enemy.State != world.StateDeadPending || boss.Enemy.HP != 0 {
		t.Fatalf("boss not terminal: %+v", boss.Enemy)
	}
}

func TestPlanVolleyPatterns(t *testing.T) {
	spread := PlanVolley(VolleyRequest{Pattern: data.AttackSpread, Shots: 5, Spread: 0.3, Base: 1})
	if len(spread) != 5 || math.Abs(spread[2]-1) > 1e-12 || math.Abs(spread[0]-0.4) > 1e-12 {
		t.Fatalf("spread angles %v", spread)
	}
	ring := PlanVolley(VolleyRequest{Pattern: data.AttackRing, Shots: 8, Base: 0})
	if len(ring) != 8 || math.Abs(ring[4]-math.Pi) > 1e-12 {
		t.Fatalf("ring angles %v", ring)
	}
	spiral := PlanVolley(VolleyRequest{Pattern: data.AttackSpiral, Shots: 4, Spread: 0.1, Volley: 3})
	if math.Abs(spiral[0]-0.3) > 1e-12 {
		t.Fatalf("spiral start %v", spiral[0])
	}
	single := PlanVolley(VolleyRequest{Pattern: data.AttackSingle, Base: 2})
	if len(single) != 1 || single[0] != 2 {
		t.Fatalf("single %v", single)
	}
}

func TestInterceptPointMeetsTarget(t *testing.T) {
	shooter := geom.V(0, 0)
	target, vel := geom.V(300, 0), geom.V(0, 80)
	speed := 350.0
	aim := InterceptPoint(shooter, target, vel, speed)
	shotTime := aim.Len() / speed
	targetTime := aim.Sub(target).Len() / vel.Len()
	if math.Abs(shotTime-targetTime) > 0.01 {
		t.Fatalf("shot arrives at %v, target at %v", shotTime, targetTime)
	}
	if got := InterceptPoint(shooter, target, geom.Vec2{}, speed); got != target {
		t.Fatalf("stationary target aimed at %v", got)
	}
}
