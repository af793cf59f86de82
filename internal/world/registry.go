package world

import (
	"go.uber.org/zap"

	"github.com/driftfield/arcade/internal/core/ecs"
	"github.com/driftfield/arcade/internal/core/event"
	"github.com/driftfield/arcade/internal/core/invariant"
)

// Registry is the single owner of every simulated entity. Creates are
// deferred to the next BeginTick; destroys mark the entity dead at once and
// release its slot on the next BeginTick.
// Accessed only from the simulation goroutine.
type Registry struct {
	world    *ecs.World
	entities *ecs.SlotStore[Entity]
	bus      *event.Bus
	log      *zap.Logger
	tick     uint64
	capped   bool // cap warning already logged since the last successful create
}

func NewRegistry(capacity int, bus *event.Bus, log *zap.Logger) *Registry {
	r := &Registry{
		world:    ecs.NewWorld(capacity),
		entities: ecs.NewSlotStore[Entity](),
		bus:      bus,
		log:      log,
	}
	r.world.Attach(r.entities)
	return r
}

// BeginTick applies the previous tick's destroys and creates.
func (r *Registry) BeginTick() {
	r.tick++
	r.world.Commit()
}

// Tick returns the number of ticks begun so far.
func (r *Registry) Tick() uint64 { return r.tick }

func (r *Registry) Capacity() int { return r.world.Capacity() }

// Create queues a new entity. It becomes visible from the next tick on.
// When the population cap is reached the request is dropped and a
// PopulationCapped event is emitted; nothing alive is evicted.
func (r *Registry) Create(s Spec) (ecs.EntityID, bool) {
	if !invariant.Check(s.Radius > 0, "create %s with radius %v", s.Kind, s.Radius) {
		return 0, false
	}
	if !invariant.Check(s.payloadMatches(), "create %s without its payload", s.Kind) {
		return 0, false
	}
	id, ok := r.world.Spawn()
	if !ok {
		if !r.capped {
			r.log.Warn("entity cap reached, dropping spawn",
				zap.Stringer("kind", s.Kind), zap.Int("cap", r.world.Capacity()))
			r.capped = true
		}
		event.Emit(r.bus, PopulationCapped{Kind: s.Kind, Cap: r.world.Capacity()})
		return 0, false
	}
	r.capped = false

	e := &Entity{
		ID:       id,
		Kind:     s.Kind,
		Pos:      s.Pos,
		Vel:      s.Vel,
		Rotation: s.Rotation,
		Spin:     s.Spin,
		Radius:   s.Radius,
		Alive:    true,
		Born:     r.tick,
	}
	switch s.Kind {
	case KindShip:
		c := *s.Ship
		e.Ship = &c
	case KindAsteroid:
		c := *s.Asteroid
		e.Asteroid = &c
	case KindProjectile:
		c := *s.Projectile
		e.Projectile = &c
	case KindEnemy:
		c := *s.Enemy
		e.Enemy = &c
	case KindPickup:
		c := *s.Pickup
		e.Pickup = &c
	}
	r.entities.Set(id, e)
	return id, true
}

func (s *Spec) payloadMatches() bool {
	switch s.Kind {
	case KindShip:
		return s.Ship != nil
	case KindAsteroid:
		return s.Asteroid != nil
	case KindProjectile:
		return s.Projectile != nil
	case KindEnemy:
		return s.Enemy != nil
	case KindPickup:
		return s.Pickup != nil
	}
	return false
}

// Destroy marks an entity dead and emits EntityDestroyed. Unknown, stale or
// already dead ids are a no-op and return false.
func (r *Registry) Destroy(id ecs.EntityID, cause Cause) bool {
	e, ok := r.entities.Get(id)
	if !ok || !e.Alive {
		return false
	}
	if !r.world.Kill(id) {
		return false
	}
	e.Alive = false
	event.Emit(r.bus, EntityDestroyed{ID: id, Kind: e.Kind, Cause: cause})
	return true
}

// Get returns the live, committed entity for id, or nil.
func (r *Registry) Get(id ecs.EntityID) *Entity {
	if !r.world.Active(id) {
		return nil
	}
	e, _ := r.entities.Get(id)
	return e
}

// Exists reports whether id is alive, committed or still pending.
func (r *Registry) Exists(id ecs.EntityID) bool {
	e, ok := r.entities.Get(id)
	return ok && e.Alive
}

// ForEachAlive visits committed live entities of the masked kinds in slot
// order. Entities destroyed earlier in the walk are skipped; entities created
// during it are not visited.
func (r *Registry) ForEachAlive(mask KindMask, fn func(*Entity)) {
	r.world.Each(func(id ecs.EntityID) {
		e, ok := r.entities.Get(id)
		if !ok || !e.Alive || !mask.Has(e.Kind) {
			return
		}
		fn(e)
	})
}

// Alive collects the entities ForEachAlive would visit right now.
func (r *Registry) Alive(mask KindMask) []*Entity {
	var out []*Entity
	r.ForEachAlive(mask, func(e *Entity) { out = append(out, e) })
	return out
}

// Count returns live entities of kind, pending ones included.
func (r *Registry) Count(kind Kind) int {
	n := 0
	r.entities.Each(func(_ ecs.EntityID, e *Entity) {
		if e.Alive && e.Kind == kind {
			n++
		}
	})
	return n
}

// CountEnemies returns live enemies of type t, pending ones included.
func (r *Registry) CountEnemies(t EnemyType) int {
	n := 0
	r.entities.Each(func(_ ecs.EntityID, e *Entity) {
		if e.Alive && e.Kind == KindEnemy && e.Enemy.Type == t {
			n++
		}
	})
	return n
}

// Live returns the number of live entities, pending ones included.
func (r *Registry) Live() int { return r.world.Live() }
