package ecs

type slotState uint8

const (
	slotFree    slotState = iota
	slotPending           // created this tick, visible from the next Commit
	slotActive
	slotDead // marked dead, slot released on the next Commit
)

// World is the top-level ECS container. It owns the entity pool, the attached
// component stores, a pending-create list and a deferred release queue. Both lists are
// applied by Commit at the start of each tick, so nothing iterating during a
// tick ever sees a slot change owner.
type World struct {
	pool         *EntityPool
	stores       Stores
	states       []slotState
	pending      []EntityID
	destroyQueue []EntityID
	capacity     int
	live         int // pending + active
}

// NewWorld creates a world holding at most capacity live entities
// (pending + active). capacity <= 0 means unbounded.
func NewWorld(capacity int) *World {
	return &World{
		pool:         NewEntityPool(),
		states:       make([]slotState, 0, 256),
		pending:      make([]EntityID, 0, 32),
		destroyQueue: make([]EntityID, 0, 64),
		capacity:     capacity,
	}
}

func (w *World) Pool() *EntityPool { return w.pool }
func (w *World) Capacity() int     { return w.capacity }

// Attach registers a component store to be cleared as slots are released.
func (w *World) Attach(store Removable) { w.stores.Attach(store) }

// Live returns the number of pending plus active entities.
func (w *World) Live() int { return w.live }

// Spawn reserves a slot for a new entity. The entity stays pending until the
// next Commit. Returns false when the world is at capacity.
func (w *World) Spawn() (EntityID, bool) {
	if w.capacity > 0 && w.live >= w.capacity {
		return 0, false
	}
	id := w.pool.Create()
	idx := int(id.Index())
	for len(w.states) <= idx {
		w.states = append(w.states, slotFree)
	}
	w.states[idx] = slotPending
	w.pending = append(w.pending, id)
	w.live++
	return id, true
}

func (w *World) state(id EntityID) slotState {
	if !w.pool.Alive(id) {
		return slotFree
	}
	return w.states[id.Index()]
}

// Active reports whether id names a committed, not yet killed entity.
func (w *World) Active(id EntityID) bool { return w.state(id) == slotActive }

// Pending reports whether id was spawned and not yet committed.
func (w *World) Pending(id EntityID) bool { return w.state(id) == slotPending }

// Kill marks an entity dead immediately and queues its slot for release at
// the next Commit. Killing an unknown, stale or already dead id is a no-op.
func (w *World) Kill(id EntityID) bool {
	switch w.state(id) {
	case slotActive, slotPending:
		w.states[id.Index()] = slotDead
		w.destroyQueue = append(w.destroyQueue, id)
		w.live--
		return true
	}
	return false
}

// Commit releases every slot killed since the last Commit, clearing their
// components, then promotes pending entities in creation order. Returns the
// number of promoted entities.
func (w *World) Commit() int {
	for _, id := range w.destroyQueue {
		w.stores.Release(id)
		w.states[id.Index()] = slotFree
		w.pool.Destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]

	promoted := 0
	for _, id := range w.pending {
		if w.state(id) != slotPending {
			continue // killed before it became visible
		}
		w.states[id.Index()] = slotActive
		promoted++
	}
	w.pending = w.pending[:0]
	return promoted
}

// Each visits active entities in slot index order. Entities killed during the
// walk are skipped once reached; entities spawned during it stay pending.
func (w *World) Each(fn func(EntityID)) {
	n := len(w.states)
	for idx := 0; idx < n; idx++ {
		if w.states[idx] != slotActive {
			continue
		}
		fn(w.pool.current(uint32(idx)))
	}
}
