package system

import (
	"time"

	coresys "github.com/driftfield/arcade/internal/core/system"
	"github.com/driftfield/arcade/internal/core/event"
)

// OutputSystem publishes the tick: it swaps the event buffers, delivers
// the tick's events to subscribers and hands off a frame. Phase 6 (Output).
type OutputSystem struct {
	bus     *event.Bus
	publish func()
}

func NewOutputSystem(bus *event.Bus, publish func()) *OutputSystem {
	return &OutputSystem{bus: bus, publish: publish}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	if s.publish != nil {
		s.publish()
	}
}
