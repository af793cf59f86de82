package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered, ordered event bus. Events emitted during tick N
// land in the back buffer; SwapBuffers at the end of the tick moves them to
// the front, where DispatchAll delivers them in emission order and Front
// exposes them to frame consumers. Emit is called from the game loop only.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []any
	back     []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 64),
		back:     make([]any, 0, 64),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) {
		fn(ev.(T))
	})
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// Front returns the events of the last completed tick. The slice is reused
// on the next swap; callers that keep it must copy.
func (b *Bus) Front() []any {
	return b.front
}

// Pending returns the number of events emitted since the last swap.
func (b *Bus) Pending() int {
	return len(b.back)
}

// DispatchAll delivers all front-buffer events to their subscribed handlers
// in emission order. Handlers may Emit; those events go to the next tick.
func (b *Bus) DispatchAll() {
	b.mu.Lock()
	handlers := b.handlers
	b.mu.Unlock()
	for _, ev := range b.front {
		for _, h := range handlers[reflect.TypeOf(ev)] {
			h(ev)
		}
	}
}
