package event

import "testing"

type pinged struct{ n int }
type ponged struct{ s string }

func TestBusDeliversInEmissionOrderAfterSwap(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(e pinged) { order = append(order, "ping") })
	Subscribe(b, func(e ponged) { order = append(order, "pong:"+e.s) })

	Emit(b, pinged{n: 1})
	Emit(b, ponged{s: "a"})
	Emit(b, pinged{n: 2})

	b.DispatchAll()
	if len(order) != 0 {
		t.Fatalf("events delivered before swap: %v", order)
	}

	b.SwapBuffers()
	if len(b.Front()) != 3 {
		t.Fatalf("expected 3 front events, got %d", len(b.Front()))
	}
	b.DispatchAll()
	want := []string{"ping", "pong:a", "ping"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestBusHandlerEmitsGoToNextTick(t *testing.T) {
	b := NewBus()
	Subscribe(b, func(e pinged) {
		if e.n < 3 {
			Emit(b, pinged{n: e.n + 1})
		}
	})
	Emit(b, pinged{n: 1})
	b.SwapBuffers()
	b.DispatchAll()
	if b.Pending() != 1 {
		t.Fatalf("expected handler emission queued for next tick, got %d", b.Pending())
	}
	b.SwapBuffers()
	if got := b.Front()[0].(pinged).n; got != 2 {
		t.Fatalf("expected follow-up event n=2, got %d", got)
	}
}
