package world

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/driftfield/arcade/internal/config"
	"github.com/driftfield/arcade/internal/geom"
)

func TestGravityPullFallsOffAndStopsAtRadius(t *testing.T) {
	w := GravityWell{Pos: geom.V(0, 0), Radius: 150, Strength: 200000}

	near := w.Pull(geom.V(50, 0), 1)
	far := w.Pull(geom.V(100, 0), 1)
	if near.X >= 0 || near.Y != 0 {
		t.Fatalf("pull must point at the well: %+v", near)
	}
	if want := -200000.0 / (50 * 50); math.Abs(near.X-want) > 1e-9 {
		t.Fatalf("pull at 50 = %v, want %v", near.X, want)
	}
	if math.Abs(far.X) >= math.Abs(near.X) {
		t.Fatalf("pull did not weaken with distance: near=%v far=%v", near.X, far.X)
	}
	if got := w.Pull(geom.V(150, 0), 1); !got.IsZero() {
		t.Fatalf("pull outside the radius: %+v", got)
	}
	if got := w.Pull(w.Pos, 1); !got.IsZero() {
		t.Fatalf("pull at the center: %+v", got)
	}
	if got := w.Pull(geom.V(0.5, 0), 1); math.Abs(got.X) > w.Strength+1e-9 {
		t.Fatalf("pull %v exceeds the cap %v", got.X, w.Strength)
	}
}

func TestPlaceWellsKeepsMargin(t *testing.T) {
	gc := config.GravityConfig{Wells: 20, Radius: 100, Strength: 1, Margin: 100}
	wells := PlaceWells(gc, 1280, 720, rand.New(rand.NewPCG(9, 9)))
	if len(wells) != 20 {
		t.Fatalf("placed %d wells, want 20", len(wells))
	}
	for _, w := range wells {
		if w.Pos.X < 100 || w.Pos.X > 1180 || w.Pos.Y < 100 || w.Pos.Y > 620 {
			t.Fatalf("well inside the margin: %+v", w.Pos)
		}
	}
	if PlaceWells(config.GravityConfig{}, 1280, 720, rand.New(rand.NewPCG(1, 1))) != nil {
		t.Fatal("wells placed with none configured")
	}
}

func TestPickupCreatedWithItsPayload(t *testing.T) {
	reg, _ := newTestRegistry(0)
	id, ok := reg.Create(Spec{Kind: KindPickup, Radius: 5, Pickup: &Pickup{Type: PowerUpSpread}})
	if !ok {
		t.Fatal("pickup create failed")
	}
	reg.BeginTick()
	e := reg.Get(id)
	if e == nil || e.StateTag() != "spread" {
		t.Fatalf("unexpected pickup %+v", e)
	}
	if !MaskAll.Has(KindPickup) {
		t.Fatal("pickups missing from MaskAll")
	}
}
