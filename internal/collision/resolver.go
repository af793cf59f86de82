package collision

import (
	"sort"

	"github.com/driftfield/arcade/internal/core/ecs"
	"github.com/driftfield/arcade/internal/world"
)

// Overlap is one touching pair, normalized so A < B.
type Overlap struct {
	A, B    ecs.EntityID
	Contact Contact
}

// Hit is a projectile striking a target.
type Hit struct {
	Projectile ecs.EntityID
	Target     ecs.EntityID
	Contact    Contact
}

// Interacts is the pair filter. It is symmetric: projectiles never hit their
// owner or each other, player fire hits rocks and enemies, hostile fire hits
// only the ship, and among solid bodies only the ship collides. Pickups are
// solid, so only the ship ever touches one.
func Interacts(a, b Body) bool {
	if a.ID == b.ID || a.Owner == b.ID || b.Owner == a.ID {
		return false
	}
	pa, pb := a.Kind == world.KindProjectile, b.Kind == world.KindProjectile
	switch {
	case pa && pb:
		return false
	case pa:
		return projectileHits(a, b)
	case pb:
		return projectileHits(b, a)
	}
	return (a.Kind == world.KindShip) != (b.Kind == world.KindShip)
}

func projectileHits(p, t Body) bool {
	switch p.Faction {
	case world.FactionPlayer:
		return t.Kind == world.KindAsteroid || t.Kind == world.KindEnemy
	case world.FactionHostile:
		return t.Kind == world.KindShip
	}
	return false
}

// Resolver runs the pairwise scan. It keeps scratch space between ticks and
// must not be shared between goroutines.
type Resolver struct {
	sorted []Body
}

func NewResolver() *Resolver {
	return &Resolver{sorted: make([]Body, 0, 128)}
}

// FindOverlaps returns every interacting overlapping pair sorted by (A, B).
// The result does not depend on the order of bodies.
func (r *Resolver) FindOverlaps(bodies []Body) []Overlap {
	r.sorted = append(r.sorted[:0], bodies...)
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i].ID < r.sorted[j].ID })

	var out []Overlap
	for i := 0; i < len(r.sorted); i++ {
		for j := i + 1; j < len(r.sorted); j++ {
			a, b := r.sorted[i], r.sorted[j]
			if !Interacts(a, b) {
				continue
			}
			if c, ok := Test(a, b); ok {
				out = append(out, Overlap{A: a.ID, B: b.ID, Contact: c})
			}
		}
	}
	return out
}

// SelectHits splits overlaps into projectile hits and solid contacts. A
// non-piercing projectile keeps only its nearest target (lower id on ties);
// a piercing one keeps every target once. Hits are ordered by projectile id
// then target id.
func SelectHits(bodies []Body, overlaps []Overlap) (hits []Hit, contacts []Overlap) {
	byID := make(map[ecs.EntityID]*Body, len(bodies))
	for i := range bodies {
		byID[bodies[i].ID] = &bodies[i]
	}
	nearest := make(map[ecs.EntityID]int) // projectile -> index into hits
	for _, o := range overlaps {
		a, b := byID[o.A], byID[o.B]
		if a == nil || b == nil {
			continue
		}
		var proj, target *Body
		switch {
		case a.Kind == world.KindProjectile:
			proj, target = a, b
		case b.Kind == world.KindProjectile:
			proj, target = b, a
		default:
			contacts = append(contacts, o)
			continue
		}
		h := Hit{Projectile: proj.ID, Target: target.ID, Contact: o.Contact}
		if proj.Piercing {
			hits = append(hits, h)
			continue
		}
		idx, seen := nearest[proj.ID]
		if !seen {
			nearest[proj.ID] = len(hits)
			hits = append(hits, h)
			continue
		}
		cur := hits[idx]
		if h.Contact.Distance < cur.Contact.Distance ||
			(h.Contact.Distance == cur.Contact.Distance && h.Target < cur.Target) {
			hits[idx] = h
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Projectile != hits[j].Projectile {
			return hits[i].Projectile < hits[j].Projectile
		}
		return hits[i].Target < hits[j].Target
	})
	return hits, contacts
}
