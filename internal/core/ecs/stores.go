package ecs

// Stores is the set of component stores attached to a World. A slot's
// components are dropped from every store when Commit releases it, so a
// recycled index never carries the previous entity's payload.
type Stores struct {
	list []Removable
}

// Attach adds a store. Attaching the same store twice only repeats the
// removal.
func (s *Stores) Attach(store Removable) {
	s.list = append(s.list, store)
}

// Release drops id from every attached store.
func (s *Stores) Release(id EntityID) {
	for _, st := range s.list {
		st.Remove(id)
	}
}

func (s *Stores) Len() int { return len(s.list) }
