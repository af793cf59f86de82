package ecs

// Removable is implemented by all component stores so a World can drop an
// entity's data from every store on release.
type Removable interface {
	Remove(id EntityID)
}

// SlotStore is a dense, index-addressed component store. Iteration follows
// slot index order so a tick visits entities in the same order every run.
type SlotStore[T any] struct {
	data []*T
	ids  []EntityID
	n    int
}

func NewSlotStore[T any]() *SlotStore[T] {
	return &SlotStore[T]{
		data: make([]*T, 0, 256),
		ids:  make([]EntityID, 0, 256),
	}
}

func (s *SlotStore[T]) grow(idx int) {
	for len(s.data) <= idx {
		s.data = append(s.data, nil)
		s.ids = append(s.ids, 0)
	}
}

func (s *SlotStore[T]) Set(id EntityID, c *T) {
	idx := int(id.Index())
	s.grow(idx)
	if s.data[idx] == nil {
		s.n++
	}
	s.data[idx] = c
	s.ids[idx] = id
}

// Get returns the component only when id matches the slot's current owner.
func (s *SlotStore[T]) Get(id EntityID) (*T, bool) {
	idx := int(id.Index())
	if idx >= len(s.data) || s.ids[idx] != id || s.data[idx] == nil {
		return nil, false
	}
	return s.data[idx], true
}

func (s *SlotStore[T]) Remove(id EntityID) {
	idx := int(id.Index())
	if idx >= len(s.data) || s.ids[idx] != id || s.data[idx] == nil {
		return
	}
	s.data[idx] = nil
	s.ids[idx] = 0
	s.n--
}

func (s *SlotStore[T]) Has(id EntityID) bool {
	_, ok := s.Get(id)
	return ok
}

func (s *SlotStore[T]) Len() int {
	return s.n
}

func (s *SlotStore[T]) Each(fn func(EntityID, *T)) {
	for idx, c := range s.data {
		if c != nil {
			fn(s.ids[idx], c)
		}
	}
}
