package ecs

// entityStore tracks slot generations and the free list. Slot 0 is never
// handed out so the zero Entity stays invalid.
type entityStore struct {
	gens  []generation
	alive []bool
	free  []entityID
	count int
}

func (s *entityStore) create() Entity {
	if len(s.gens) == 0 {
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
	}
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		id = entityID(len(s.gens))
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
	}
	s.alive[id] = true
	s.count++
	return makeEntity(id, s.gens[id])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.alive[id] = false
	s.gens[id]++
	s.free = append(s.free, id)
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(s.gens) {
		return false
	}
	return s.alive[id] && s.gens[id] == e.generation()
}

func (s *entityStore) each(fn func(Entity)) {
	for i := 1; i < len(s.gens); i++ {
		if s.alive[i] {
			fn(makeEntity(entityID(i), s.gens[i]))
		}
	}
}

// storage is the type-erased view the world keeps of every component store.
type storage interface {
	remove(e Entity) bool
	has(e Entity) bool
	len() int
}

// sparseStore is a sparse set of *T keyed by slot index. The dense arrays keep
// iteration cache friendly; the full handle is stored so a stale generation
// never reads a recycled slot's data.
type sparseStore[T any] struct {
	sparse []int32
	dense  []Entity
	values []*T
}

func newSparseStore[T any]() *sparseStore[T] {
	return &sparseStore[T]{}
}

func (s *sparseStore[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id]
	if idx < 0 || int(idx) >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return int(idx), true
}

func (s *sparseStore[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for id >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if old := s.sparse[id]; old >= 0 && int(old) < len(s.dense) && s.dense[old].id() == e.id() {
		// stale generation still occupying the slot
		s.dense[old] = e
		s.values[old] = v
		return
	}
	s.sparse[id] = int32(len(s.dense))
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
}

func (s *sparseStore[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseStore[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseStore[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()] = int32(idx)

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[e.id()] = -1
	return true
}

func (s *sparseStore[T]) len() int {
	return len(s.dense)
}
