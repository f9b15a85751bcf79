package ecs

import (
	"fmt"

	"github.com/milk9111/rustyfarm/ecs/component"
)

var (
	ErrEntityNotAlive       = component.ErrEntityNotAlive
	ErrNilComponent         = component.ErrNilComponent
	ErrInvalidComponentKind = component.ErrInvalidComponentKind
)

// Kind is the untyped view of a component kind.
type Kind interface {
	ID() component.ComponentID
	Name() string
}

// World owns entities and their component storages.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]storage
	names    map[component.ComponentID]string
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]storage),
		names:  make(map[component.ComponentID]string),
	}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity detaches every component and frees the slot. It reports false
// for a handle that is not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Count returns the number of live entities.
func Count(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseStore[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		st := newSparseStore[T]()
		w.stores[kind.ID()] = st
		w.names[kind.ID()] = kind.Name()
		return st
	}
	typed, ok := s.(*sparseStore[T])
	if !ok {
		return nil
	}
	return typed
}

// Add attaches or replaces the component of the given kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("ecs: add %s to %s: %w", kind.Name(), e, ErrNilComponent)
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("ecs: add %s to %s: %w", kind.Name(), e, ErrEntityNotAlive)
	}
	s := storeFor(w, kind, true)
	if s == nil {
		return ErrInvalidComponentKind
	}
	s.set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	return s != nil && s.has(e)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

// First returns the first live entity carrying the kind.
func (w *World) First(kind Kind) (Entity, bool) {
	if w == nil || kind == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	var found Entity
	w.entities.each(func(e Entity) {
		if found == 0 && s.has(e) {
			found = e
		}
	})
	return found, found != 0
}

// ComponentCounts reports the number of attached components per kind name.
func (w *World) ComponentCounts() map[string]int {
	if w == nil {
		return nil
	}
	out := make(map[string]int, len(w.stores))
	for id, s := range w.stores {
		out[w.names[id]] += s.len()
	}
	return out
}
