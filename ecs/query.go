package ecs

import "github.com/milk9111/rustyfarm/ecs/component"

// The ForEach family iterates the first kind's dense array and probes the
// rest. Callbacks may add or remove components of other kinds; removing from
// the driving kind during iteration skips at most the moved entry.

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, ka, false)
	if sa == nil || fn == nil {
		return
	}
	for _, e := range snapshot(sa.dense) {
		a, ok := sa.get(e)
		if !ok || !w.entities.isAlive(e) {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka, false), storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range snapshot(sa.dense) {
		if !w.entities.isAlive(e) {
			continue
		}
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ka, false), storeFor(w, kb, false), storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, e := range snapshot(sa.dense) {
		if !w.entities.isAlive(e) {
			continue
		}
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		c, ok := sc.get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sd := storeFor(w, kd, false)
	if sd == nil || fn == nil {
		return
	}
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		d, ok := sd.get(e)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}

func snapshot(ents []Entity) []Entity {
	if len(ents) == 0 {
		return nil
	}
	return append([]Entity(nil), ents...)
}
