package entity

import (
	"fmt"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/prefabs"
)

// builder adds components to one entity and keeps the first error, so the
// per-prefab constructors read as a flat list of components.
type builder struct {
	w   *ecs.World
	e   ecs.Entity
	err error
}

func newBuilder(w *ecs.World) *builder {
	return &builder{w: w, e: ecs.CreateEntity(w)}
}

func add[T any](b *builder, h component.ComponentHandle[T], v *T) {
	if b.err != nil {
		return
	}
	if err := ecs.Add(b.w, b.e, h.Kind(), v); err != nil {
		b.err = fmt.Errorf("entity: add %s: %w", h.Kind().Name(), err)
	}
}

// done destroys the half-built entity on error.
func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		ecs.DestroyEntity(b.w, b.e)
		return 0, b.err
	}
	return b.e, nil
}

func (b *builder) transform(x, y float64) {
	add(b, component.TransformComponent, &component.Transform{X: x, Y: y, Z: y})
}

func (b *builder) sprite(bundle *prefabs.Bundle, spec prefabs.SpriteSpec) {
	sheet, ok := bundle.Sheet(spec.Sheet)
	if !ok && b.err == nil {
		b.err = fmt.Errorf("entity: sprite sheet %q not defined", spec.Sheet)
		return
	}
	add(b, component.SpriteComponent, &component.Sprite{
		Sheet:   spec.Sheet,
		Cols:    sheet.Cols,
		Rows:    sheet.Rows,
		Index:   spec.Index,
		OriginX: spec.OriginX,
		OriginY: spec.OriginY,
	})
}

func (b *builder) collider(spec prefabs.ColliderSpec, static bool) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return
	}
	add(b, component.PhysicsBodyComponent, &component.PhysicsBody{
		Width:     spec.Width,
		Height:    spec.Height,
		OffsetY:   spec.OffsetY,
		SensorPad: spec.SensorPad,
		Solid:     spec.Solid,
		Static:    static,
	})
}

func (b *builder) layer(spec prefabs.RenderLayerSpec) {
	add(b, component.RenderLayerComponent, &component.RenderLayer{Index: spec.Index})
}

func (b *builder) perspective(spec prefabs.PerspectiveSpec) {
	if spec.Height <= 0 && spec.Depth <= 0 {
		return
	}
	add(b, component.PerspectiveComponent, &component.Perspective{Height: spec.Height, Depth: spec.Depth})
}

// SetEntityTransform moves an entity's feet to (x, y).
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("entity: %s has no transform", e)
	}
	t.X, t.Y, t.Z = x, y, y
	return nil
}
