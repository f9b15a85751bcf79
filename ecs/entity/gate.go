package entity

import (
	"fmt"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/prefabs"
)

func NewGateAt(w *ecs.World, bundle *prefabs.Bundle, x, y float64) (ecs.Entity, error) {
	spec := bundle.Gate
	b := newBuilder(w)
	add(b, component.GateComponent, &component.Gate{OpenClip: spec.OpenClip, CloseClip: spec.CloseClip})
	add(b, component.GateRuntimeComponent, &component.GateRuntime{})
	add(b, component.AnimationComponent, &component.Animation{Set: spec.Clips})
	b.transform(x, y)
	b.sprite(bundle, spec.Sprite)
	b.collider(spec.Collider, true)
	b.layer(spec.RenderLayer)
	b.perspective(spec.Perspective)

	e, err := b.done()
	if err != nil {
		return 0, fmt.Errorf("gate: %w", err)
	}
	return e, nil
}
