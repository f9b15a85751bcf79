package system

import (
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// PerspectiveSystem sets the draw depth of every entity with a Perspective
// from its feet, so entities lower on screen draw in front.
type PerspectiveSystem struct{}

func NewPerspectiveSystem() *PerspectiveSystem {
	return &PerspectiveSystem{}
}

func (ps *PerspectiveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.PerspectiveComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Perspective, t *component.Transform) {
		t.Z = t.Y - p.Depth/2
	})
}
