package system

import (
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// AnimationSystem is the per-tick driver of the clip registry. It must run
// before every system that emits animation events.
type AnimationSystem struct {
	registry *animation.Registry
	events   *animation.Events
	dt       float64
}

func NewAnimationSystem(registry *animation.Registry, events *animation.Events, dt float64) *AnimationSystem {
	return &AnimationSystem{registry: registry, events: events, dt: dt}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	a.registry.Prune(func(e ecs.Entity) bool { return ecs.IsAlive(w, e) })
	a.registry.Apply(a.events.Drain())

	pose := func(e ecs.Entity) animation.Pose {
		f, ok := ecs.Get(w, e, component.FacingComponent.Kind())
		if !ok {
			return animation.Pose{Facing: animation.Down}
		}
		return animation.Pose{Facing: f.Dir, Moving: f.Moving}
	}

	for _, out := range a.registry.Tick(a.dt, pose) {
		sprite, ok := ecs.Get(w, out.Entity, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		sprite.Sheet = out.Sheet
		sprite.Cols = out.Grid.Cols
		sprite.Rows = out.Grid.Rows
		sprite.Index = out.Index
		sprite.FlipX = out.FlipX
	}
}
