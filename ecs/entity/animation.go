package entity

import (
	"fmt"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/prefabs"
)

// RegisterAnimations registers the clip set of every entity that names one.
// Registering is idempotent, so this may run again after a reload.
func RegisterAnimations(w *ecs.World, reg *animation.Registry, clips *prefabs.ClipsSpec) error {
	sets := make(map[string][]prefabs.NamedClip)
	var firstErr error
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, a *component.Animation) {
		if firstErr != nil {
			return
		}
		set, ok := sets[a.Set]
		if !ok {
			var err error
			if set, err = clips.Set(a.Set); err != nil {
				firstErr = err
				return
			}
			sets[a.Set] = set
		}
		for _, nc := range set {
			if err := reg.Register(e, nc.Name, nc.Clip); err != nil {
				firstErr = err
				return
			}
		}
		if a.Idle != "" {
			if err := reg.SetIdle(e, a.Idle); err != nil {
				firstErr = fmt.Errorf("entity: %w", err)
			}
		}
	})
	return firstErr
}
