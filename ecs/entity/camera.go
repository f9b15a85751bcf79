package entity

import (
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/prefabs"
)

// NewCamera creates the camera that views a screen of viewW x viewH pixels.
func NewCamera(w *ecs.World, spec prefabs.CameraSpec, viewW, viewH float64) (ecs.Entity, error) {
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	b := newBuilder(w)
	add(b, component.CameraTagComponent, &component.CameraTag{})
	add(b, component.CameraComponent, &component.Camera{
		TargetName: spec.Target,
		Zoom:       zoom,
		Smoothness: spec.Smoothness,
		ViewWidth:  viewW,
		ViewHeight: viewH,
	})
	add(b, component.TransformComponent, &component.Transform{})
	return b.done()
}
