package system

import (
	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// CameraSystem moves the camera transform, the top-left corner of the view in
// world space, so the view centers on its target without leaving the level.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
	snapped      bool
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	if !cs.camEntity.Valid() || !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
		cs.targetEntity = 0
		cs.snapped = false
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if !cs.targetEntity.Valid() || !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity = findEntityByNameOrTag(w, cam.TargetName)
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW, viewH := cam.ViewWidth/zoom, cam.ViewHeight/zoom

	x := target.X - viewW/2
	y := target.Y - viewH/2
	if cs.snapped && cam.Smoothness > 0 {
		alpha := 1 - common.Clamp(cam.Smoothness, 0, 1)
		x = common.Lerp(camTransform.X, x, alpha)
		y = common.Lerp(camTransform.Y, y, alpha)
	}
	cs.snapped = true

	if be, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind()); ok && b.Width > 0 && b.Height > 0 {
			x = common.ClampSpan(x, viewW, b.Width)
			y = common.ClampSpan(y, viewH, b.Height)
		}
	}

	camTransform.X = x
	camTransform.Y = y
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	if name == "player" || name == "" {
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	var found ecs.Entity
	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, p *component.Persistent) {
		if !found.Valid() && p.ID == name {
			found = e
		}
	})
	return found
}
