package system

import (
	"testing"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

func addCamera(t *testing.T, w *ecs.World, cam component.Camera) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.CameraTagComponent, &component.CameraTag{})
	mustAdd(t, w, e, component.CameraComponent, &cam)
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{})
	return e
}

func TestCameraFollowsAndClamps(t *testing.T) {
	tests := []struct {
		name         string
		px, py       float64
		wantX, wantY float64
	}{
		{name: "centered", px: 200, py: 150, wantX: 120, wantY: 90},
		{name: "top left corner", px: 10, py: 10, wantX: 0, wantY: 0},
		{name: "bottom right corner", px: 395, py: 295, wantX: 240, wantY: 180},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			bounds := ecs.CreateEntity(w)
			mustAdd(t, w, bounds, component.LevelBoundsComponent, &component.LevelBounds{Width: 400, Height: 300})
			cam := addCamera(t, w, component.Camera{TargetName: "player", Zoom: 2, ViewWidth: 320, ViewHeight: 240})
			addPlayer(t, w, tc.px, tc.py)

			NewCameraSystem().Update(w)

			got := transformOf(t, w, cam)
			if got.X != tc.wantX || got.Y != tc.wantY {
				t.Fatalf("expected camera at (%v, %v), got (%v, %v)", tc.wantX, tc.wantY, got.X, got.Y)
			}
		})
	}
}

func TestCameraCentersSmallLevels(t *testing.T) {
	w := ecs.NewWorld()
	bounds := ecs.CreateEntity(w)
	mustAdd(t, w, bounds, component.LevelBoundsComponent, &component.LevelBounds{Width: 100, Height: 80})
	cam := addCamera(t, w, component.Camera{Zoom: 1, ViewWidth: 200, ViewHeight: 100})
	addPlayer(t, w, 50, 40)

	NewCameraSystem().Update(w)

	got := transformOf(t, w, cam)
	if got.X != -50 || got.Y != -10 {
		t.Fatalf("expected centered view at (-50, -10), got (%v, %v)", got.X, got.Y)
	}
}

func TestCameraSmoothing(t *testing.T) {
	w := ecs.NewWorld()
	cam := addCamera(t, w, component.Camera{Zoom: 1, Smoothness: 0.5, ViewWidth: 100, ViewHeight: 100})
	player := addPlayer(t, w, 50, 50)
	cs := NewCameraSystem()

	cs.Update(w)
	if got := transformOf(t, w, cam); got.X != 0 || got.Y != 0 {
		t.Fatalf("expected first update to snap, got (%v, %v)", got.X, got.Y)
	}

	transformOf(t, w, player).X = 150
	cs.Update(w)
	if got := transformOf(t, w, cam).X; got != 50 {
		t.Fatalf("expected halfway to 100, got %v", got)
	}
}

func TestPerspectiveDepthFromFeet(t *testing.T) {
	w := ecs.NewWorld()
	front := ecs.CreateEntity(w)
	mustAdd(t, w, front, component.TransformComponent, &component.Transform{Y: 120})
	mustAdd(t, w, front, component.PerspectiveComponent, &component.Perspective{Height: 16, Depth: 4})
	back := ecs.CreateEntity(w)
	mustAdd(t, w, back, component.TransformComponent, &component.Transform{Y: 100})
	mustAdd(t, w, back, component.PerspectiveComponent, &component.Perspective{Height: 32, Depth: 6})

	NewPerspectiveSystem().Update(w)

	fz, bz := transformOf(t, w, front).Z, transformOf(t, w, back).Z
	if fz != 118 || bz != 97 {
		t.Fatalf("expected z 118 and 97, got %v and %v", fz, bz)
	}
	if fz <= bz {
		t.Fatalf("expected lower entity to draw in front")
	}
}
