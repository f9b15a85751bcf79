package system

import (
	"testing"

	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, h.Kind(), v); err != nil {
		t.Fatalf("add %s: %v", h.Kind().Name(), err)
	}
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerTagComponent, &component.PlayerTag{})
	mustAdd(t, w, e, component.PlayerComponent, &component.Player{
		WalkSpeed:   60,
		RunSpeed:    120,
		Reach:       20,
		WalkClip:    "walk",
		RunClip:     "run",
		HarvestClip: "harvest",
	})
	mustAdd(t, w, e, component.InputComponent, &component.Input{})
	mustAdd(t, w, e, component.InventoryComponent, &component.Inventory{})
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.FacingComponent, &component.Facing{Dir: common.Down})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: 10, Height: 6, Solid: true})
	return e
}

func addBlock(t *testing.T, w *ecs.World, x, y, width, height float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: width, Height: height, Solid: true, Static: true})
	return e
}

func addGate(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.GateComponent, &component.Gate{OpenClip: "gate_opening", CloseClip: "gate_closing"})
	mustAdd(t, w, e, component.GateRuntimeComponent, &component.GateRuntime{})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: 32, Height: 6, SensorPad: 14, Solid: true, Static: true})
	return e
}

func addCrop(t *testing.T, w *ecs.World, x, y float64, crop component.Crop) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.CropComponent, &crop)
	mustAdd(t, w, e, component.SpriteComponent, &component.Sprite{Sheet: "crops", Cols: 5, Rows: 10})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: 12, Height: 8, Static: true})
	return e
}

func setInput(t *testing.T, w *ecs.World, e ecs.Entity, in component.Input) {
	t.Helper()
	cur, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no input", e)
	}
	*cur = in
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no transform", e)
	}
	return tr
}

func contains(ents []ecs.Entity, e ecs.Entity) bool {
	for _, x := range ents {
		if x == e {
			return true
		}
	}
	return false
}
