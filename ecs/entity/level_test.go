package entity

import (
	"testing"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/levels"
	"github.com/milk9111/rustyfarm/prefabs"
)

type fixedPlanter float64

func (p fixedPlanter) PlantDuration(minDuration, _ float64) (float64, error) {
	return minDuration + float64(p), nil
}

func loadFarm(t *testing.T) (*ecs.World, *prefabs.Bundle, *levels.Level) {
	t.Helper()
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		t.Fatalf("load prefabs: %v", err)
	}
	lvl, err := levels.Load(levels.Default)
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, lvl, LevelOptions{Bundle: bundle, Planter: fixedPlanter(0.5), ViewW: 640, ViewH: 480}); err != nil {
		t.Fatalf("load level to world: %v", err)
	}
	return w, bundle, lvl
}

func TestLoadLevelToWorld(t *testing.T) {
	w, _, lvl := loadFarm(t)

	fences := 0
	for i := range lvl.Layers {
		if !lvl.IsPhysicsLayer(i) {
			continue
		}
		for _, tile := range lvl.Layers[i] {
			if tile >= 0 {
				fences++
			}
		}
	}

	counts := w.ComponentCounts()
	tests := []struct {
		name string
		kind string
		want int
	}{
		{name: "player", kind: component.PlayerComponent.Kind().Name(), want: 1},
		{name: "gates", kind: component.GateComponent.Kind().Name(), want: len(lvl.EntitiesOfType("gate"))},
		{name: "crops", kind: component.CropComponent.Kind().Name(), want: len(lvl.EntitiesOfType("crop"))},
		{name: "fences", kind: component.FenceTagComponent.Kind().Name(), want: fences},
		{name: "camera", kind: component.CameraComponent.Kind().Name(), want: 1},
		{name: "bounds", kind: component.LevelBoundsComponent.Kind().Name(), want: 1},
		{name: "tile map", kind: component.TileMapComponent.Kind().Name(), want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if counts[tc.kind] != tc.want {
				t.Fatalf("expected %d %s, got %d", tc.want, tc.name, counts[tc.kind])
			}
		})
	}
}

func TestCropDurationPinnedAtSpawn(t *testing.T) {
	w, bundle, _ := loadFarm(t)
	ecs.ForEach(w, component.CropComponent.Kind(), func(e ecs.Entity, c *component.Crop) {
		want := bundle.Crops.Types[c.Type.String()].MinDuration + 0.5
		if c.Duration != want {
			t.Fatalf("crop %s: expected duration %v, got %v", e, want, c.Duration)
		}
		if c.Stage != 0 || c.Stages != bundle.Crops.Stages {
			t.Fatalf("crop %s: expected fresh crop with %d stages, got stage %d of %d", e, bundle.Crops.Stages, c.Stage, c.Stages)
		}
	})
}

func TestRegisterAnimations(t *testing.T) {
	w, bundle, _ := loadFarm(t)
	reg := animation.NewRegistry()
	reg.SetLogger(nil)

	for range 2 {
		if err := RegisterAnimations(w, reg, bundle.Clips); err != nil {
			t.Fatalf("register animations: %v", err)
		}
	}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		t.Fatalf("expected a player")
	}
	if !reg.IsRegistered(player) {
		t.Fatalf("expected player clips registered")
	}
	if _, ok := reg.Clip(player, bundle.Player.HarvestClip); !ok {
		t.Fatalf("expected harvest clip on player")
	}

	gate, ok := w.First(component.GateComponent.Kind())
	if !ok {
		t.Fatalf("expected a gate")
	}
	if active, ok := reg.IsActive(gate); !ok || active {
		t.Fatalf("expected registered idle gate, got active=%v ok=%v", active, ok)
	}

	stats := reg.Stats()
	if stats.Entities != 2 {
		t.Fatalf("expected player and gate registered, got %d entities", stats.Entities)
	}
}

func TestRegisterAnimationsUnknownSet(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Set: "missing"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	clips, err := prefabs.LoadClipsSpec()
	if err != nil {
		t.Fatalf("load clips: %v", err)
	}
	if err := RegisterAnimations(w, animation.NewRegistry(), clips); err == nil {
		t.Fatalf("expected error for unknown clip set")
	}
}
