package system

import (
	"testing"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

type fakeRoller struct {
	killed bool
	calls  int
}

func (f *fakeRoller) Trample(float64) (bool, error) {
	f.calls++
	return f.killed, nil
}

var testCropRows = map[component.CropType]int{
	component.CropPotato:  0,
	component.CropCarrot:  2,
	component.CropCorn:    4,
	component.CropCabbage: 6,
	component.CropDead:    8,
}

func TestCropGrowsAtPinnedDuration(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCropSystem(nil, nil, testCropRows, 0.3, 0.5)
	e := addCrop(t, w, 100, 100, component.Crop{Type: component.CropCarrot, Stages: 5, Duration: 1})
	crop, _ := ecs.Get(w, e, component.CropComponent.Kind())
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

	tests := []struct {
		updates int
		stage   int
	}{
		{updates: 1, stage: 0},
		{updates: 1, stage: 1},
		{updates: 4, stage: 3},
		{updates: 2, stage: 4},
		{updates: 10, stage: 4},
	}
	for i, tc := range tests {
		for range tc.updates {
			cs.Update(w)
		}
		if crop.Stage != tc.stage {
			t.Fatalf("step %d: expected stage %d, got %d", i, tc.stage, crop.Stage)
		}
	}
	if !crop.Ripe() {
		t.Fatalf("expected crop to be ripe")
	}
	if want := 2*5 + 4; sprite.Index != want {
		t.Fatalf("expected sprite index %d, got %d", want, sprite.Index)
	}
}

func TestCropTrampleRollsOncePerEntry(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	roller := &fakeRoller{}
	cs := NewCropSystem(roller, ps, testCropRows, 0.3, testDT)
	player := addPlayer(t, w, 100, 100)
	addCrop(t, w, 100, 100, component.Crop{Type: component.CropPotato, Stages: 5, Duration: 10})

	step := func() {
		ps.Update(w)
		cs.Update(w)
	}

	step()
	step()
	if roller.calls != 1 {
		t.Fatalf("expected 1 roll while standing on the crop, got %d", roller.calls)
	}

	transformOf(t, w, player).Y = 150
	step()
	transformOf(t, w, player).Y = 100
	step()
	if roller.calls != 2 {
		t.Fatalf("expected a second roll on re-entry, got %d", roller.calls)
	}
}

func TestCropTrampleKills(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	cs := NewCropSystem(&fakeRoller{killed: true}, ps, testCropRows, 0.3, testDT)
	addPlayer(t, w, 100, 100)
	e := addCrop(t, w, 100, 100, component.Crop{Type: component.CropCorn, Stage: 2, Stages: 5, Duration: 10})

	ps.Update(w)
	cs.Update(w)

	crop, _ := ecs.Get(w, e, component.CropComponent.Kind())
	if crop.Type != component.CropDead {
		t.Fatalf("expected trampled crop to die, got %s", crop.Type)
	}
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if want := (8+1)*5 + 2; sprite.Index != want {
		t.Fatalf("expected highlighted dead sprite %d, got %d", want, sprite.Index)
	}
}

func TestCropHighlightsNearest(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCropSystem(nil, nil, testCropRows, 0.3, testDT)
	addPlayer(t, w, 100, 100)
	near := addCrop(t, w, 105, 100, component.Crop{Type: component.CropPotato, Stages: 5, Duration: 10})
	far := addCrop(t, w, 115, 100, component.Crop{Type: component.CropPotato, Stages: 5, Duration: 10})
	out := addCrop(t, w, 150, 100, component.Crop{Type: component.CropPotato, Stages: 5, Duration: 10})

	cs.Update(w)

	cases := []struct {
		e    ecs.Entity
		want bool
	}{
		{near, true},
		{far, false},
		{out, false},
	}
	for _, tc := range cases {
		crop, _ := ecs.Get(w, tc.e, component.CropComponent.Kind())
		if crop.Highlighted != tc.want {
			t.Fatalf("crop %s: expected highlighted=%v", tc.e, tc.want)
		}
	}
}

func TestCropHarvest(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCropSystem(nil, nil, testCropRows, 0.3, testDT)
	player := addPlayer(t, w, 100, 100)
	ripe := addCrop(t, w, 110, 100, component.Crop{Type: component.CropCabbage, Stage: 4, Stages: 5, Duration: 10})

	setInput(t, w, player, component.Input{HarvestPressed: true})
	cs.Update(w)

	inv, _ := ecs.Get(w, player, component.InventoryComponent.Kind())
	if inv.Items["cabbage"] != 1 {
		t.Fatalf("expected one cabbage, got %v", inv.Items)
	}
	crop, _ := ecs.Get(w, ripe, component.CropComponent.Kind())
	if crop.Stage != 0 || crop.Duration != 10 {
		t.Fatalf("expected replanted crop with the same duration, got stage=%d duration=%v", crop.Stage, crop.Duration)
	}

	cs.Update(w)
	if inv.Items["cabbage"] != 1 {
		t.Fatalf("expected unripe crop not to be harvested, got %v", inv.Items)
	}
}

func TestCropClearDead(t *testing.T) {
	w := ecs.NewWorld()
	cs := NewCropSystem(nil, nil, testCropRows, 0.3, testDT)
	player := addPlayer(t, w, 100, 100)
	dead := addCrop(t, w, 110, 100, component.Crop{Type: component.CropDead, Stages: 5})

	setInput(t, w, player, component.Input{HarvestPressed: true})
	cs.Update(w)

	if ecs.IsAlive(w, dead) {
		t.Fatalf("expected dead crop to be cleared")
	}
	inv, _ := ecs.Get(w, player, component.InventoryComponent.Kind())
	if len(inv.Items) != 0 {
		t.Fatalf("expected nothing harvested from a dead crop, got %v", inv.Items)
	}
}

func TestCropRulesScript(t *testing.T) {
	rules, err := LoadCropRules("crop_rules", 7)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}

	for range 20 {
		d, err := rules.PlantDuration(4, 8)
		if err != nil {
			t.Fatalf("plant: %v", err)
		}
		if d < 4 || d > 8 {
			t.Fatalf("expected duration in [4, 8], got %v", d)
		}
	}

	cases := []struct {
		chance float64
		want   bool
	}{
		{chance: 0, want: false},
		{chance: 1, want: true},
	}
	for _, tc := range cases {
		killed, err := rules.Trample(tc.chance)
		if err != nil {
			t.Fatalf("trample: %v", err)
		}
		if killed != tc.want {
			t.Fatalf("chance %v: expected killed=%v", tc.chance, tc.want)
		}
	}
}

func TestCropRulesCompileError(t *testing.T) {
	if _, err := NewCropRules([]byte("duration := ("), 1); err == nil {
		t.Fatalf("expected compile error")
	}
}
