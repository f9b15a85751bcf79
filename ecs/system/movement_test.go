package system

import (
	"testing"

	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
)

const testDT = 1.0 / 60.0

func TestMovementStopsAtWalls(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem()
	ms := NewMovementSystem(nil, nil, ps, testDT)
	player := addPlayer(t, w, 20, 100)
	addBlock(t, w, 50, 100, 20, 20)
	setInput(t, w, player, component.Input{MoveX: 1})

	for range 100 {
		ps.Update(w)
		ms.Update(w)
	}

	x := transformOf(t, w, player).X
	if x < 30 || x > 35.01 {
		t.Fatalf("expected player stopped before the wall, got x=%v", x)
	}
}

func TestMovementClampsToLevelBounds(t *testing.T) {
	w := ecs.NewWorld()
	ms := NewMovementSystem(nil, nil, nil, testDT)
	bounds := ecs.CreateEntity(w)
	mustAdd(t, w, bounds, component.LevelBoundsComponent, &component.LevelBounds{Width: 100, Height: 100})
	player := addPlayer(t, w, 94, 50)
	setInput(t, w, player, component.Input{MoveX: 1, Run: true})

	for range 30 {
		ms.Update(w)
	}

	if x := transformOf(t, w, player).X; x != 95 {
		t.Fatalf("expected x clamped to 95, got %v", x)
	}
}

func TestMovementFacing(t *testing.T) {
	tests := []struct {
		name   string
		in     component.Input
		prev   common.Direction
		want   common.Direction
		moving bool
	}{
		{name: "idle keeps facing", prev: common.Left, want: common.Left},
		{name: "up", in: component.Input{MoveY: -1}, prev: common.Down, want: common.Up, moving: true},
		{name: "horizontal wins", in: component.Input{MoveX: -1, MoveY: 1}, prev: common.Down, want: common.Left, moving: true},
		{name: "right", in: component.Input{MoveX: 1}, prev: common.Up, want: common.Right, moving: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ms := NewMovementSystem(nil, nil, nil, testDT)
			player := addPlayer(t, w, 50, 50)
			f, _ := ecs.Get(w, player, component.FacingComponent.Kind())
			f.Dir = tc.prev
			setInput(t, w, player, tc.in)

			ms.Update(w)

			if f.Dir != tc.want || f.Moving != tc.moving {
				t.Fatalf("expected %s moving=%v, got %s moving=%v", tc.want, tc.moving, f.Dir, f.Moving)
			}
		})
	}
}

func TestMovementRequestsClips(t *testing.T) {
	tests := []struct {
		name   string
		active string
		in     component.Input
		want   []string
	}{
		{name: "idle starts walk", want: []string{"walk"}},
		{name: "walk already playing", active: "walk", in: component.Input{MoveX: 1}},
		{name: "run", active: "walk", in: component.Input{MoveX: 1, Run: true}, want: []string{"run"}},
		{name: "run key while standing", active: "run", in: component.Input{Run: true}, want: []string{"walk"}},
		{name: "harvest", active: "walk", in: component.Input{HarvestPressed: true}, want: []string{"harvest"}},
		{name: "harvest playing blocks walk", active: "harvest", in: component.Input{MoveX: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			events := animation.NewEvents()
			ms := NewMovementSystem(events, &fakeAnims{registered: true, active: tc.active}, nil, testDT)
			player := addPlayer(t, w, 50, 50)
			setInput(t, w, player, tc.in)

			ms.Update(w)

			got := clipNames(events.Drain())
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestMovementSkipsUnregisteredEntities(t *testing.T) {
	w := ecs.NewWorld()
	events := animation.NewEvents()
	ms := NewMovementSystem(events, &fakeAnims{}, nil, testDT)
	player := addPlayer(t, w, 50, 50)
	setInput(t, w, player, component.Input{MoveX: 1})

	ms.Update(w)

	if events.Pending() != 0 {
		t.Fatalf("expected no events for an entity without clips, got %d", events.Pending())
	}
}
