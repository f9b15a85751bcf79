package system

import (
	"testing"

	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
)

func TestAnimationSystemWritesSprite(t *testing.T) {
	w := ecs.NewWorld()
	reg := animation.NewRegistry()
	reg.SetLogger(nil)
	events := animation.NewEvents()
	as := NewAnimationSystem(reg, events, 0.1)

	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.SpriteComponent, &component.Sprite{})
	mustAdd(t, w, e, component.FacingComponent, &component.Facing{Dir: common.Left})

	walk := &animation.Clip{
		Kind:          animation.KindTimed,
		Sheet:         "player",
		Grid:          animation.Grid{Cols: 8, Rows: 8},
		Frames:        []int{0, 1, 2, 3},
		FrameDuration: 0.1,
		Rows:          animation.RowTable{animation.Right: 5, animation.Down: 4},
		Loop:          true,
	}
	if err := reg.Register(e, "walk", walk); err != nil {
		t.Fatalf("register: %v", err)
	}

	events.Send("walk", e)
	if events.Pending() != 1 {
		t.Fatalf("expected queued event")
	}
	as.Update(w)

	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sprite.Sheet != "player" || sprite.Cols != 8 || sprite.Rows != 8 {
		t.Fatalf("unexpected sheet %q %dx%d", sprite.Sheet, sprite.Cols, sprite.Rows)
	}
	if want := 5*8 + 1; sprite.Index != want || !sprite.FlipX {
		t.Fatalf("expected mirrored index %d, got %d flip=%v", want, sprite.Index, sprite.FlipX)
	}
	if events.Pending() != 0 {
		t.Fatalf("expected events drained")
	}
}

func TestAnimationSystemPrunesDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	reg := animation.NewRegistry()
	reg.SetLogger(nil)
	as := NewAnimationSystem(reg, animation.NewEvents(), testDT)

	e := ecs.CreateEntity(w)
	clip := &animation.Clip{Kind: animation.KindLinear, Sheet: "gate", Grid: animation.Grid{Cols: 3, Rows: 1}, Frames: []int{0, 1, 2}, FrameDuration: 0.1, Repeat: 1}
	if err := reg.Register(e, "gate_opening", clip); err != nil {
		t.Fatalf("register: %v", err)
	}

	ecs.DestroyEntity(w, e)
	as.Update(w)

	if reg.IsRegistered(e) {
		t.Fatalf("expected destroyed entity to be pruned")
	}
}
