package system

import (
	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// AnimationReader is the read side of the clip registry available to
// gameplay systems.
type AnimationReader interface {
	IsRegistered(e ecs.Entity) bool
	IsActive(e ecs.Entity) (bool, bool)
	ActiveClip(e ecs.Entity) (string, bool)
}

// MovementSystem moves players from their input, keeps them inside the level
// and out of solid shapes, and requests walk, run and harvest clips.
type MovementSystem struct {
	events  *animation.Events
	anims   AnimationReader
	physics *PhysicsSystem
	dt      float64
}

func NewMovementSystem(events *animation.Events, anims AnimationReader, physics *PhysicsSystem, dt float64) *MovementSystem {
	return &MovementSystem{events: events, anims: anims, physics: physics, dt: dt}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if m == nil || w == nil {
		return
	}

	var bounds component.LevelBounds
	if be, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind()); ok {
			bounds = *b
		}
	}

	ecs.ForEach4(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), component.FacingComponent.Kind(),
		func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform, f *component.Facing) {
			speed := p.WalkSpeed
			if in.Run {
				speed = p.RunSpeed
			}
			dx := common.Clamp(in.MoveX, -1, 1) * speed * m.dt
			dy := common.Clamp(in.MoveY, -1, 1) * speed * m.dt

			body, hasBody := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			bw, bh := 0.0, 0.0
			if hasBody {
				bw, bh = body.Width, body.Height
			}

			startX, startY := t.X, t.Y
			if dx != 0 {
				nx, _ := bounds.Clamp(t.X+dx, t.Y, bw, bh)
				if !hasBody || m.physics == nil || !m.physics.Blocked(e, body, nx, t.Y) {
					t.X = nx
				}
			}
			if dy != 0 {
				_, ny := bounds.Clamp(t.X, t.Y+dy, bw, bh)
				if !hasBody || m.physics == nil || !m.physics.Blocked(e, body, t.X, ny) {
					t.Y = ny
				}
			}

			f.Dir = facingFor(f.Dir, in.MoveX, in.MoveY)
			f.Moving = t.X != startX || t.Y != startY

			m.requestClip(e, p, in, f.Moving)
		})
}

func (m *MovementSystem) requestClip(e ecs.Entity, p *component.Player, in *component.Input, moving bool) {
	if m.events == nil || m.anims == nil || !m.anims.IsRegistered(e) {
		return
	}
	current, _ := m.anims.ActiveClip(e)
	if in.HarvestPressed && p.HarvestClip != "" && current != p.HarvestClip {
		m.events.Send(p.HarvestClip, e)
		return
	}
	if current == p.HarvestClip && current != "" {
		return
	}

	want := p.WalkClip
	if moving && in.Run && p.RunClip != "" {
		want = p.RunClip
	}
	if want != "" && want != current {
		m.events.Send(want, e)
	}
}

// facingFor keeps the previous facing when there is no input. Horizontal
// input wins over vertical.
func facingFor(prev common.Direction, mx, my float64) common.Direction {
	switch {
	case mx < 0:
		return common.Left
	case mx > 0:
		return common.Right
	case my < 0:
		return common.Up
	case my > 0:
		return common.Down
	}
	return prev
}
