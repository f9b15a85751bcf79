package system

import (
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// GateSystem opens gates while a player stands in their sensor. Open and
// close clips are only requested on edges and never while the gate's clip is
// still playing; an edge seen mid-play is kept pending.
type GateSystem struct {
	events  *animation.Events
	anims   AnimationReader
	physics *PhysicsSystem
}

func NewGateSystem(events *animation.Events, anims AnimationReader, physics *PhysicsSystem) *GateSystem {
	return &GateSystem{events: events, anims: anims, physics: physics}
}

func (g *GateSystem) Update(w *ecs.World) {
	if g == nil || w == nil || g.physics == nil {
		return
	}

	touched := make(map[ecs.Entity]bool)
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, _ *component.Player) {
		for _, other := range g.physics.Overlapping(e) {
			touched[other] = true
		}
	})

	ecs.ForEach2(w, component.GateComponent.Kind(), component.GateRuntimeComponent.Kind(), func(e ecs.Entity, gate *component.Gate, rt *component.GateRuntime) {
		inside := touched[e]
		if inside != rt.PlayerInside {
			rt.PlayerInside = inside
			rt.Pending = true
		}

		if rt.Pending {
			g.settle(e, gate, rt)
		}

		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			pb.Disabled = rt.Open
		}
	})
}

func (g *GateSystem) settle(e ecs.Entity, gate *component.Gate, rt *component.GateRuntime) {
	if g.anims != nil {
		if active, ok := g.anims.IsActive(e); ok && active {
			return
		}
	}
	rt.Pending = false
	if rt.Open == rt.PlayerInside {
		return
	}
	rt.Open = rt.PlayerInside

	clip := gate.CloseClip
	if rt.Open {
		clip = gate.OpenClip
	}
	if clip != "" && g.events != nil && g.anims != nil && g.anims.IsRegistered(e) {
		g.events.Send(clip, e)
	}
}
