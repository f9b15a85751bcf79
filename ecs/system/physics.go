package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeSensor
	collisionTypeMover
)

// PhysicsSystem keeps a Chipmunk space in step with PhysicsBody components.
// The farm has no forces: movers are kinematic bodies placed from their
// transform, and gameplay asks the space about overlaps instead of stepping
// a simulation.
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	sensor   *cp.Shape
	static   bool
	disabled bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    cp.NewSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body; used when a level unloads.
func (ps *PhysicsSystem) Reset() {
	ps.space = cp.NewSpace()
	ps.entities = make(map[ecs.Entity]*bodyInfo)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	for e, info := range ps.entities {
		if !ecs.IsAlive(w, e) || !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			ps.removeBody(e, info)
		}
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		info := ps.ensureBody(e, pb, t)
		if !info.static {
			info.body.SetPosition(boxCenter(pb, t.X, t.Y))
		}
		if info.disabled != pb.Disabled {
			info.disabled = pb.Disabled
			if pb.Disabled {
				info.shape.SetFilter(cp.SHAPE_FILTER_NONE)
			} else {
				info.shape.SetFilter(cp.SHAPE_FILTER_ALL)
			}
		}
	})
}

func (ps *PhysicsSystem) ensureBody(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) *bodyInfo {
	if info, ok := ps.entities[e]; ok {
		return info
	}

	info := &bodyInfo{static: pb.Static}
	if pb.Static {
		info.body = ps.space.StaticBody
		info.shape = cp.NewBox2(info.body, boxBB(pb, t.X, t.Y, 0), 0)
	} else {
		info.body = cp.NewKinematicBody()
		info.body.SetPosition(boxCenter(pb, t.X, t.Y))
		ps.space.AddBody(info.body)
		info.shape = cp.NewBox(info.body, pb.Width, pb.Height, 0)
	}
	info.shape.UserData = e
	if pb.Solid {
		info.shape.SetCollisionType(collisionTypeSolid)
	} else {
		info.shape.SetSensor(true)
		info.shape.SetCollisionType(collisionTypeSensor)
	}
	if !pb.Static {
		info.shape.SetCollisionType(collisionTypeMover)
	}
	ps.space.AddShape(info.shape)

	if pb.SensorPad > 0 {
		if pb.Static {
			info.sensor = cp.NewBox2(info.body, boxBB(pb, t.X, t.Y, pb.SensorPad), 0)
		} else {
			info.sensor = cp.NewBox(info.body, pb.Width+2*pb.SensorPad, pb.Height+2*pb.SensorPad, 0)
		}
		info.sensor.UserData = e
		info.sensor.SetSensor(true)
		info.sensor.SetCollisionType(collisionTypeSensor)
		ps.space.AddShape(info.sensor)
	}

	pb.Body = info.body
	pb.Shape = info.shape
	pb.Sensor = info.sensor
	ps.entities[e] = info
	return info
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, info *bodyInfo) {
	if info.sensor != nil {
		ps.space.RemoveShape(info.sensor)
	}
	ps.space.RemoveShape(info.shape)
	if !info.static {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
}

// Overlapping returns every entity whose shapes touch e's collision shape,
// sensors included. Disabled shapes are ignored.
func (ps *PhysicsSystem) Overlapping(e ecs.Entity) []ecs.Entity {
	info, ok := ps.entities[e]
	if !ok {
		return nil
	}
	seen := make(map[ecs.Entity]bool)
	var out []ecs.Entity
	ps.space.ShapeQuery(info.shape, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		other, ok := shape.UserData.(ecs.Entity)
		if !ok || other == e || seen[other] {
			return
		}
		seen[other] = true
		out = append(out, other)
	})
	return out
}

// Blocked reports whether e's shape placed with its feet at (x, y) would
// overlap a solid shape of another entity. The body is restored afterwards.
func (ps *PhysicsSystem) Blocked(e ecs.Entity, pb *component.PhysicsBody, x, y float64) bool {
	info, ok := ps.entities[e]
	if !ok || info.static {
		return false
	}
	prev := info.body.Position()
	info.body.SetPosition(boxCenter(pb, x, y))
	defer info.body.SetPosition(prev)

	blocked := false
	ps.space.ShapeQuery(info.shape, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		if shape.Sensor() {
			return
		}
		if other, ok := shape.UserData.(ecs.Entity); ok && other != e {
			blocked = true
		}
	})
	return blocked
}

// Bodies returns the number of tracked entities.
func (ps *PhysicsSystem) Bodies() int {
	return len(ps.entities)
}

// boxCenter converts a feet position into the center of the collider box.
func boxCenter(pb *component.PhysicsBody, x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y - pb.Height/2 + pb.OffsetY}
}

func boxBB(pb *component.PhysicsBody, x, y, pad float64) cp.BB {
	c := boxCenter(pb, x, y)
	hw, hh := pb.Width/2+pad, pb.Height/2+pad
	return cp.BB{L: c.X - hw, B: c.Y - hh, R: c.X + hw, T: c.Y + hh}
}
