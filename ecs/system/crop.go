package system

import (
	"log"
	"math"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// CropRoller is the part of CropRules the crop system needs.
type CropRoller interface {
	Trample(killChance float64) (bool, error)
}

// CropSystem grows crops, kills trampled ones, highlights the crop nearest a
// player and harvests it on request.
type CropSystem struct {
	rules      CropRoller
	physics    *PhysicsSystem
	rows       map[component.CropType]int
	killChance float64
	dt         float64
}

func NewCropSystem(rules CropRoller, physics *PhysicsSystem, rows map[component.CropType]int, killChance, dt float64) *CropSystem {
	return &CropSystem{rules: rules, physics: physics, rows: rows, killChance: killChance, dt: dt}
}

func (c *CropSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}

	touched := make(map[ecs.Entity]bool)
	if c.physics != nil {
		ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, _ *component.Player) {
			for _, other := range c.physics.Overlapping(e) {
				touched[other] = true
			}
		})
	}

	ecs.ForEach(w, component.CropComponent.Kind(), func(e ecs.Entity, crop *component.Crop) {
		c.grow(crop)
		inside := touched[e]
		if inside && !crop.Occupied {
			c.trample(e, crop)
		}
		crop.Occupied = inside
		crop.Highlighted = false
	})

	var harvest []ecs.Entity
	ecs.ForEach4(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), component.InputComponent.Kind(), component.InventoryComponent.Kind(),
		func(_ ecs.Entity, p *component.Player, pt *component.Transform, in *component.Input, inv *component.Inventory) {
			target, ok := nearestCrop(w, pt, p.Reach)
			if !ok {
				return
			}
			crop, _ := ecs.Get(w, target, component.CropComponent.Kind())
			crop.Highlighted = true
			if !in.HarvestPressed {
				return
			}
			switch {
			case crop.Type == component.CropDead:
				harvest = append(harvest, target)
			case crop.Ripe():
				inv.Add(crop.Type.String(), 1)
				crop.Stage = 0
				crop.Elapsed = 0
			}
		})
	for _, e := range harvest {
		ecs.DestroyEntity(w, e)
	}

	ecs.ForEach2(w, component.CropComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, crop *component.Crop, s *component.Sprite) {
		row := c.rows[crop.Type]
		if crop.Highlighted {
			row++
		}
		s.Index = row*s.Cols + min(crop.Stage, max(s.Cols-1, 0))
	})
}

func (c *CropSystem) grow(crop *component.Crop) {
	if crop.Type == component.CropDead || crop.Ripe() {
		return
	}
	if crop.Duration <= 0 {
		crop.Stage = crop.Stages - 1
		return
	}
	crop.Elapsed += c.dt
	for crop.Elapsed >= crop.Duration && !crop.Ripe() {
		crop.Elapsed -= crop.Duration
		crop.Stage++
	}
	if crop.Ripe() {
		crop.Elapsed = 0
	}
}

func (c *CropSystem) trample(e ecs.Entity, crop *component.Crop) {
	if crop.Type == component.CropDead || c.rules == nil {
		return
	}
	killed, err := c.rules.Trample(c.killChance)
	if err != nil {
		log.Printf("crop: trample %s: %v", e, err)
		return
	}
	if killed {
		crop.Type = component.CropDead
		crop.Elapsed = 0
	}
}

// nearestCrop returns the crop whose position is closest to the player's
// feet, within reach.
func nearestCrop(w *ecs.World, pt *component.Transform, reach float64) (ecs.Entity, bool) {
	var (
		best  ecs.Entity
		bestD = math.Inf(1)
		found bool
	)
	ecs.ForEach2(w, component.CropComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Crop, t *component.Transform) {
		d := math.Hypot(t.X-pt.X, t.Y-pt.Y)
		if d > reach {
			return
		}
		if d < bestD || (d == bestD && e < best) {
			best, bestD, found = e, d, true
		}
	})
	return best, found
}
