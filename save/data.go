package save

import (
	"fmt"
	"sort"
	"time"

	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// Data is one save file.
type Data struct {
	Level  string     `yaml:"level"`
	Date   time.Time  `yaml:"date"`
	Player PlayerData `yaml:"player"`
	Crops  []CropData `yaml:"crops"`
}

type PlayerData struct {
	X         float64          `yaml:"x"`
	Y         float64          `yaml:"y"`
	Facing    common.Direction `yaml:"facing"`
	Inventory map[string]int   `yaml:"inventory,omitempty"`
}

type CropData struct {
	ID       string  `yaml:"id"`
	Type     string  `yaml:"type"`
	Stage    int     `yaml:"stage"`
	Elapsed  float64 `yaml:"elapsed"`
	Duration float64 `yaml:"duration"`
}

// Capture snapshots the player and every persistent crop.
func Capture(w *ecs.World, level string) (*Data, error) {
	d := &Data{Level: level}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("save: no player in world")
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		d.Player.X, d.Player.Y = t.X, t.Y
	}
	if f, ok := ecs.Get(w, player, component.FacingComponent.Kind()); ok {
		d.Player.Facing = f.Dir
	}
	if inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind()); ok && len(inv.Items) > 0 {
		d.Player.Inventory = make(map[string]int, len(inv.Items))
		for k, v := range inv.Items {
			d.Player.Inventory[k] = v
		}
	}

	ecs.ForEach2(w, component.CropComponent.Kind(), component.PersistentComponent.Kind(), func(_ ecs.Entity, c *component.Crop, p *component.Persistent) {
		d.Crops = append(d.Crops, CropData{
			ID:       p.ID,
			Type:     c.Type.String(),
			Stage:    c.Stage,
			Elapsed:  c.Elapsed,
			Duration: c.Duration,
		})
	})
	sort.Slice(d.Crops, func(i, j int) bool { return d.Crops[i].ID < d.Crops[j].ID })
	return d, nil
}

// Apply restores a save onto a freshly loaded level. Persistent crops missing
// from the save were cleared before saving and are removed.
func Apply(w *ecs.World, d *Data) error {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return fmt.Errorf("save: no player in world")
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		t.X, t.Y, t.Z = d.Player.X, d.Player.Y, d.Player.Y
	}
	if f, ok := ecs.Get(w, player, component.FacingComponent.Kind()); ok {
		f.Dir = d.Player.Facing
	}
	if inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind()); ok {
		inv.Items = make(map[string]int, len(d.Player.Inventory))
		for k, v := range d.Player.Inventory {
			inv.Items[k] = v
		}
	}

	saved := make(map[string]CropData, len(d.Crops))
	for _, c := range d.Crops {
		saved[c.ID] = c
	}

	var (
		cleared []ecs.Entity
		err     error
	)
	ecs.ForEach2(w, component.CropComponent.Kind(), component.PersistentComponent.Kind(), func(e ecs.Entity, c *component.Crop, p *component.Persistent) {
		if err != nil {
			return
		}
		cd, ok := saved[p.ID]
		if !ok {
			cleared = append(cleared, e)
			return
		}
		typ, perr := component.ParseCropType(cd.Type)
		if perr != nil {
			err = fmt.Errorf("save: crop %s: %w", cd.ID, perr)
			return
		}
		c.Type = typ
		c.Stage = min(max(cd.Stage, 0), max(c.Stages-1, 0))
		c.Elapsed = cd.Elapsed
		c.Duration = cd.Duration
		c.Occupied = false
		c.Highlighted = false
	})
	if err != nil {
		return err
	}
	for _, e := range cleared {
		ecs.DestroyEntity(w, e)
	}
	return nil
}
