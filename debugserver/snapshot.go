package debugserver

import (
	"sort"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// Snapshot is an immutable view of the game taken on the game goroutine and
// read by HTTP handlers.
type Snapshot struct {
	State      string          `json:"state" yaml:"state"`
	Tick       uint64          `json:"tick" yaml:"tick"`
	Entities   int             `json:"entities" yaml:"entities"`
	Components map[string]int  `json:"components" yaml:"components"`
	Player     *PlayerInfo     `json:"player,omitempty" yaml:"player,omitempty"`
	Animation  animation.Stats `json:"animation" yaml:"animation"`
	Clips      []ClipInfo      `json:"clips" yaml:"clips"`
}

type PlayerInfo struct {
	X         float64        `json:"x" yaml:"x"`
	Y         float64        `json:"y" yaml:"y"`
	Facing    string         `json:"facing" yaml:"facing"`
	Inventory map[string]int `json:"inventory,omitempty" yaml:"inventory,omitempty"`
}

// ClipInfo is the animation state of one entity.
type ClipInfo struct {
	Entity string `json:"entity" yaml:"entity"`
	Set    string `json:"set" yaml:"set"`
	Active string `json:"active,omitempty" yaml:"active,omitempty"`
	Frame  int    `json:"frame" yaml:"frame"`
}

// Capture builds a snapshot of w. reg may be nil before animations load.
func Capture(w *ecs.World, reg *animation.Registry, state string, tick uint64) *Snapshot {
	s := &Snapshot{State: state, Tick: tick}
	if w == nil {
		return s
	}
	s.Entities = ecs.Count(w)
	s.Components = w.ComponentCounts()

	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		info := &PlayerInfo{}
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			info.X, info.Y = t.X, t.Y
		}
		if f, ok := ecs.Get(w, player, component.FacingComponent.Kind()); ok {
			info.Facing = f.Dir.String()
		}
		if inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind()); ok && len(inv.Items) > 0 {
			info.Inventory = make(map[string]int, len(inv.Items))
			for k, v := range inv.Items {
				info.Inventory[k] = v
			}
		}
		s.Player = info
	}

	if reg == nil {
		return s
	}
	s.Animation = reg.Stats()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, a *component.Animation) {
		ci := ClipInfo{Entity: e.String(), Set: a.Set}
		if name, ok := reg.ActiveClip(e); ok {
			ci.Active = name
			ci.Frame, _ = reg.Frame(e, name)
		}
		s.Clips = append(s.Clips, ci)
	})
	sort.Slice(s.Clips, func(i, j int) bool { return s.Clips[i].Entity < s.Clips[j].Entity })
	return s
}
