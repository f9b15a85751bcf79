package entity

import (
	"fmt"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/prefabs"
)

// PlayerID is the persistent id of the player in save files.
const PlayerID = "player"

func NewPlayerAt(w *ecs.World, bundle *prefabs.Bundle, x, y float64) (ecs.Entity, error) {
	spec := bundle.Player
	b := newBuilder(w)
	add(b, component.PlayerTagComponent, &component.PlayerTag{})
	add(b, component.PersistentComponent, &component.Persistent{ID: PlayerID})
	add(b, component.PlayerComponent, &component.Player{
		WalkSpeed:   spec.WalkSpeed,
		RunSpeed:    spec.RunSpeed,
		Reach:       spec.Reach,
		WalkClip:    spec.WalkClip,
		RunClip:     spec.RunClip,
		HarvestClip: spec.HarvestClip,
	})
	add(b, component.InputComponent, &component.Input{})
	add(b, component.InventoryComponent, &component.Inventory{Items: make(map[string]int)})
	add(b, component.FacingComponent, &component.Facing{Dir: spec.Facing})
	add(b, component.AnimationComponent, &component.Animation{Set: spec.Clips, Idle: spec.Idle})
	b.transform(x, y)
	b.sprite(bundle, spec.Sprite)
	b.collider(spec.Collider, false)
	b.layer(spec.RenderLayer)
	b.perspective(spec.Perspective)

	e, err := b.done()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	return e, nil
}
