package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/levels"
	"github.com/milk9111/rustyfarm/prefabs"
)

// LevelOptions carries what level loading needs besides the level itself.
type LevelOptions struct {
	Bundle  *prefabs.Bundle
	Planter Planter
	ViewW   float64
	ViewH   float64
}

// LoadLevelToWorld creates the bounds, ground, fences, camera and every placed
// entity of a level.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, opts LevelOptions) error {
	if opts.Bundle == nil {
		return fmt.Errorf("level: no prefabs")
	}
	bundle := opts.Bundle
	pw, ph := lvl.PixelSize()

	bounds := newBuilder(w)
	add(bounds, component.LevelBoundsComponent, &component.LevelBounds{Width: pw, Height: ph})
	if _, err := bounds.done(); err != nil {
		return err
	}

	if err := addGround(w, lvl, bundle); err != nil {
		return err
	}
	if err := addFences(w, lvl, bundle); err != nil {
		return err
	}

	for _, placed := range lvl.Entities {
		x, y := float64(placed.X), float64(placed.Y)
		var err error
		switch placed.Type {
		case "player":
			_, err = NewPlayerAt(w, bundle, x, y)
		case "gate":
			_, err = NewGateAt(w, bundle, x, y)
		case "crop":
			typ := component.CropPotato
			if name := placed.Prop("crop"); name != "" {
				if typ, err = component.ParseCropType(name); err != nil {
					return fmt.Errorf("level: %w", err)
				}
			}
			_, err = NewCropAt(w, bundle, opts.Planter, placed.Prop("id"), typ, x, y)
		default:
			log.Printf("level: skipping unknown entity type %q at %d,%d", placed.Type, placed.X, placed.Y)
		}
		if err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}

	if _, err := NewCamera(w, bundle.World.Camera, opts.ViewW, opts.ViewH); err != nil {
		return fmt.Errorf("level: camera: %w", err)
	}
	return nil
}

// addGround puts every non-physics layer into one tile map entity.
func addGround(w *ecs.World, lvl *levels.Level, bundle *prefabs.Bundle) error {
	sheet, ok := bundle.Sheet(bundle.World.Ground.Sheet)
	if !ok {
		return fmt.Errorf("level: ground sheet %q not defined", bundle.World.Ground.Sheet)
	}
	tm := &component.TileMap{
		Sheet:    sheet.Name,
		Cols:     sheet.Cols,
		Width:    lvl.Width,
		Height:   lvl.Height,
		TileSize: lvl.TileSize,
	}
	for i, layer := range lvl.Layers {
		if lvl.IsPhysicsLayer(i) {
			continue
		}
		tm.Layers = append(tm.Layers, append([]int(nil), layer...))
	}
	b := newBuilder(w)
	add(b, component.TileMapComponent, tm)
	_, err := b.done()
	return err
}

// addFences turns each filled cell of a physics layer into a solid fence post
// that sorts with the other entities.
func addFences(w *ecs.World, lvl *levels.Level, bundle *prefabs.Bundle) error {
	spec := bundle.World.Fence
	ts := float64(lvl.TileSize)
	for i := range lvl.Layers {
		if !lvl.IsPhysicsLayer(i) {
			continue
		}
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				tile := lvl.Tile(i, x, y)
				if tile < 0 {
					continue
				}
				b := newBuilder(w)
				add(b, component.FenceTagComponent, &component.FenceTag{})
				b.transform(float64(x)*ts+ts/2, float64(y+1)*ts)
				b.sprite(bundle, prefabs.SpriteSpec{Sheet: spec.Sheet, Index: tile, OriginX: ts / 2, OriginY: ts})
				b.collider(prefabs.ColliderSpec{Width: ts, Height: ts, Solid: true}, true)
				b.layer(spec.RenderLayer)
				b.perspective(spec.Perspective)
				if _, err := b.done(); err != nil {
					return fmt.Errorf("level: fence at %d,%d: %w", x, y, err)
				}
			}
		}
	}
	return nil
}
