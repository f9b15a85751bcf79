package system

import (
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/component"
)

// Atlas resolves a sheet name to its image and cell size.
type Atlas interface {
	Sheet(name string) (img *ebiten.Image, cellW, cellH int, ok bool)
}

type RenderSystem struct {
	atlas     Atlas
	camEntity ecs.Entity
}

func NewRenderSystem(atlas Atlas) *RenderSystem {
	return &RenderSystem{atlas: atlas}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil || r.atlas == nil {
		return
	}

	if !r.camEntity.Valid() || !ecs.IsAlive(w, r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	camX, camY := 0.0, 0.0
	zoom := 1.0
	if camTransform, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}

	ecs.ForEach(w, component.TileMapComponent.Kind(), func(_ ecs.Entity, tm *component.TileMap) {
		r.drawTiles(screen, tm, camX, camY, zoom)
	})

	type drawable struct {
		e     ecs.Entity
		layer int
		t     *component.Transform
		s     *component.Sprite
	}
	var items []drawable
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
		if s.Hidden || e == r.camEntity {
			return
		}
		layer := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		items = append(items, drawable{e: e, layer: layer, t: t, s: s})
	})
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.layer != b.layer {
			return a.layer < b.layer
		}
		if a.t.Z != b.t.Z {
			return a.t.Z < b.t.Z
		}
		if a.t.Y != b.t.Y {
			return a.t.Y < b.t.Y
		}
		return a.e < b.e
	})

	for _, it := range items {
		img, ok := r.cell(it.s.Sheet, it.s.Cols, it.s.Index)
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-it.s.OriginX, -it.s.OriginY)
		if it.s.FlipX {
			op.GeoM.Scale(-1, 1)
		}
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((it.t.X-camX)*zoom, (it.t.Y-camY)*zoom)
		screen.DrawImage(img, op)
	}
}

func (r *RenderSystem) drawTiles(screen *ebiten.Image, tm *component.TileMap, camX, camY, zoom float64) {
	if tm.TileSize <= 0 {
		return
	}
	for _, layer := range tm.Layers {
		for i, tile := range layer {
			if tile < 0 {
				continue
			}
			img, ok := r.cell(tm.Sheet, tm.Cols, tile)
			if !ok {
				continue
			}
			x := float64((i % tm.Width) * tm.TileSize)
			y := float64((i / tm.Width) * tm.TileSize)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(zoom, zoom)
			op.GeoM.Translate((x-camX)*zoom, (y-camY)*zoom)
			screen.DrawImage(img, op)
		}
	}
}

func (r *RenderSystem) cell(sheet string, cols, index int) (*ebiten.Image, bool) {
	img, cw, ch, ok := r.atlas.Sheet(sheet)
	if !ok || img == nil || cw <= 0 || ch <= 0 || index < 0 {
		return nil, false
	}
	if cols <= 0 {
		cols = max(img.Bounds().Dx()/cw, 1)
	}
	x := (index % cols) * cw
	y := (index / cols) * ch
	sub, ok := img.SubImage(image.Rect(x, y, x+cw, y+ch)).(*ebiten.Image)
	return sub, ok
}
