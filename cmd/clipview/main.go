// Command clipview previews one clip set from prefabs/clips.yaml through the
// same registry and driver the game uses.
//
//	Tab       next clip
//	WASD      change facing
//	M         toggle moving (transform clips only advance while moving)
//	Space     replay the current clip
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rustyfarm/assets"
	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/component"
	"github.com/milk9111/rustyfarm/ecs/entity"
	"github.com/milk9111/rustyfarm/ecs/system"
	"github.com/milk9111/rustyfarm/prefabs"
)

const (
	viewWidth  = 160
	viewHeight = 120
)

type viewer struct {
	world    *ecs.World
	registry *animation.Registry
	events   *animation.Events
	driver   *system.AnimationSystem
	render   *system.RenderSystem
	atlas    *assets.Atlas
	subject  ecs.Entity
	clips    []string
	current  int
}

func newViewer(bundle *prefabs.Bundle, set string) (*viewer, error) {
	clips, err := bundle.Clips.Set(set)
	if err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		return nil, fmt.Errorf("clip set %q is empty", set)
	}
	atlas, err := assets.NewAtlas(bundle.Atlases)
	if err != nil {
		return nil, err
	}

	v := &viewer{
		world:    ecs.NewWorld(),
		registry: animation.NewRegistry(),
		events:   animation.NewEvents(),
		render:   system.NewRenderSystem(atlas),
		atlas:    atlas,
	}
	v.driver = system.NewAnimationSystem(v.registry, v.events, 1.0/float64(ebiten.TPS()))
	for _, nc := range clips {
		v.clips = append(v.clips, nc.Name)
	}

	_, cellW, cellH, ok := atlas.Sheet(clips[0].Clip.Sheet)
	if !ok {
		return nil, fmt.Errorf("sheet %q not in atlas", clips[0].Clip.Sheet)
	}
	v.subject = ecs.CreateEntity(v.world)
	for _, err := range []error{
		ecs.Add(v.world, v.subject, component.TransformComponent.Kind(), &component.Transform{X: viewWidth / 2, Y: viewHeight/2 + float64(cellH)/2}),
		ecs.Add(v.world, v.subject, component.SpriteComponent.Kind(), &component.Sprite{OriginX: float64(cellW) / 2, OriginY: float64(cellH)}),
		ecs.Add(v.world, v.subject, component.FacingComponent.Kind(), &component.Facing{Dir: common.Down, Moving: true}),
		ecs.Add(v.world, v.subject, component.AnimationComponent.Kind(), &component.Animation{Set: set}),
	} {
		if err != nil {
			return nil, err
		}
	}
	if err := entity.RegisterAnimations(v.world, v.registry, bundle.Clips); err != nil {
		return nil, err
	}
	v.events.Send(v.clips[0], v.subject)
	return v, nil
}

func (v *viewer) Update() error {
	facing, _ := ecs.Get(v.world, v.subject, component.FacingComponent.Kind())
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		v.current = (v.current + 1) % len(v.clips)
		v.events.Send(v.clips[v.current], v.subject)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.events.Send(v.clips[v.current], v.subject)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		facing.Moving = !facing.Moving
	}
	for key, dir := range map[ebiten.Key]common.Direction{
		ebiten.KeyW: common.Up,
		ebiten.KeyS: common.Down,
		ebiten.KeyA: common.Left,
		ebiten.KeyD: common.Right,
	} {
		if inpututil.IsKeyJustPressed(key) {
			facing.Dir = dir
		}
	}
	v.driver.Update(v.world)

	// Sheets of one set may use different cell sizes; keep the feet centered.
	if sprite, ok := ecs.Get(v.world, v.subject, component.SpriteComponent.Kind()); ok {
		if _, cellW, cellH, ok := v.atlas.Sheet(sprite.Sheet); ok {
			sprite.OriginX, sprite.OriginY = float64(cellW)/2, float64(cellH)
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	v.render.Draw(v.world, screen)

	facing, _ := ecs.Get(v.world, v.subject, component.FacingComponent.Kind())
	frame, _ := v.registry.Frame(v.subject, v.clips[v.current])
	active, _ := v.registry.IsActive(v.subject)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nframe %d %s\nactive %v moving %v", v.clips[v.current], frame, facing.Dir, active, facing.Moving))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewWidth, viewHeight
}

func main() {
	set := flag.String("set", "player", "clip set in prefabs/clips.yaml")
	flag.Parse()

	bundle, err := prefabs.LoadBundle()
	if err != nil {
		log.Fatal(err)
	}
	v, err := newViewer(bundle, *set)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(viewWidth*4, viewHeight*4)
	ebiten.SetWindowTitle("clipview: " + *set)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
