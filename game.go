package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
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
	"github.com/milk9111/rustyfarm/gamestate"
	"github.com/milk9111/rustyfarm/levels"
	"github.com/milk9111/rustyfarm/prefabs"
	"github.com/milk9111/rustyfarm/save"
)

const statusDuration = 3 * time.Second

// session is everything that lives only while a level is loaded.
type session struct {
	level     string
	world     *ecs.World
	registry  *animation.Registry
	events    *animation.Events
	physics   *system.PhysicsSystem
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
}

type Game struct {
	cfg     config
	machine *gamestate.Machine
	bundle  *prefabs.Bundle
	atlas   *assets.Atlas
	rules   *system.CropRules
	store   *save.Store

	session     *session
	pendingSave *save.Data
	ui          *ebitenui.UI

	tick         uint64
	status       string
	statusExpiry time.Time
	showPhysics  bool

	debug *debugTools
}

func NewGame(cfg config) *Game {
	bundle, err := prefabs.LoadBundle()
	if err != nil {
		log.Fatalf("prefabs: %v", err)
	}
	rules, err := system.LoadCropRules(bundle.Crops.Rules, cfg.seed)
	if err != nil {
		log.Fatalf("crop rules: %v", err)
	}

	store, err := save.Open(cfg.saveApp)
	if err != nil {
		// Play still works; saving and loading report the missing store.
		log.Printf("save: %v", err)
	}

	g := &Game{
		cfg:     cfg,
		machine: gamestate.New(gamestate.LoadingAtlases),
		bundle:  bundle,
		rules:   rules,
		store:   store,
	}
	g.wireStates()
	if cfg.debug {
		g.debug = newDebugTools(g, cfg.debugAddr)
	}

	g.loadAtlases()
	return g
}

func (g *Game) wireStates() {
	m := g.machine
	m.OnEnter(gamestate.LoadingMainMenu, func(gamestate.State) {
		g.ui = NewMainMenuUI(g)
		g.request(gamestate.MainMenu)
	})
	m.OnEnter(gamestate.Unload, func(gamestate.State) {
		g.unload()
		g.request(m.UnloadNext())
	})
	m.OnEnter(gamestate.LoadingLevel, func(gamestate.State) {
		g.pendingSave = nil
		g.request(gamestate.LoadingGame)
	})
	m.OnEnter(gamestate.LoadingSave, func(gamestate.State) {
		g.pendingSave = g.latestSave()
		g.request(gamestate.LoadingGame)
	})
	m.OnEnter(gamestate.LoadingGame, func(gamestate.State) {
		if err := g.loadGame(); err != nil {
			log.Fatalf("level %s: %v", g.levelName(), err)
		}
		g.request(gamestate.LoadingAnimations)
	})
	m.OnEnter(gamestate.LoadingAnimations, func(gamestate.State) {
		if err := entity.RegisterAnimations(g.session.world, g.session.registry, g.bundle.Clips); err != nil {
			log.Fatalf("animations: %v", err)
		}
		g.request(gamestate.LoadingGameMenu)
	})
	m.OnEnter(gamestate.LoadingGameMenu, func(gamestate.State) {
		g.ui = nil
		g.request(gamestate.Game)
	})
	m.OnEnter(gamestate.Game, func(gamestate.State) {
		g.ui = nil
	})
	m.OnEnter(gamestate.Paused, func(gamestate.State) {
		g.ui = NewPauseUI(g)
	})
	m.OnEnter(gamestate.Inventory, func(gamestate.State) {
		g.ui = NewInventoryUI(g, g.inventory())
	})
	m.OnEnter(gamestate.Saving, func(gamestate.State) {
		g.saveGame()
		g.request(gamestate.Game)
	})
}

// request queues a transition; a rejected one is a programming error and is
// only logged.
func (g *Game) request(s gamestate.State) {
	if err := g.machine.Request(s); err != nil {
		log.Printf("gamestate: %v", err)
	}
}

func (g *Game) requestUnload(next gamestate.State) {
	if err := g.machine.RequestUnload(next); err != nil {
		log.Printf("gamestate: %v", err)
	}
}

func (g *Game) loadAtlases() {
	atlas, err := assets.NewAtlas(g.bundle.Atlases)
	if err != nil {
		log.Fatalf("atlas: %v", err)
	}
	g.atlas = atlas
	g.request(gamestate.LoadingMainMenu)
}

func (g *Game) levelName() string {
	if g.pendingSave != nil && g.pendingSave.Level != "" {
		return g.pendingSave.Level
	}
	return g.cfg.level
}

func (g *Game) latestSave() *save.Data {
	if g.store == nil {
		g.setStatus("No save storage, starting a new game")
		return nil
	}
	d, err := g.store.Latest()
	if errors.Is(err, save.ErrNotFound) {
		g.setStatus("No saves yet, starting a new game")
		return nil
	}
	if err != nil {
		log.Printf("save: %v", err)
		g.setStatus("Could not read saves")
		return nil
	}
	return d
}

func (g *Game) loadGame() error {
	lvl, err := levels.Load(g.levelName())
	if err != nil {
		return err
	}
	rows, err := entity.CropRows(g.bundle.Crops)
	if err != nil {
		return err
	}

	dt := 1.0 / float64(ebiten.TPS())
	s := &session{
		level:    lvl.Name,
		world:    ecs.NewWorld(),
		registry: animation.NewRegistry(),
		events:   animation.NewEvents(),
		physics:  system.NewPhysicsSystem(),
		render:   system.NewRenderSystem(g.atlas),
	}
	s.scheduler = ecs.NewScheduler(
		system.NewAnimationSystem(s.registry, s.events, dt),
		system.NewInputSystem(nil),
		system.NewMovementSystem(s.events, s.registry, s.physics, dt),
		s.physics,
		system.NewGateSystem(s.events, s.registry, s.physics),
		system.NewCropSystem(g.rules, s.physics, rows, g.bundle.Crops.KillChance, dt),
		system.NewPerspectiveSystem(),
		system.NewCameraSystem(),
	)
	if g.debug != nil {
		s.scheduler.Observe(g.debug.server.ObserveSystem)
	}

	err = entity.LoadLevelToWorld(s.world, lvl, entity.LevelOptions{
		Bundle:  g.bundle,
		Planter: g.rules,
		ViewW:   common.BaseWidth,
		ViewH:   common.BaseHeight,
	})
	if err != nil {
		return err
	}
	if g.pendingSave != nil {
		if err := save.Apply(s.world, g.pendingSave); err != nil {
			return err
		}
		g.setStatus(fmt.Sprintf("Loaded save from %s", g.pendingSave.Date.Format(time.Kitchen)))
		g.pendingSave = nil
	}
	g.session = s
	return nil
}

func (g *Game) unload() {
	if g.session != nil {
		g.session.physics.Reset()
	}
	g.session = nil
	g.ui = nil
}

func (g *Game) saveGame() {
	if g.store == nil || g.session == nil {
		g.setStatus("Saving is unavailable")
		return
	}
	d, err := save.Capture(g.session.world, g.session.level)
	if err != nil {
		log.Printf("save: %v", err)
		g.setStatus("Save failed")
		return
	}
	meta, err := g.store.Save(d)
	switch {
	case errors.Is(err, save.ErrSlotsFull):
		g.setStatus(fmt.Sprintf("All %d save slots are used", save.MaxSlots))
	case err != nil:
		log.Printf("save: %v", err)
		g.setStatus("Save failed")
	default:
		g.setStatus("Saved to " + meta.Name)
	}
}

// inventory copies the player's harvested items.
func (g *Game) inventory() map[string]int {
	items := make(map[string]int)
	if g.session == nil {
		return items
	}
	w := g.session.world
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind()); ok {
			for k, v := range inv.Items {
				items[k] = v
			}
		}
	}
	return items
}

func (g *Game) setStatus(msg string) {
	log.Println(msg)
	g.status = msg
	g.statusExpiry = time.Now().Add(statusDuration)
}

func (g *Game) Update() error {
	start := time.Now()
	if _, err := g.machine.Apply(); err != nil {
		log.Printf("%v", err)
	}

	switch g.machine.Current() {
	case gamestate.Exit:
		return ebiten.Termination
	case gamestate.MainMenu:
		g.updateUI()
	case gamestate.Paused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.request(gamestate.Game)
		}
		g.updateUI()
	case gamestate.Inventory:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyI) {
			g.request(gamestate.Game)
		}
		g.updateUI()
	case gamestate.Game:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			g.request(gamestate.Paused)
		case inpututil.IsKeyJustPressed(ebiten.KeyI):
			g.request(gamestate.Inventory)
		default:
			g.tick++
			g.session.scheduler.Update(g.session.world)
		}
	}

	if g.debug != nil {
		g.debug.update(time.Since(start))
	}
	return nil
}

func (g *Game) updateUI() {
	if g.ui != nil {
		g.ui.Update()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.session != nil {
		g.session.render.Draw(g.session.world, screen)
		if g.showPhysics {
			system.DrawPhysicsDebug(g.session.physics.Space(), g.session.world, screen)
			system.DrawPlayerDebug(g.session.world, g.session.registry, screen)
		}
	}
	if g.ui != nil {
		g.ui.Draw(screen)
	}
	if g.status != "" && time.Now().Before(g.statusExpiry) {
		ebitenutil.DebugPrintAt(screen, g.status, 4, common.BaseHeight-16)
	}
	if g.debug != nil {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  TPS: %.0f  FPS: %.0f", g.machine.Current(), ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
