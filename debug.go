package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rustyfarm/debugserver"
	"github.com/milk9111/rustyfarm/ecs"
	"github.com/milk9111/rustyfarm/ecs/animation"
	"github.com/milk9111/rustyfarm/ecs/system"
	"github.com/milk9111/rustyfarm/gamestate"
	"github.com/milk9111/rustyfarm/prefabs"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// debugTools are only created with -debug: the HTTP debug server, prefab hot
// reload and the clipboard snapshot key.
type debugTools struct {
	game        *Game
	server      *debugserver.Server
	watcher     *prefabs.Watcher
	clipboardOK bool
}

func newDebugTools(g *Game, addr string) *debugTools {
	d := &debugTools{game: g, server: debugserver.New(debugserver.Config{})}
	d.server.Start(addr)

	for s := gamestate.LoadingAtlases; s <= gamestate.Exit; s++ {
		g.machine.OnEnter(s, func(gamestate.State) {
			d.server.ObserveTransition(s.String())
		})
	}

	dirs := []string{prefabs.DiskDir, filepath.Join(prefabs.DiskDir, "scripts")}
	if _, err := os.Stat(prefabs.DiskDir); err == nil {
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("prefabs: watcher: %v", err)
		} else {
			d.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: %v", err)
	} else {
		d.clipboardOK = true
	}
	return d
}

func (d *debugTools) update(tickDuration time.Duration) {
	g := d.game
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showPhysics = !g.showPhysics
	}

	d.reloadPrefabs()

	var (
		w   *ecs.World
		reg *animation.Registry
	)
	if g.session != nil {
		w, reg = g.session.world, g.session.registry
	}
	snap := debugserver.Capture(w, reg, g.machine.Current().String(), g.tick)
	d.server.Publish(snap)
	d.server.ObserveTick(tickDuration)

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		d.copySnapshot(snap)
	}
}

// reloadPrefabs swaps in edited prefabs. A running level keeps its entities;
// the new data applies from the next level load.
func (d *debugTools) reloadPrefabs() {
	if d.watcher == nil {
		return
	}
	select {
	case err := <-d.watcher.Errors:
		log.Printf("prefabs: watcher: %v", err)
	default:
	}
	changed := d.watcher.Poll()
	if len(changed) == 0 {
		return
	}

	bundle, err := prefabs.LoadBundle()
	if err != nil {
		log.Printf("prefabs: reload %v: %v", changed, err)
		return
	}
	rules, err := system.LoadCropRules(bundle.Crops.Rules, d.game.cfg.seed)
	if err != nil {
		log.Printf("prefabs: reload %v: %v", changed, err)
		return
	}
	d.game.bundle = bundle
	d.game.rules = rules
	log.Printf("prefabs: reloaded %v", changed)
}

func (d *debugTools) copySnapshot(snap *debugserver.Snapshot) {
	if !d.clipboardOK {
		d.game.setStatus("Clipboard unavailable")
		return
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	d.game.setStatus("Copied snapshot to clipboard")
}

func (d *debugTools) close() {
	if d.watcher != nil {
		if err := d.watcher.Close(); err != nil {
			log.Printf("prefabs: watcher: %v", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.server.Shutdown(ctx); err != nil {
		log.Printf("debugserver: shutdown: %v", err)
	}
}
