package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := loadConfig()

	if cfg.baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w*2/3, h*2/3)
	ebiten.SetWindowTitle("rustyfarm")

	game := NewGame(cfg)
	if game.debug != nil {
		defer game.debug.close()
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
