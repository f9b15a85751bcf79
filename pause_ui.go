package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/milk9111/rustyfarm/gamestate"
)

// NewPauseUI builds the in-game menu. Saving goes back through Game so the
// save is taken from a running level.
func NewPauseUI(g *Game) *ebitenui.UI {
	return newMenuUI("Paused", nil,
		menuButton{"Resume", func() { g.request(gamestate.Game) }},
		menuButton{"Save", func() {
			g.request(gamestate.Game)
			g.request(gamestate.Saving)
		}},
		menuButton{"Main Menu", func() { g.requestUnload(gamestate.LoadingMainMenu) }},
		menuButton{"Quit", func() { g.request(gamestate.Exit) }},
	)
}
