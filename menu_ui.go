package main

import (
	"github.com/ebitenui/ebitenui"
	"github.com/milk9111/rustyfarm/gamestate"
)

// NewMainMenuUI offers a new game, the latest save, or quitting.
func NewMainMenuUI(g *Game) *ebitenui.UI {
	return newMenuUI("Rusty Farm", nil,
		menuButton{"Play", func() { g.requestUnload(gamestate.LoadingLevel) }},
		menuButton{"Load", func() { g.requestUnload(gamestate.LoadingSave) }},
		menuButton{"Exit", func() { g.request(gamestate.Exit) }},
	)
}
