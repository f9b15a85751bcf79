package main

import (
	"fmt"
	"sort"

	"github.com/ebitenui/ebitenui"
	"github.com/milk9111/rustyfarm/gamestate"
)

func NewInventoryUI(g *Game, items map[string]int) *ebitenui.UI {
	return newMenuUI("Inventory", inventoryLines(items),
		menuButton{"Close", func() { g.request(gamestate.Game) }},
	)
}

func inventoryLines(items map[string]int) []string {
	names := make([]string, 0, len(items))
	for name, n := range items {
		if n > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return []string{"Nothing harvested yet"}
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%-10s x%d", name, items[name]))
	}
	return lines
}
