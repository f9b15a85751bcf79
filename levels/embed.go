package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is loaded when no level is named on the command line.
const Default = "farm"

// Level is a tile map plus placed entities. Layers are row-major with -1 for
// empty cells; a layer flagged Physics turns every filled cell into a solid
// static collider.
type Level struct {
	Name      string      `json:"-"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  int         `json:"tile_size"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Name    string `json:"name"`
	Physics bool   `json:"physics"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

func Load(name string) (*Level, error) {
	if name == "" {
		name = Default
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	lvl := Level{Name: strings.TrimSuffix(name, ".json")}
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 || l.TileSize <= 0 {
		return fmt.Errorf("bad dimensions %dx%d tile %d", l.Width, l.Height, l.TileSize)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d cells, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

// PixelSize returns the level extent in world units.
func (l *Level) PixelSize() (float64, float64) {
	return float64(l.Width * l.TileSize), float64(l.Height * l.TileSize)
}

// Tile returns the tile index at a cell, or -1.
func (l *Level) Tile(layer, x, y int) int {
	if layer < 0 || layer >= len(l.Layers) || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return -1
	}
	return l.Layers[layer][y*l.Width+x]
}

func (l *Level) IsPhysicsLayer(layer int) bool {
	return layer >= 0 && layer < len(l.LayerMeta) && l.LayerMeta[layer].Physics
}

// EntitiesOfType returns the placed entities with the given type.
func (l *Level) EntitiesOfType(kind string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

// Prop returns a string property.
func (e Entity) Prop(key string) string {
	v, ok := e.Props[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
