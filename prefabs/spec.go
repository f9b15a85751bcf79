package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/rustyfarm/common"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	OffsetY   float64 `yaml:"offset_y"`
	SensorPad float64 `yaml:"sensor_pad"`
	Solid     bool    `yaml:"solid"`
}

type SpriteSpec struct {
	Sheet   string  `yaml:"sheet"`
	Index   int     `yaml:"index"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type PerspectiveSpec struct {
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`
}

type PlayerSpec struct {
	Name        string           `yaml:"name"`
	WalkSpeed   float64          `yaml:"walk_speed"`
	RunSpeed    float64          `yaml:"run_speed"`
	Reach       float64          `yaml:"reach"`
	Facing      common.Direction `yaml:"facing"`
	Collider    ColliderSpec     `yaml:"collider"`
	Sprite      SpriteSpec       `yaml:"sprite"`
	Clips       string           `yaml:"clips"`
	Idle        string           `yaml:"idle"`
	WalkClip    string           `yaml:"walk_clip"`
	RunClip     string           `yaml:"run_clip"`
	HarvestClip string           `yaml:"harvest_clip"`
	RenderLayer RenderLayerSpec  `yaml:"render_layer"`
	Perspective PerspectiveSpec  `yaml:"perspective"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type GateSpec struct {
	Collider    ColliderSpec    `yaml:"collider"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	Clips       string          `yaml:"clips"`
	OpenClip    string          `yaml:"open_clip"`
	CloseClip   string          `yaml:"close_clip"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
	Perspective PerspectiveSpec `yaml:"perspective"`
}

func LoadGateSpec() (*GateSpec, error) {
	spec, err := LoadSpec[GateSpec]("gate.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CropTypeSpec struct {
	Row         int     `yaml:"row"`
	MinDuration float64 `yaml:"min_duration"`
	MaxDuration float64 `yaml:"max_duration"`
}

type CropsSpec struct {
	Sheet       string                  `yaml:"sheet"`
	Stages      int                     `yaml:"stages"`
	KillChance  float64                 `yaml:"kill_chance"`
	Rules       string                  `yaml:"rules"`
	Collider    ColliderSpec            `yaml:"collider"`
	Sprite      SpriteSpec              `yaml:"sprite"`
	RenderLayer RenderLayerSpec         `yaml:"render_layer"`
	Types       map[string]CropTypeSpec `yaml:"types"`
}

func LoadCropsSpec() (*CropsSpec, error) {
	spec, err := LoadSpec[CropsSpec]("crops.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Stages <= 0 {
		return nil, fmt.Errorf("prefabs: crops.yaml: stages must be positive, got %d", spec.Stages)
	}
	return &spec, nil
}

type FenceSpec struct {
	Sheet       string          `yaml:"sheet"`
	Index       int             `yaml:"index"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
	Perspective PerspectiveSpec `yaml:"perspective"`
}

type CameraSpec struct {
	Target     string  `yaml:"target"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type WorldSpec struct {
	Camera CameraSpec `yaml:"camera"`
	Fence  FenceSpec  `yaml:"fence"`
	Ground SpriteSpec `yaml:"ground"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SheetSpec struct {
	Name  string     `yaml:"name"`
	Image string     `yaml:"image"`
	Cols  int        `yaml:"cols"`
	Rows  int        `yaml:"rows"`
	CellW int        `yaml:"cell_w"`
	CellH int        `yaml:"cell_h"`
	Color *YAMLColor `yaml:"color"`
}

type AtlasesSpec struct {
	Sheets []SheetSpec `yaml:"sheets"`
}

func LoadAtlasesSpec() (*AtlasesSpec, error) {
	spec, err := LoadSpec[AtlasesSpec]("atlases.yaml")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(spec.Sheets))
	for _, s := range spec.Sheets {
		if s.Name == "" || s.Cols <= 0 || s.Rows <= 0 {
			return nil, fmt.Errorf("prefabs: atlases.yaml: sheet %q needs a name and a positive grid", s.Name)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("prefabs: atlases.yaml: duplicate sheet %q", s.Name)
		}
		seen[s.Name] = true
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %s: %w", value.Value, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	c.Color = color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return nil
}
