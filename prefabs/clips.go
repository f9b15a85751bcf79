package prefabs

import (
	"fmt"
	"sort"

	"github.com/milk9111/rustyfarm/common"
	"github.com/milk9111/rustyfarm/ecs/animation"
)

type GridSpec struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// ClipSpec is the yaml form of animation.Clip. Directions maps facing names
// to 0-based sheet rows.
type ClipSpec struct {
	Kind       string         `yaml:"kind"`
	Sheet      string         `yaml:"sheet"`
	Grid       GridSpec       `yaml:"grid"`
	Frames     []int          `yaml:"frames"`
	Duration   float64        `yaml:"duration"`
	Durations  []float64      `yaml:"durations"`
	Directions map[string]int `yaml:"directions"`
	Row        int            `yaml:"row"`
	Loop       bool           `yaml:"loop"`
	Locked     bool           `yaml:"locked"`
	Repeat     int            `yaml:"repeat"`
}

// ClipsSpec groups clips into named sets; entities reference a set.
type ClipsSpec struct {
	Sets map[string]map[string]ClipSpec `yaml:"sets"`
}

func LoadClipsSpec() (*ClipsSpec, error) {
	spec, err := LoadSpec[ClipsSpec]("clips.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s ClipSpec) Clip() (*animation.Clip, error) {
	kind, err := animation.ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}
	c := &animation.Clip{
		Kind:           kind,
		Sheet:          s.Sheet,
		Grid:           animation.Grid{Cols: s.Grid.Cols, Rows: s.Grid.Rows},
		Frames:         s.Frames,
		FrameDuration:  s.Duration,
		FrameDurations: s.Durations,
		Row:            s.Row,
		Loop:           s.Loop,
		Locked:         s.Locked,
		Repeat:         s.Repeat,
	}
	if len(s.Directions) > 0 {
		c.Rows = make(animation.RowTable, len(s.Directions))
		for name, row := range s.Directions {
			d, err := common.ParseDirection(name)
			if err != nil {
				return nil, err
			}
			c.Rows[d] = row
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NamedClip pairs a clip with its registry name.
type NamedClip struct {
	Name string
	Clip *animation.Clip
}

// Set converts one clip set, sorted by name so registration order is stable.
func (s *ClipsSpec) Set(name string) ([]NamedClip, error) {
	set, ok := s.Sets[name]
	if !ok {
		return nil, fmt.Errorf("prefabs: clip set %q not defined", name)
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]NamedClip, 0, len(names))
	for _, n := range names {
		c, err := set[n].Clip()
		if err != nil {
			return nil, fmt.Errorf("prefabs: clip %s/%s: %w", name, n, err)
		}
		out = append(out, NamedClip{Name: n, Clip: c})
	}
	return out, nil
}
