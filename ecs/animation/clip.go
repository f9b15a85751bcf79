package animation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/rustyfarm/common"
)

// ErrInvalidClip is wrapped by every clip validation failure.
var ErrInvalidClip = errors.New("animation: invalid clip")

// Direction is the facing used to pick a row on directional sheets.
type Direction = common.Direction

const (
	Down  = common.Down
	Up    = common.Up
	Left  = common.Left
	Right = common.Right
)

// RowTable maps a facing to a 0-based sheet row.
type RowTable map[Direction]int

// Kind selects how a clip is driven.
type Kind int

const (
	// KindTimed clips advance on time and pick their row from facing.
	KindTimed Kind = iota
	// KindLinear clips advance on time on a single row.
	KindLinear
	// KindTransform clips advance only while the entity moves and pick
	// their row from facing.
	KindTransform
)

func (k Kind) String() string {
	switch k {
	case KindTimed:
		return "timed"
	case KindLinear:
		return "linear"
	case KindTransform:
		return "transform"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "timed", "":
		return KindTimed, nil
	case "linear", "linear_timed":
		return KindLinear, nil
	case "transform":
		return KindTransform, nil
	}
	return KindTimed, fmt.Errorf("animation: unknown clip kind %q", s)
}

// Grid is the cell layout of a sprite sheet.
type Grid struct {
	Cols int
	Rows int
}

// Clip describes one named animation. Either FrameDuration applies to every
// frame or FrameDurations holds one entry per frame. Durations <= 0 are
// instantaneous. Repeat counts full cycles for non-looping clips; 0 repeats
// forever.
type Clip struct {
	Kind           Kind
	Sheet          string
	Grid           Grid
	Frames         []int
	FrameDuration  float64
	FrameDurations []float64
	Rows           RowTable
	Row            int
	Loop           bool
	Locked         bool
	Repeat         int
}

// Validate reports the first structural problem with the clip.
func (c *Clip) Validate() error {
	switch {
	case c == nil:
		return fmt.Errorf("%w: nil clip", ErrInvalidClip)
	case len(c.Frames) == 0:
		return fmt.Errorf("%w: no frames", ErrInvalidClip)
	case c.FrameDurations != nil && len(c.FrameDurations) != len(c.Frames):
		return fmt.Errorf("%w: %d frames but %d durations", ErrInvalidClip, len(c.Frames), len(c.FrameDurations))
	case c.Grid.Cols <= 0 || c.Grid.Rows <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidClip, c.Grid.Cols, c.Grid.Rows)
	case c.Repeat < 0:
		return fmt.Errorf("%w: negative repeat %d", ErrInvalidClip, c.Repeat)
	case c.Sheet == "":
		return fmt.Errorf("%w: no sheet", ErrInvalidClip)
	}
	for i, f := range c.Frames {
		if f < 0 || f >= c.Grid.Cols {
			return fmt.Errorf("%w: frame %d column %d outside %d columns", ErrInvalidClip, i, f, c.Grid.Cols)
		}
	}
	if c.directional() {
		for d, row := range c.Rows {
			if row < 0 || row >= c.Grid.Rows {
				return fmt.Errorf("%w: %s row %d outside %d rows", ErrInvalidClip, d, row, c.Grid.Rows)
			}
		}
	} else if c.Row < 0 || c.Row >= c.Grid.Rows {
		return fmt.Errorf("%w: row %d outside %d rows", ErrInvalidClip, c.Row, c.Grid.Rows)
	}
	return nil
}

func (c *Clip) directional() bool {
	return c.Kind != KindLinear && len(c.Rows) > 0
}

// cycles reports whether the clip wraps instead of finishing.
func (c *Clip) cycles() bool {
	return c.Loop || c.Repeat == 0
}

func (c *Clip) duration(i int) float64 {
	d := c.FrameDuration
	if c.FrameDurations != nil {
		d = c.FrameDurations[i]
	}
	if d < 0 {
		return 0
	}
	return d
}

// Duration is the length of one cycle in seconds.
func (c *Clip) Duration() float64 {
	var total float64
	for i := range c.Frames {
		total += c.duration(i)
	}
	return total
}

// frameAt maps a time offset into the cycle to a frame position.
func (c *Clip) frameAt(t float64) int {
	if c.FrameDurations == nil && c.FrameDuration > 0 {
		i := int((t + epsilon) / c.FrameDuration)
		return min(max(i, 0), len(c.Frames)-1)
	}
	var acc float64
	for i := range c.Frames {
		acc += c.duration(i)
		if t+epsilon < acc {
			return i
		}
	}
	return len(c.Frames) - 1
}

// row resolves the sheet row for a facing. A sheet that only carries one of
// left or right reuses it mirrored.
func (c *Clip) row(facing Direction) (row int, flip bool) {
	if !c.directional() {
		return c.Row, false
	}
	if r, ok := c.Rows[facing]; ok {
		return r, false
	}
	switch facing {
	case Left:
		if r, ok := c.Rows[Right]; ok {
			return r, true
		}
	case Right:
		if r, ok := c.Rows[Left]; ok {
			return r, true
		}
	}
	if r, ok := c.Rows[Down]; ok {
		return r, false
	}
	return c.Row, false
}

func (c *Clip) clone() *Clip {
	out := *c
	out.Frames = append([]int(nil), c.Frames...)
	if c.FrameDurations != nil {
		out.FrameDurations = append([]float64(nil), c.FrameDurations...)
	}
	if c.Rows != nil {
		out.Rows = make(RowTable, len(c.Rows))
		for d, r := range c.Rows {
			out.Rows[d] = r
		}
	}
	return &out
}
