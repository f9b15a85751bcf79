package animation

import "math"

// epsilon absorbs float drift when elapsed lands on a frame boundary.
const epsilon = 1e-9

// state is the playback cursor of one clip on one entity. elapsed is measured
// from the start of the current cycle.
type state struct {
	cursor    int
	elapsed   float64
	remaining int
	finished  bool
}

func newState(c *Clip) state {
	return state{remaining: c.Repeat}
}

func (s *state) rewind(c *Clip) {
	*s = newState(c)
}

// advance moves the cursor by dt seconds. It reports true when the clip
// finished during this call.
func (s *state) advance(c *Clip, dt float64) bool {
	if s.finished {
		return false
	}
	if dt > 0 {
		s.elapsed += dt
	}
	total := c.Duration()
	for s.elapsed+epsilon >= total {
		if c.cycles() {
			if total <= 0 {
				s.cursor, s.elapsed = 0, 0
				return false
			}
			s.elapsed = math.Mod(s.elapsed, total)
			if total-s.elapsed <= epsilon {
				s.elapsed = 0
			}
			break
		}
		s.remaining--
		if s.remaining <= 0 {
			s.remaining = 0
			s.finished = true
			s.cursor = len(c.Frames) - 1
			s.elapsed = 0
			return true
		}
		s.elapsed -= total
		if s.elapsed < 0 {
			s.elapsed = 0
		}
	}
	s.cursor = c.frameAt(s.elapsed)
	return false
}
