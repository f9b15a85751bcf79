package animation

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/milk9111/rustyfarm/ecs"
	"golang.org/x/time/rate"
)

// Pose is the per-entity input the registry needs from the world each tick.
type Pose struct {
	Facing Direction
	Moving bool
}

// PoseFunc looks up the pose of an entity. Entities without one face Down and
// stand still.
type PoseFunc func(e ecs.Entity) Pose

// Output is the sprite state derived for one entity on one tick.
type Output struct {
	Entity ecs.Entity
	Clip   string
	Sheet  string
	Grid   Grid
	Index  int
	FlipX  bool
}

// Stats is a snapshot of registry counters.
type Stats struct {
	Entities     int
	Clips        int
	Active       int
	Activations  uint64
	Dropped      uint64
	Unregistered uint64
	Finished     uint64
}

type entry struct {
	clip  *Clip
	state state
}

type track struct {
	clips  map[string]*entry
	active string
	idle   string
}

// Registry owns every registered clip and the active clip per entity. It is
// mutated only by the per-tick driver; other systems read it.
type Registry struct {
	tracks  map[ecs.Entity]*track
	limiter *rate.Limiter
	stats   Stats
	logf    func(format string, args ...any)
}

func NewRegistry() *Registry {
	return &Registry{
		tracks:  make(map[ecs.Entity]*track),
		limiter: rate.NewLimiter(rate.Every(time.Second), 4),
		logf:    log.Printf,
	}
}

// SetLogger replaces the diagnostic sink. A nil func silences diagnostics.
func (r *Registry) SetLogger(logf func(format string, args ...any)) {
	r.logf = logf
}

// Register stores a validated copy of clip under name. Registering a name the
// entity already has is a no-op so setup can run more than once.
func (r *Registry) Register(e ecs.Entity, name string, clip *Clip) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidClip)
	}
	if err := clip.Validate(); err != nil {
		return fmt.Errorf("animation: register %s on %s: %w", name, e, err)
	}
	tr, ok := r.tracks[e]
	if !ok {
		tr = &track{clips: make(map[string]*entry)}
		r.tracks[e] = tr
	}
	if _, exists := tr.clips[name]; exists {
		return nil
	}
	c := clip.clone()
	tr.clips[name] = &entry{clip: c, state: newState(c)}
	return nil
}

// IsRegistered reports whether e has at least one clip.
func (r *Registry) IsRegistered(e ecs.Entity) bool {
	tr, ok := r.tracks[e]
	return ok && len(tr.clips) > 0
}

// IsActive reports whether e has a clip playing. ok is false when e has no
// registered clips.
func (r *Registry) IsActive(e ecs.Entity) (active bool, ok bool) {
	tr, found := r.tracks[e]
	if !found || len(tr.clips) == 0 {
		return false, false
	}
	return tr.active != "", true
}

// ActiveClip returns the name of the clip driving e, if any.
func (r *Registry) ActiveClip(e ecs.Entity) (string, bool) {
	tr, ok := r.tracks[e]
	if !ok || tr.active == "" {
		return "", false
	}
	return tr.active, true
}

// Frame returns the cursor position of a clip within its frame list.
func (r *Registry) Frame(e ecs.Entity, name string) (int, bool) {
	en := r.entry(e, name)
	if en == nil {
		return 0, false
	}
	return en.state.cursor, true
}

// Finished reports whether a non-cycling clip ran out of repeats.
func (r *Registry) Finished(e ecs.Entity, name string) bool {
	en := r.entry(e, name)
	return en != nil && en.state.finished
}

// Clip returns a copy of a registered clip definition.
func (r *Registry) Clip(e ecs.Entity, name string) (Clip, bool) {
	en := r.entry(e, name)
	if en == nil {
		return Clip{}, false
	}
	return *en.clip.clone(), true
}

// SetIdle names the clip whose first frame is shown while nothing plays.
func (r *Registry) SetIdle(e ecs.Entity, name string) error {
	if r.entry(e, name) == nil {
		return fmt.Errorf("animation: idle %s on %s: clip not registered", name, e)
	}
	r.tracks[e].idle = name
	return nil
}

// Remove forgets every clip of e.
func (r *Registry) Remove(e ecs.Entity) {
	delete(r.tracks, e)
}

// Prune removes entities for which alive reports false.
func (r *Registry) Prune(alive func(ecs.Entity) bool) int {
	var n int
	for e := range r.tracks {
		if !alive(e) {
			delete(r.tracks, e)
			n++
		}
	}
	return n
}

func (r *Registry) Stats() Stats {
	s := r.stats
	s.Entities = len(r.tracks)
	for _, tr := range r.tracks {
		s.Clips += len(tr.clips)
		if tr.active != "" {
			s.Active++
		}
	}
	return s
}

func (r *Registry) entry(e ecs.Entity, name string) *entry {
	tr, ok := r.tracks[e]
	if !ok {
		return nil
	}
	return tr.clips[name]
}

func (r *Registry) diag(format string, args ...any) {
	if r.logf == nil || !r.limiter.Allow() {
		return
	}
	r.logf("animation: "+format, args...)
}

// Apply consumes drained events in order.
func (r *Registry) Apply(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventPlay:
			r.activate(ev.Entity, ev.Clip)
		case EventReset:
			r.reset(ev.Entity, ev.Clip)
		}
	}
}

func (r *Registry) activate(e ecs.Entity, name string) bool {
	tr, ok := r.tracks[e]
	if !ok {
		r.stats.Unregistered++
		r.diag("play %s on %s: entity has no clips", name, e)
		return false
	}
	next, ok := tr.clips[name]
	if !ok {
		r.stats.Unregistered++
		r.diag("play %s on %s: clip not registered", name, e)
		return false
	}
	if tr.active == name {
		return true
	}
	if tr.active != "" {
		cur := tr.clips[tr.active]
		if cur.clip.Locked && !cur.state.finished {
			r.stats.Dropped++
			return false
		}
	}
	next.state.rewind(next.clip)
	tr.active = name
	r.stats.Activations++
	return true
}

func (r *Registry) reset(e ecs.Entity, name string) {
	tr, ok := r.tracks[e]
	if !ok {
		r.stats.Unregistered++
		r.diag("reset %s on %s: entity has no clips", name, e)
		return
	}
	en, ok := tr.clips[name]
	if !ok {
		r.stats.Unregistered++
		r.diag("reset %s on %s: clip not registered", name, e)
		return
	}
	en.state.rewind(en.clip)
	if tr.active == name {
		tr.active = ""
	}
}

// Tick advances every active clip by dt seconds and returns the sprite output
// of every entity that has an active or idle clip, ordered by entity.
func (r *Registry) Tick(dt float64, pose PoseFunc) []Output {
	ents := make([]ecs.Entity, 0, len(r.tracks))
	for e := range r.tracks {
		ents = append(ents, e)
	}
	slices.Sort(ents)

	out := make([]Output, 0, len(ents))
	for _, e := range ents {
		tr := r.tracks[e]
		p := Pose{Facing: Down}
		if pose != nil {
			p = pose(e)
		}

		if tr.active != "" {
			en := tr.clips[tr.active]
			if en.clip.Kind == KindTransform && !p.Moving {
				en.state.cursor, en.state.elapsed = 0, 0
			} else if en.state.advance(en.clip, dt) {
				r.stats.Finished++
				tr.active = ""
			}
		}

		name, column := tr.active, 0
		if name != "" {
			en := tr.clips[name]
			column = en.clip.Frames[en.state.cursor]
		} else if tr.idle != "" {
			name = tr.idle
			column = tr.clips[name].clip.Frames[0]
		} else {
			continue
		}

		c := tr.clips[name].clip
		row, flip := c.row(p.Facing)
		out = append(out, Output{
			Entity: e,
			Clip:   name,
			Sheet:  c.Sheet,
			Grid:   c.Grid,
			Index:  row*c.Grid.Cols + column,
			FlipX:  flip,
		})
	}
	return out
}
