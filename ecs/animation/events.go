package animation

import "github.com/milk9111/rustyfarm/ecs"

type EventKind int

const (
	EventPlay EventKind = iota
	EventReset
)

// Event is a one-shot request against the registry.
type Event struct {
	Kind   EventKind
	Clip   string
	Entity ecs.Entity
}

// Events is the channel gameplay systems write to. The driver drains it at the
// start of the next tick.
type Events struct {
	queue ecs.EventQueue[Event]
}

func NewEvents() *Events {
	return &Events{}
}

// Send requests that clip start playing on e.
func (ev *Events) Send(clip string, e ecs.Entity) {
	ev.queue.Push(Event{Kind: EventPlay, Clip: clip, Entity: e})
}

// Reset requests that clip be rewound on e, releasing it if active.
func (ev *Events) Reset(clip string, e ecs.Entity) {
	ev.queue.Push(Event{Kind: EventReset, Clip: clip, Entity: e})
}

func (ev *Events) Drain() []Event {
	return ev.queue.Drain()
}

func (ev *Events) Pending() int {
	return ev.queue.Len()
}
