// Package gamestate is the top-level state machine of the game: loading
// steps, menus and play, with an explicit transition table.
package gamestate

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("gamestate: invalid transition")

type State int

const (
	LoadingAtlases State = iota
	LoadingMainMenu
	MainMenu
	Unload
	LoadingLevel
	LoadingGame
	LoadingSave
	LoadingAnimations
	LoadingGameMenu
	Game
	Paused
	Inventory
	Saving
	Exit
)

var stateNames = [...]string{
	LoadingAtlases:    "loading_atlases",
	LoadingMainMenu:   "loading_main_menu",
	MainMenu:          "main_menu",
	Unload:            "unload",
	LoadingLevel:      "loading_level",
	LoadingGame:       "loading_game",
	LoadingSave:       "loading_save",
	LoadingAnimations: "loading_animations",
	LoadingGameMenu:   "loading_game_menu",
	Game:              "game",
	Paused:            "paused",
	Inventory:         "inventory",
	Saving:            "saving",
	Exit:              "exit",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Loading reports whether the state is one of the chained loading steps.
func (s State) Loading() bool {
	switch s {
	case LoadingAtlases, LoadingMainMenu, Unload, LoadingLevel, LoadingGame, LoadingSave, LoadingAnimations, LoadingGameMenu, Saving:
		return true
	}
	return false
}

var transitions = map[State][]State{
	LoadingAtlases:    {LoadingMainMenu},
	LoadingMainMenu:   {MainMenu},
	MainMenu:          {Unload, Exit},
	LoadingLevel:      {LoadingGame},
	LoadingSave:       {LoadingGame},
	LoadingGame:       {LoadingAnimations},
	LoadingAnimations: {LoadingGameMenu},
	LoadingGameMenu:   {Game},
	Game:              {Paused, Inventory, Saving},
	Paused:            {Game, Unload, Exit},
	Inventory:         {Game},
	Saving:            {Game},
}

// unloadTargets lists where an unload may continue to, per state that may
// unload.
var unloadTargets = map[State][]State{
	MainMenu: {LoadingLevel, LoadingSave},
	Paused:   {LoadingMainMenu},
}

// maxChain bounds how many transitions one Apply call follows.
const maxChain = 64

type Machine struct {
	current    State
	unloadNext State
	queue      []request
	onEnter    map[State][]func(from State)
	onExit     map[State][]func(to State)
}

type request struct {
	to   State
	next State
}

func New(initial State) *Machine {
	return &Machine{
		current: initial,
		onEnter: make(map[State][]func(State)),
		onExit:  make(map[State][]func(State)),
	}
}

func (m *Machine) Current() State {
	return m.current
}

// UnloadNext is the state the pending or current unload continues to.
func (m *Machine) UnloadNext() State {
	return m.unloadNext
}

// Pending is the number of queued transitions.
func (m *Machine) Pending() int {
	return len(m.queue)
}

func (m *Machine) OnEnter(s State, fn func(from State)) {
	m.onEnter[s] = append(m.onEnter[s], fn)
}

func (m *Machine) OnExit(s State, fn func(to State)) {
	m.onExit[s] = append(m.onExit[s], fn)
}

// tail is the state the machine will be in once the queue is applied.
func (m *Machine) tail() (State, State) {
	if n := len(m.queue); n > 0 {
		return m.queue[n-1].to, m.queue[n-1].next
	}
	return m.current, m.unloadNext
}

// Request queues a transition. It is checked against the state the machine
// will be in after the already queued transitions.
func (m *Machine) Request(to State) error {
	from, next := m.tail()
	if to == Unload {
		return fmt.Errorf("%w: %s -> %s needs a next state", ErrInvalidTransition, from, to)
	}
	if from == Unload {
		if to != next {
			return fmt.Errorf("%w: unload continues to %s, not %s", ErrInvalidTransition, next, to)
		}
	} else if !allowed(transitions[from], to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	m.queue = append(m.queue, request{to: to})
	return nil
}

// RequestUnload queues an unload that continues to next.
func (m *Machine) RequestUnload(next State) error {
	from, _ := m.tail()
	if !allowed(transitions[from], Unload) || !allowed(unloadTargets[from], next) {
		return fmt.Errorf("%w: %s -> unload -> %s", ErrInvalidTransition, from, next)
	}
	m.queue = append(m.queue, request{to: Unload, next: next})
	return nil
}

// Apply performs queued transitions in order, running exit then enter
// callbacks. Callbacks may queue further transitions; they are applied in the
// same call. It returns the number of transitions made.
func (m *Machine) Apply() (int, error) {
	n := 0
	for len(m.queue) > 0 {
		if n >= maxChain {
			m.queue = nil
			return n, fmt.Errorf("gamestate: more than %d chained transitions from %s", maxChain, m.current)
		}
		req := m.queue[0]
		m.queue = m.queue[1:]

		from := m.current
		for _, fn := range m.onExit[from] {
			fn(req.to)
		}
		m.current = req.to
		if req.to == Unload {
			m.unloadNext = req.next
		}
		n++
		for _, fn := range m.onEnter[req.to] {
			fn(from)
		}
	}
	return n, nil
}

func allowed(list []State, s State) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
