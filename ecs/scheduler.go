package ecs

import (
	"fmt"
	"strings"
	"time"
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. Order matters: the animation
// driver is added first so requests from tick N apply at the start of N+1.
type Scheduler struct {
	systems []System
	observe func(name string, d time.Duration)
	names   []string
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.names = append(s.names, systemName(system))
}

// Observe installs a hook receiving each system's run time.
func (s *Scheduler) Observe(fn func(name string, d time.Duration)) {
	s.observe = fn
}

func (s *Scheduler) Update(w *World) {
	for i, system := range s.systems {
		if s.observe == nil {
			system.Update(w)
			continue
		}
		start := time.Now()
		system.Update(w)
		s.observe(s.names[i], time.Since(start))
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// systemName turns "*system.GateSystem" into "gate".
func systemName(s System) string {
	name := fmt.Sprintf("%T", s)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "System")
	return strings.ToLower(name)
}
