package debugserver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	registry       *prometheus.Registry
	tickDuration   prometheus.Histogram
	systemDuration *prometheus.HistogramVec
	transitions    *prometheus.CounterVec
}

// newMetrics registers every collector on its own registry so several
// servers can coexist in tests. Registry counters are read from the latest
// snapshot.
func newMetrics(snap func() *Snapshot) *metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	m := &metrics{
		registry: reg,
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "rustyfarm_tick_duration_seconds",
			Help:    "Time spent in one game update",
			Buckets: []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033},
		}),
		// system is the scheduler name of a system, a small fixed set.
		systemDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rustyfarm_system_duration_seconds",
			Help:    "Time spent in one system update",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.004, 0.016},
		}, []string{"system"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rustyfarm_state_transitions_total",
			Help: "Game state transitions by target state",
		}, []string{"state"}),
	}

	stat := func(fn func(*Snapshot) float64) func() float64 {
		return func() float64 {
			s := snap()
			if s == nil {
				return 0
			}
			return fn(s)
		}
	}
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "rustyfarm_entities",
		Help: "Live entities in the world",
	}, stat(func(s *Snapshot) float64 { return float64(s.Entities) }))
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "rustyfarm_animation_active_clips",
		Help: "Entities with a clip playing",
	}, stat(func(s *Snapshot) float64 { return float64(s.Animation.Active) }))
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "rustyfarm_animation_registered_clips",
		Help: "Registered clips across all entities",
	}, stat(func(s *Snapshot) float64 { return float64(s.Animation.Clips) }))
	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "rustyfarm_animation_activations_total",
		Help: "Clip activations applied",
	}, stat(func(s *Snapshot) float64 { return float64(s.Animation.Activations) }))
	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "rustyfarm_animation_dropped_total",
		Help: "Activations dropped because a locked clip was playing",
	}, stat(func(s *Snapshot) float64 { return float64(s.Animation.Dropped) }))
	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "rustyfarm_animation_unregistered_total",
		Help: "Events aimed at entities or clips that were never registered",
	}, stat(func(s *Snapshot) float64 { return float64(s.Animation.Unregistered) }))
	f.NewCounterFunc(prometheus.CounterOpts{
		Name: "rustyfarm_animation_finished_total",
		Help: "Non-looping clips that ran out of repeats",
	}, stat(func(s *Snapshot) float64 { return float64(s.Animation.Finished) }))

	return m
}

func (m *metrics) observeTick(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
}

func (m *metrics) observeSystem(name string, d time.Duration) {
	m.systemDuration.WithLabelValues(name).Observe(d.Seconds())
}
