// Package metrics counts what the frame loop does. It keeps its own
// registry and never serves it; WriteText dumps it in the Prometheus
// text format.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/quillaja/gravity/sim"
)

// Collector holds the instruments for one run.
type Collector struct {
	registry *prometheus.Registry

	frames        *prometheus.CounterVec
	bounces       *prometheus.CounterVec
	stepDuration  *prometheus.HistogramVec
	kineticEnergy *prometheus.GaugeVec
	bodies        *prometheus.GaugeVec
}

// NewCollector creates and registers the instruments on a fresh registry.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gravity_frames_total",
				Help: "Simulation steps taken",
			},
			[]string{"scenario"},
		),
		bounces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gravity_bounces_total",
				Help: "Body-boundary bounces",
			},
			[]string{"scenario"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gravity_step_seconds",
				Help:    "Wall time spent computing one step",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"scenario"},
		),
		kineticEnergy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gravity_kinetic_energy",
				Help: "Total kinetic energy after the last step",
			},
			[]string{"scenario"},
		),
		bodies: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gravity_bodies",
				Help: "Bodies in the simulation",
			},
			[]string{"scenario"},
		),
	}

	m.registry.MustRegister(m.frames)
	m.registry.MustRegister(m.bounces)
	m.registry.MustRegister(m.stepDuration)
	m.registry.MustRegister(m.kineticEnergy)
	m.registry.MustRegister(m.bodies)

	return m
}

// Registry the instruments live on.
func (m *Collector) Registry() *prometheus.Registry { return m.registry }

// Stepped records one step. It satisfies sim.Observer.
func (m *Collector) Stepped(s *sim.Simulation, r sim.StepResult) {
	name := s.Name()
	m.frames.WithLabelValues(name).Inc()
	m.bounces.WithLabelValues(name).Add(float64(r.Bounces))
	m.stepDuration.WithLabelValues(name).Observe(r.Duration.Seconds())
	m.kineticEnergy.WithLabelValues(name).Set(s.System().KineticEnergy(s.Bodies()))
	m.bodies.WithLabelValues(name).Set(float64(len(s.Bodies())))
}

// WriteText writes every gathered family in the text exposition format.
func (m *Collector) WriteText(w io.Writer) error {
	mfs, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
