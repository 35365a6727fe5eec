// Package sim drives the physics core once per frame in the fixed order:
// accelerations from current positions, then per body the boundary clamp,
// the velocity update and the position update.
package sim

import (
	"time"

	"github.com/quillaja/gravity/physics"
	"github.com/quillaja/gravity/scenario"
)

// StepResult describes one call to Step.
type StepResult struct {
	Frame    uint64
	Dt       float64
	Bounces  int           // bodies that touched a boundary face this step
	Duration time.Duration // wall time spent in the physics
}

// Observer is told about every finished step. Renderers, sound and metrics
// hang off this; the physics never calls them.
type Observer interface {
	Stepped(s *Simulation, r StepResult)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s *Simulation, r StepResult)

func (f ObserverFunc) Stepped(s *Simulation, r StepResult) { f(s, r) }

// Simulation owns the bodies and the one System over all of them.
type Simulation struct {
	name      string
	bodies    []physics.Body
	system    *physics.System
	frame     uint64
	elapsed   float64 // simulated seconds
	observers []Observer
}

// New takes ownership of the scenario's bodies.
func New(sc *scenario.Scenario) *Simulation {
	return NewFromBodies(sc.Name, sc.Config, sc.Bodies)
}

// NewFromBodies builds a simulation over bodies, which the caller must not
// keep using directly. Bodies are numbered by their index.
func NewFromBodies(name string, cfg physics.Config, bodies []physics.Body) *Simulation {
	for i := range bodies {
		bodies[i].ID = uint64(i)
		bodies[i].Invalidate()
	}
	return &Simulation{
		name:   name,
		bodies: bodies,
		system: physics.NewSystemAll(cfg, len(bodies)),
	}
}

// Observe adds o to the observers called after each step.
func (s *Simulation) Observe(o Observer) {
	s.observers = append(s.observers, o)
}

// Name of the scenario being run.
func (s *Simulation) Name() string { return s.name }

// Bodies is the live body slice, for renderers to read after a step.
func (s *Simulation) Bodies() []physics.Body { return s.bodies }

// System over all bodies.
func (s *Simulation) System() *physics.System { return s.system }

// Frame is the number of completed steps.
func (s *Simulation) Frame() uint64 { return s.frame }

// Elapsed is the total simulated time in seconds.
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// Step advances the simulation by dt within bounds. A negative dt is
// treated as 0; large ones are taken as given.
func (s *Simulation) Step(dt float64, bounds physics.Bounds) StepResult {
	if dt < 0 {
		dt = 0
	}
	start := time.Now()

	s.system.ComputeSystemProperties(s.bodies)

	bounces := 0
	for i := range s.bodies {
		b := &s.bodies[i]
		if b.CollisionCheck(bounds.X, bounds.Y) {
			bounces++
		}
		b.Accelerate(dt)
		b.UpdatePosition(dt)
	}

	s.frame++
	s.elapsed += dt
	r := StepResult{
		Frame:    s.frame,
		Dt:       dt,
		Bounces:  bounces,
		Duration: time.Since(start),
	}
	for _, o := range s.observers {
		o.Stepped(s, r)
	}
	return r
}
