package physics

import "math"

// System evaluates mutual gravity over a fixed set of bodies.
//
// It does not own the bodies. Members are indices into a slice the caller
// owns and passes to every call; the member list never changes after
// construction.
type System struct {
	cfg     Config
	members []int
}

// NewSystem creates a system over bodies[members[0]], bodies[members[1]], ...
// Indices are checked when the system is used, like any slice index.
func NewSystem(cfg Config, members ...int) *System {
	m := make([]int, len(members))
	copy(m, members)
	return &System{cfg: cfg, members: m}
}

// NewSystemAll is a system over every one of the n bodies.
func NewSystemAll(cfg Config, n int) *System {
	s := &System{cfg: cfg, members: make([]int, n)}
	for i := range s.members {
		s.members[i] = i
	}
	return s
}

// Len is the number of members.
func (s *System) Len() int { return len(s.members) }

// Members returns a copy of the member indices.
func (s *System) Members() []int {
	m := make([]int, len(s.members))
	copy(m, s.members)
	return m
}

// Config returns the constants the system was built with.
func (s *System) Config() Config { return s.cfg }

// ComputeSystemProperties overwrites every member's Acceleration with the
// sum of the pulls of every other member. Each ordered pair is evaluated on
// its own, O(n²).
func (s *System) ComputeSystemProperties(bodies []Body) {
	for _, i := range s.members {
		var total Vector3
		for _, j := range s.members {
			if i == j {
				continue
			}
			AddTo(&total, s.pull(&bodies[i], &bodies[j]))
		}
		bodies[i].Acceleration = total
	}
}

// acceleration of a due to b. the mass of a cancels out.
func (s *System) pull(a, b *Body) Vector3 {
	d := b.Position.Sub(a.Position).Mul(s.cfg.DistanceScale)
	r := math.Sqrt(d.Dot(d) + s.cfg.Softening)
	mag := s.cfg.G * b.Mass / (r * r)
	return d.Mul(1 / r).Mul(mag)
}
