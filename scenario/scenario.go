// Package scenario builds the initial scene: bodies placed, given velocity,
// mass, radius and colour, plus the constants they run under.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/quillaja/gravity/physics"
)

var (
	// ErrInvalidBody is wrapped when a body breaks mass > 0, radius > 0 or
	// has non-finite state.
	ErrInvalidBody = errors.New("invalid body")
	// ErrUnknownScenario is returned for a name that is neither built in nor a file.
	ErrUnknownScenario = errors.New("unknown scenario")
)

// Scenario is a ready-to-run scene.
type Scenario struct {
	Name   string
	Dt     float64 // fixed step in seconds; 0 means use the frame clock
	Config physics.Config
	Bodies []physics.Body
}

// Validate checks the config and every body.
func (s *Scenario) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if s.Dt < 0 || math.IsNaN(s.Dt) || math.IsInf(s.Dt, 0) {
		return fmt.Errorf("scenario %q: dt must be a non-negative number, got %v", s.Name, s.Dt)
	}
	if len(s.Bodies) == 0 {
		return fmt.Errorf("scenario %q: %w: no bodies", s.Name, ErrInvalidBody)
	}
	for i := range s.Bodies {
		if err := validBody(&s.Bodies[i]); err != nil {
			return fmt.Errorf("scenario %q: body %d: %w", s.Name, i, err)
		}
	}
	return nil
}

func validBody(b *physics.Body) error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return fmt.Errorf("%w: mass must be positive, got %v", ErrInvalidBody, b.Mass)
	}
	if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidBody, b.Radius)
	}
	for _, v := range []physics.Vector3{b.Position, b.Velocity} {
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: non-finite state %v", ErrInvalidBody, v)
			}
		}
	}
	return nil
}

// number bodies in order and mark their geometry stale after setup.
func finish(s *Scenario) *Scenario {
	for i := range s.Bodies {
		s.Bodies[i].ID = uint64(i)
		s.Bodies[i].Invalidate()
	}
	return s
}

// Load returns the built-in scenario called name, or reads name as a JSON
// scenario file when it ends in .json.
func Load(name string) (*Scenario, error) {
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return LoadFile(name)
	}
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownScenario, name, strings.Join(Names(), ", "))
	}
	s := finish(build())
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Names of the built-in scenarios, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AutoOrbit gives every body after the first that is at rest a circular
// orbit velocity around body 0, counter-clockwise in the xy plane, on top of
// body 0's own velocity. The speed accounts for softening and distance scale
// so the orbit is circular under the same force law the System uses.
func AutoOrbit(cfg physics.Config, bodies []physics.Body) {
	if len(bodies) < 2 {
		return
	}
	center := bodies[0]
	axis := physics.Vector3{0, 0, 1}

	for i := 1; i < len(bodies); i++ {
		if bodies[i].Velocity != (physics.Vector3{}) {
			continue
		}
		radial := bodies[i].Position.Sub(center.Position)
		r := radial.Len()
		if r == 0 {
			continue
		}
		// |a| = G·M/(rs²+ε) · rs/sqrt(rs²+ε), and v²/r = |a|
		rs := r * cfg.DistanceScale
		soft := rs*rs + cfg.Softening
		a := cfg.G * center.Mass / soft * rs / math.Sqrt(soft)
		v := math.Sqrt(a * r)
		dir := axis.Cross(radial.Mul(1 / r))
		bodies[i].Velocity = center.Velocity.Add(dir.Mul(v))
	}
}

// colours used when a scenario does not name any.
var palette = []colorful.Color{
	{R: 0, G: 0, B: 1},
	{R: 1, G: 0.5, B: 0.2},
	{R: 0.2, G: 0.9, B: 0.4},
	{R: 0.9, G: 0.2, B: 0.6},
	{R: 1, G: 1, B: 0.3},
	{R: 0.3, G: 0.9, B: 1},
}

// DefaultColor is the centre colour for the i-th body.
func DefaultColor(i int) colorful.Color {
	return palette[i%len(palette)]
}
