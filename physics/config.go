package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid physics config")

// G = 6.674e-11 m³/(kg·s²), scaled down by 1e4 so the default scene moves
// at a watchable pace.
const G = 6.674e-15

// Softening is the default ε added under the square root of every distance.
const Softening = 0.01

// Config carries the simulation constants. Nothing in this package reads
// globals; every System gets its own copy.
type Config struct {
	G             float64 // gravitational constant
	Softening     float64 // ε, added to |d|² before the square root
	DistanceScale float64 // world units -> physical units for the force law
}

// DefaultConfig returns the scaled constant, ε = 0.01 and unit distances.
func DefaultConfig() Config {
	return Config{
		G:             G,
		Softening:     Softening,
		DistanceScale: 1,
	}
}

// Validate rejects constants that make the force law undefined.
func (c Config) Validate() error {
	switch {
	case !finite(c.G):
		return fmt.Errorf("%w: G is %v", ErrInvalidConfig, c.G)
	case !finite(c.Softening) || c.Softening <= 0:
		return fmt.Errorf("%w: softening must be positive, got %v", ErrInvalidConfig, c.Softening)
	case !finite(c.DistanceScale) || c.DistanceScale <= 0:
		return fmt.Errorf("%w: distance scale must be positive, got %v", ErrInvalidConfig, c.DistanceScale)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Bounds is the half-extent of the axis-aligned domain [-X, X] x [-Y, Y].
type Bounds struct {
	X, Y float64
}

// BoundsForAspect is the domain a viewport of the given width/height shows:
// the vertical half-extent is always 1.
func BoundsForAspect(aspect float64) Bounds {
	return Bounds{X: aspect, Y: 1}
}
