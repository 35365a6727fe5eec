package scenario

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/quillaja/gravity/physics"
)

var builtins = map[string]func() *Scenario{
	"twobody":  twoBody,
	"fourbody": fourBody,
	"orbit":    orbit,
	"bounce":   bounce,
}

// constants for the hand-tuned scenes, in domain units (the viewport is
// two units tall).
func sceneConfig() physics.Config {
	return physics.Config{G: 0.5, Softening: physics.Softening, DistanceScale: 1}
}

func body(mass, radius float64, pos, vel physics.Vector3, c colorful.Color) physics.Body {
	b := physics.NewBody()
	b.Mass = mass
	b.Radius = radius
	b.Position = pos
	b.Velocity = vel
	b.CenterColor = c
	b.EdgeColor = c.BlendLab(colorful.Color{}, 0.7).Clamped()
	return b
}

// equal masses mirrored about the origin with opposite velocities. the
// centre of mass stays put.
func twoBody() *Scenario {
	return &Scenario{
		Name:   "twobody",
		Config: sceneConfig(),
		Bodies: []physics.Body{
			body(1, 0.06, physics.Vector3{-0.4, 0, 0}, physics.Vector3{0, 0.55, 0}, DefaultColor(0)),
			body(1, 0.06, physics.Vector3{0.4, 0, 0}, physics.Vector3{0, -0.55, 0}, DefaultColor(1)),
		},
	}
}

func fourBody() *Scenario {
	return &Scenario{
		Name:   "fourbody",
		Config: sceneConfig(),
		Bodies: []physics.Body{
			body(2.0, 0.08, physics.Vector3{-0.6, 0.3, 0}, physics.Vector3{0.1, -0.3, 0}, DefaultColor(0)),
			body(1.0, 0.06, physics.Vector3{0.7, 0.4, 0}, physics.Vector3{-0.3, -0.2, 0}, DefaultColor(1)),
			body(0.5, 0.05, physics.Vector3{0.2, -0.6, 0}, physics.Vector3{0.4, 0.2, 0}, DefaultColor(2)),
			body(1.5, 0.07, physics.Vector3{-0.9, -0.5, 0}, physics.Vector3{0.2, 0.3, 0}, DefaultColor(3)),
		},
	}
}

// a heavy centre with three satellites put on circular orbits.
func orbit() *Scenario {
	s := &Scenario{
		Name:   "orbit",
		Config: sceneConfig(),
		Bodies: []physics.Body{
			body(4, 0.1, physics.Vector3{}, physics.Vector3{}, colorful.Color{R: 1, G: 0.85, B: 0.3}),
			body(0.01, 0.03, physics.Vector3{0.35, 0, 0}, physics.Vector3{}, DefaultColor(0)),
			body(0.02, 0.04, physics.Vector3{0, 0.6, 0}, physics.Vector3{}, DefaultColor(2)),
			body(0.01, 0.03, physics.Vector3{-0.85, 0, 0}, physics.Vector3{}, DefaultColor(3)),
		},
	}
	AutoOrbit(s.Config, s.Bodies)
	return s
}

// default bodies under the real-ish scaled constants: gravity is a
// whisper at this scale so they mostly ricochet off the walls.
func bounce() *Scenario {
	cfg := physics.DefaultConfig()
	cfg.DistanceScale = 2.389e-10

	a := physics.NewBody()
	a.Radius = 0.05
	a.Position = physics.Vector3{-0.5, 0.2, 0}
	a.Velocity = physics.Vector3{0.6, 0.35, 0}

	b := physics.NewBody()
	b.Radius = 0.08
	b.Mass *= 3
	b.Position = physics.Vector3{0.5, -0.3, 0}
	b.Velocity = physics.Vector3{-0.4, 0.5, 0}
	b.CenterColor = DefaultColor(1)

	return &Scenario{
		Name:   "bounce",
		Config: cfg,
		Bodies: []physics.Body{a, b},
	}
}
