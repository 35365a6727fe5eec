package physics

import (
	"errors"
	"math"
	"testing"
)

func unitConfig() Config {
	return Config{G: 1, Softening: Softening, DistanceScale: 1}
}

func nearly(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestSingleBodyHasNoSelfForce(t *testing.T) {
	bodies := []Body{NewBody()}
	bodies[0].Position = Vector3{0.3, -0.2, 0.1}
	bodies[0].Acceleration = Vector3{5, 5, 5} // stale value from a previous step

	sys := NewSystemAll(DefaultConfig(), len(bodies))
	sys.ComputeSystemProperties(bodies)

	if bodies[0].Acceleration != (Vector3{}) {
		t.Errorf("Expected zero acceleration, got %v", bodies[0].Acceleration)
	}
}

func TestCoincidentBodiesStayFinite(t *testing.T) {
	cfg := unitConfig()
	const mass = 2.0

	for _, sep := range []float64{0, 1e-12, 1e-6, 1e-3} {
		bodies := []Body{NewBody(), NewBody()}
		bodies[0].Mass, bodies[1].Mass = mass, mass
		bodies[0].Position = Vector3{0.3, 0.3, 0}
		bodies[1].Position = Vector3{0.3 + sep, 0.3, 0}

		NewSystemAll(cfg, 2).ComputeSystemProperties(bodies)

		limit := cfg.G * mass / cfg.Softening
		for i := range bodies {
			a := bodies[i].Acceleration
			for k := 0; k < 3; k++ {
				if math.IsNaN(a[k]) || math.IsInf(a[k], 0) {
					t.Fatalf("sep %g: body %d acceleration not finite: %v", sep, i, a)
				}
			}
			if l := a.Len(); l > limit {
				t.Errorf("sep %g: body %d |a| = %g exceeds G·m/ε = %g", sep, i, l, limit)
			}
		}
	}
}

func TestAccelerationPointsTowardOther(t *testing.T) {
	bodies := []Body{NewBody(), NewBody()}
	bodies[0].Position = Vector3{-1, 0, 0}
	bodies[1].Position = Vector3{1, 0, 0}
	bodies[1].Mass = 4

	NewSystemAll(unitConfig(), 2).ComputeSystemProperties(bodies)

	if bodies[0].Acceleration[0] <= 0 {
		t.Errorf("Expected body 0 pulled toward +x, got %v", bodies[0].Acceleration)
	}
	if bodies[1].Acceleration[0] >= 0 {
		t.Errorf("Expected body 1 pulled toward -x, got %v", bodies[1].Acceleration)
	}

	// recipient mass cancels: a0 depends on m1 only
	r := math.Sqrt(4 + Softening)
	want := 4 / (r * r) * (2 / r)
	if !nearly(bodies[0].Acceleration[0], want, 1e-12) {
		t.Errorf("Expected |a0| = %g, got %g", want, bodies[0].Acceleration[0])
	}
}

// reference sum written out component by component, independent of System.
func referenceAcceleration(cfg Config, bodies []Body, i int) (ax, ay, az float64) {
	for j := range bodies {
		if j == i {
			continue
		}
		dx := (bodies[j].Position[0] - bodies[i].Position[0]) * cfg.DistanceScale
		dy := (bodies[j].Position[1] - bodies[i].Position[1]) * cfg.DistanceScale
		dz := (bodies[j].Position[2] - bodies[i].Position[2]) * cfg.DistanceScale
		r2 := dx*dx + dy*dy + dz*dz + cfg.Softening
		r := math.Sqrt(r2)
		f := cfg.G * bodies[j].Mass / r2
		ax += f * dx / r
		ay += f * dy / r
		az += f * dz / r
	}
	return
}

func TestFourBodyPairwiseSum(t *testing.T) {
	cfg := Config{G: 0.5, Softening: Softening, DistanceScale: 2}
	bodies := []Body{NewBody(), NewBody(), NewBody(), NewBody()}
	masses := []float64{1, 3, 7, 11}
	positions := []Vector3{{0, 0, 0}, {1, 0.5, 0}, {-0.4, 0.8, 0.2}, {0.3, -0.9, -0.5}}
	for i := range bodies {
		bodies[i].Mass = masses[i]
		bodies[i].Position = positions[i]
	}

	NewSystemAll(cfg, len(bodies)).ComputeSystemProperties(bodies)

	for i := range bodies {
		ax, ay, az := referenceAcceleration(cfg, bodies, i)
		got := bodies[i].Acceleration
		if !nearly(got[0], ax, 1e-12) || !nearly(got[1], ay, 1e-12) || !nearly(got[2], az, 1e-12) {
			t.Errorf("body %d: expected (%g, %g, %g), got %v", i, ax, ay, az, got)
		}
	}
}

func TestSubsetMembership(t *testing.T) {
	bodies := []Body{NewBody(), NewBody(), NewBody()}
	bodies[0].Position = Vector3{-1, 0, 0}
	bodies[1].Position = Vector3{1, 0, 0}
	bodies[2].Position = Vector3{0, 1, 0}
	bodies[2].Acceleration = Vector3{9, 9, 9}

	sys := NewSystem(unitConfig(), 0, 1)
	sys.ComputeSystemProperties(bodies)

	if bodies[0].Acceleration[1] != 0 || bodies[1].Acceleration[1] != 0 {
		t.Error("Expected non-member to exert no pull")
	}
	if bodies[2].Acceleration != (Vector3{9, 9, 9}) {
		t.Errorf("Expected non-member untouched, got %v", bodies[2].Acceleration)
	}
	if sys.Len() != 2 {
		t.Errorf("Expected 2 members, got %d", sys.Len())
	}
}

func TestMembersIsACopy(t *testing.T) {
	sys := NewSystem(unitConfig(), 0, 1, 2)
	m := sys.Members()
	m[0] = 42
	if sys.Members()[0] != 0 {
		t.Error("Expected Members to return a copy")
	}
}

// TestTwoBodyCenterOfMassStationary runs a symmetric equal-mass pair and
// checks the centre of mass never drifts.
func TestTwoBodyCenterOfMassStationary(t *testing.T) {
	bodies := []Body{NewBody(), NewBody()}
	for i := range bodies {
		bodies[i].Mass = 1
		bodies[i].Radius = 0.05
	}
	bodies[0].Position = Vector3{-0.5, 0, 0}
	bodies[1].Position = Vector3{0.5, 0, 0}
	bodies[0].Velocity = Vector3{0, 0.6, 0}
	bodies[1].Velocity = Vector3{0, -0.6, 0}

	sys := NewSystemAll(unitConfig(), 2)
	bounds := Bounds{X: 10, Y: 10}
	const dt = 0.001

	for step := 0; step < 5000; step++ {
		sys.ComputeSystemProperties(bodies)
		for i := range bodies {
			bodies[i].CollisionCheck(bounds.X, bounds.Y)
			bodies[i].Accelerate(dt)
			bodies[i].UpdatePosition(dt)
		}

		com := sys.CenterOfMass(bodies)
		if com.Len() > 1e-12 {
			t.Fatalf("step %d: centre of mass drifted to %v", step, com)
		}
	}

	p := sys.Momentum(bodies)
	if p.Len() > 1e-12 {
		t.Errorf("Expected zero total momentum, got %v", p)
	}
}

func TestEnergyRoughlyConserved(t *testing.T) {
	bodies := []Body{NewBody(), NewBody()}
	bodies[0].Mass, bodies[1].Mass = 1, 1
	bodies[0].Position = Vector3{-0.5, 0, 0}
	bodies[1].Position = Vector3{0.5, 0, 0}
	bodies[0].Velocity = Vector3{0, 0.5, 0}
	bodies[1].Velocity = Vector3{0, -0.5, 0}

	sys := NewSystemAll(unitConfig(), 2)
	e0 := sys.KineticEnergy(bodies) + sys.PotentialEnergy(bodies)

	const dt = 1e-4
	for step := 0; step < 10000; step++ {
		sys.ComputeSystemProperties(bodies)
		for i := range bodies {
			bodies[i].Accelerate(dt)
			bodies[i].UpdatePosition(dt)
		}
	}

	e1 := sys.KineticEnergy(bodies) + sys.PotentialEnergy(bodies)
	if math.Abs(e1-e0) > 0.01*math.Abs(e0) {
		t.Errorf("Expected energy within 1%% of %g, got %g", e0, e1)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"zero softening", Config{G: 1, Softening: 0, DistanceScale: 1}, false},
		{"nan G", Config{G: math.NaN(), Softening: 1, DistanceScale: 1}, false},
		{"zero scale", Config{G: 1, Softening: 1, DistanceScale: 0}, false},
		{"inf scale", Config{G: 1, Softening: 1, DistanceScale: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestBoundsForAspect(t *testing.T) {
	b := BoundsForAspect(2.4)
	if b.X != 2.4 || b.Y != 1 {
		t.Errorf("Expected {2.4 1}, got %v", b)
	}
}
