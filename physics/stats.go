package physics

import "math"

/*

whole-system quantities. these never feed back into the simulation; they
exist to watch it.

*/

// TotalMass of the members.
func (s *System) TotalMass(bodies []Body) float64 {
	m := 0.0
	for _, i := range s.members {
		m += bodies[i].Mass
	}
	return m
}

// CenterOfMass is the mass-weighted mean position of the members.
// Zero for an empty system.
func (s *System) CenterOfMass(bodies []Body) Vector3 {
	var com Vector3
	m := s.TotalMass(bodies)
	if m == 0 {
		return com
	}
	for _, i := range s.members {
		AddTo(&com, bodies[i].Position.Mul(bodies[i].Mass))
	}
	return com.Mul(1 / m)
}

// Momentum is the summed m·v of the members.
func (s *System) Momentum(bodies []Body) Vector3 {
	var p Vector3
	for _, i := range s.members {
		AddTo(&p, bodies[i].Velocity.Mul(bodies[i].Mass))
	}
	return p
}

// KineticEnergy is Σ ½mv².
func (s *System) KineticEnergy(bodies []Body) float64 {
	e := 0.0
	for _, i := range s.members {
		e += 0.5 * bodies[i].Mass * bodies[i].Velocity.Dot(bodies[i].Velocity)
	}
	return e
}

// PotentialEnergy is -Σ G·mi·mj/r over unordered pairs, using the same
// softened distance as the force law.
func (s *System) PotentialEnergy(bodies []Body) float64 {
	e := 0.0
	for a := 0; a < len(s.members)-1; a++ {
		i := s.members[a]
		for b := a + 1; b < len(s.members); b++ {
			j := s.members[b]
			d := bodies[j].Position.Sub(bodies[i].Position).Mul(s.cfg.DistanceScale)
			r := math.Sqrt(d.Dot(d) + s.cfg.Softening)
			e -= s.cfg.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return e
}
