package physics

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Restitution is the fraction of normal speed a body keeps after bouncing
// off a boundary face.
const Restitution = 0.95

// default body state.
const (
	DefaultRadius = 0.01
	DefaultMass   = 7.35e7 // scaled down moon mass
)

// Body is one simulated mass.
//
// Mass and Radius are set once during scenario setup and never touched by
// the simulation. The colours are only read by renderers.
type Body struct {
	ID           uint64
	Name         string
	Mass         float64
	Radius       float64
	Position     Vector3
	Velocity     Vector3
	Acceleration Vector3
	CenterColor  colorful.Color
	EdgeColor    colorful.Color

	rev uint64 // bumped whenever Position changes
}

// NewBody returns a body in the default state: at rest at the origin.
func NewBody() Body {
	return Body{
		Mass:        DefaultMass,
		Radius:      DefaultRadius,
		CenterColor: colorful.Color{R: 0, G: 0, B: 1},
		EdgeColor:   colorful.Color{R: 0, G: 0, B: 0},
	}
}

// GetPosition returns the current position.
func (b *Body) GetPosition() Vector3 { return b.Position }

// GetRadius returns the radius.
func (b *Body) GetRadius() float64 { return b.Radius }

// Revision changes every time the body's position changes, so anything
// derived from the position (draw geometry) knows to regenerate.
func (b *Body) Revision() uint64 { return b.rev }

// Invalidate marks derived geometry stale. Call it after assigning Position
// or Radius directly during setup.
func (b *Body) Invalidate() { b.rev++ }

// UpdatePosition advances position by velocity*dt.
func (b *Body) UpdatePosition(dt float64) {
	// dp = v*dt
	AddTo(&b.Position, b.Velocity.Mul(dt))
	b.rev++
}

// Accelerate advances velocity by acceleration*dt.
func (b *Body) Accelerate(dt float64) {
	// dv = a*dt
	AddTo(&b.Velocity, b.Acceleration.Mul(dt))
}

// CollisionCheck keeps the body inside [-boundX, boundX] x [-boundY, boundY].
// Each face is tested on its own, so a body in a corner is corrected on both
// axes. A face that is crossed clamps the position so the body touches it and
// reflects the normal velocity, losing energy. Reports whether any face was hit.
func (b *Body) CollisionCheck(boundX, boundY float64) bool {
	hit := false

	// limits are computed once and compared directly so a clamped body
	// sits exactly on them and a repeat call is a no-op.
	minX, maxX := -boundX+b.Radius, boundX-b.Radius
	minY, maxY := -boundY+b.Radius, boundY-b.Radius

	// y
	if b.Position[1] < minY {
		b.Position[1] = minY
		b.Velocity[1] *= -Restitution
		hit = true
	}
	if b.Position[1] > maxY {
		b.Position[1] = maxY
		b.Velocity[1] *= -Restitution
		hit = true
	}

	// x
	if b.Position[0] < minX {
		b.Position[0] = minX
		b.Velocity[0] *= -Restitution
		hit = true
	}
	if b.Position[0] > maxX {
		b.Position[0] = maxX
		b.Velocity[0] *= -Restitution
		hit = true
	}

	if hit {
		b.rev++
	}
	return hit
}

func (b Body) String() string {
	return fmt.Sprintf("%s m: %.4g r: %.4g\np: [%.4f, %.4f, %.4f]\nv: [%.4f, %.4f, %.4f]\n",
		b.Name, b.Mass, b.Radius,
		b.Position[0], b.Position[1], b.Position[2],
		b.Velocity[0], b.Velocity[1], b.Velocity[2])
}
