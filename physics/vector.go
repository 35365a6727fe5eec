// Package physics holds the gravitational core: bodies, the all-pairs
// acceleration pass and the boundary response.
package physics

import "github.com/go-gl/mathgl/mgl64"

// Vector3 is a plain (x, y, z) value. Add, Sub, Mul, Dot and Cross come
// from mgl64.
type Vector3 = mgl64.Vec3

// AddTo does *dst += v.
func AddTo(dst *Vector3, v Vector3) {
	dst[0] += v[0]
	dst[1] += v[1]
	dst[2] += v[2]
}
