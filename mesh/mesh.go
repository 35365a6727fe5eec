// Package mesh turns a body's position and radius into flat vertex
// buffers (x, y, z triples) for a renderer. Nothing here touches physics
// state.
package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// default tessellation.
const (
	CircleSegments = 50
	SphereLat      = 20
	SphereLong     = 40
)

func appendVec(buf []float32, v mgl32.Vec3) []float32 {
	return append(buf, v[0], v[1], v[2])
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Circle is a triangle fan in the z = position.z plane: the centre vertex
// followed by segments+1 rim vertices, the last one repeating the first.
func Circle(position mgl64.Vec3, radius float64, segments int) []float32 {
	if segments < 3 {
		segments = 3
	}
	buf := make([]float32, 0, (segments+2)*3)
	buf = appendVec(buf, vec32(position))

	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		sin, cos := math.Sincos(angle)
		rim := mgl64.Vec3{radius * cos, radius * sin, 0}
		buf = appendVec(buf, vec32(position.Add(rim)))
	}
	return buf
}

// Sphere is a UV sphere of (lat+1)*(long+1) vertices, pole to pole.
// Latitude runs along y.
func Sphere(position mgl64.Vec3, radius float64, lat, long int) []float32 {
	if lat < 2 {
		lat = 2
	}
	if long < 3 {
		long = 3
	}
	buf := make([]float32, 0, (lat+1)*(long+1)*3)

	for i := 0; i <= lat; i++ {
		// 0 to pi
		theta := float64(i) * math.Pi / float64(lat)
		sinTheta, cosTheta := math.Sincos(theta)

		for j := 0; j <= long; j++ {
			// 0 to 2pi
			phi := float64(j) * 2 * math.Pi / float64(long)
			sinPhi, cosPhi := math.Sincos(phi)

			p := mgl64.Vec3{
				radius * sinTheta * cosPhi,
				radius * cosTheta,
				radius * sinTheta * sinPhi,
			}
			buf = appendVec(buf, vec32(position.Add(p)))
		}
	}
	return buf
}

// SphereIndices lists two triangles per lat/long quad of Sphere so shared
// vertices are drawn once.
func SphereIndices(lat, long int) []uint32 {
	if lat < 2 {
		lat = 2
	}
	if long < 3 {
		long = 3
	}
	idx := make([]uint32, 0, lat*long*6)

	for i := 0; i < lat; i++ {
		for j := 0; j < long; j++ {
			cur := uint32(i*(long+1) + j)
			next := cur + uint32(long) + 1

			idx = append(idx,
				cur, next, cur+1,
				cur+1, next, next+1)
		}
	}
	return idx
}

// Vertex reads vertex i out of a flat buffer.
func Vertex(buf []float32, i int) mgl64.Vec3 {
	return mgl64.Vec3{float64(buf[3*i]), float64(buf[3*i+1]), float64(buf[3*i+2])}
}

// Len is the number of vertices in buf.
func Len(buf []float32) int { return len(buf) / 3 }
