package mesh

import "github.com/quillaja/gravity/physics"

// Kind picks the tessellation a Cache produces.
type Kind uint8

const (
	Fan Kind = iota
	UVSphere
)

func (k Kind) String() string {
	switch k {
	case Fan:
		return "fan"
	case UVSphere:
		return "sphere"
	}
	return "unknown"
}

// ParseKind maps "fan" / "sphere" to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "fan", "circle":
		return Fan, true
	case "sphere":
		return UVSphere, true
	}
	return Fan, false
}

type entry struct {
	id       uint64
	rev      uint64
	pos      physics.Vector3
	radius   float64
	vertices []float32
}

// Cache holds the last geometry generated for each slot of a body slice and
// rebuilds it only when a different body lands in the slot or the body's
// revision moves on.
type Cache struct {
	kind    Kind
	entries map[int]*entry
	indices []uint32

	Builds int // number of regenerations, for tests and stats
}

// NewCache returns an empty cache producing kind meshes.
func NewCache(kind Kind) *Cache {
	c := &Cache{kind: kind, entries: make(map[int]*entry)}
	if kind == UVSphere {
		c.indices = SphereIndices(SphereLat, SphereLong)
	}
	return c
}

// Kind of mesh this cache builds.
func (c *Cache) Kind() Kind { return c.kind }

// Indices for UVSphere meshes; nil for fans, which are drawn as fans.
func (c *Cache) Indices() []uint32 { return c.indices }

// Vertices returns the geometry of b, the body at index i of the slice being
// drawn, regenerating it if b moved since the last call.
func (c *Cache) Vertices(i int, b *physics.Body) []float32 {
	e, ok := c.entries[i]
	if ok && e.id == b.ID && e.rev == b.Revision() && e.pos == b.Position && e.radius == b.Radius {
		return e.vertices
	}
	if !ok {
		e = &entry{}
		c.entries[i] = e
	}
	e.id, e.rev = b.ID, b.Revision()
	e.pos, e.radius = b.Position, b.Radius
	switch c.kind {
	case UVSphere:
		e.vertices = Sphere(b.Position, b.Radius, SphereLat, SphereLong)
	default:
		e.vertices = Circle(b.Position, b.Radius, CircleSegments)
	}
	c.Builds++
	return e.vertices
}
