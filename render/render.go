// Package render draws the bodies onto a pixel Canvas. It only reads body
// state; the host decides when to draw.
package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/quillaja/gravity/mesh"
	"github.com/quillaja/gravity/physics"
)

var (
	black = colorful.Color{}
	gray  = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

// Renderer draws bodies from their meshes, looking down -z at the domain.
type Renderer struct {
	Background colorful.Color
	Border     colorful.Color

	cache *mesh.Cache
}

// New returns a renderer drawing kind meshes.
func New(kind mesh.Kind) *Renderer {
	return &Renderer{
		Background: black,
		Border:     gray,
		cache:      mesh.NewCache(kind),
	}
}

// Cache is the renderer's geometry cache.
func (r *Renderer) Cache() *mesh.Cache { return r.cache }

// view maps world x,y to pixel coordinates on a w x h canvas.
type view struct {
	proj  mgl64.Mat4
	w, h  float64
	scale float64 // pixels per world unit, vertically
}

func newView(bounds physics.Bounds, w, h int) view {
	return view{
		proj:  mgl64.Ortho2D(-bounds.X, bounds.X, -bounds.Y, bounds.Y),
		w:     float64(w),
		h:     float64(h),
		scale: float64(h) / (2 * bounds.Y),
	}
}

// pixel position of world point p, y down.
func (v view) pixel(p mgl64.Vec3) (x, y float64) {
	ndc := mgl64.TransformCoordinate(mgl64.Vec3{p[0], p[1], 0}, v.proj)
	return (ndc[0] + 1) / 2 * v.w, (1 - ndc[1]) / 2 * v.h
}

// Draw clears c, outlines the domain and paints every body, lightest first
// so heavy bodies end up on top.
func (r *Renderer) Draw(c Canvas, bodies []physics.Body, bounds physics.Bounds) {
	w, h := c.Size()
	c.Clear(r.Background)
	if w == 0 || h == 0 {
		return
	}
	v := newView(bounds, w, h)

	// domain outline
	x0, y0 := mgl64.GLToScreenCoords(-1, 1, w, h)
	x1, y1 := mgl64.GLToScreenCoords(1, -1, w, h)
	x1, y1 = min(x1, w-1), min(y1, h-1)
	plotline(c, r.Border, x0, y0, x1, y0)
	plotline(c, r.Border, x1, y0, x1, y1)
	plotline(c, r.Border, x1, y1, x0, y1)
	plotline(c, r.Border, x0, y1, x0, y0)

	order := make([]int, len(bodies))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return bodies[order[i]].Mass < bodies[order[j]].Mass
	})

	for _, i := range order {
		r.drawBody(c, v, i, &bodies[i])
	}
}

func (r *Renderer) drawBody(c Canvas, v view, i int, b *physics.Body) {
	verts := r.cache.Vertices(i, b)

	switch r.cache.Kind() {
	case mesh.UVSphere:
		idx := r.cache.Indices()
		for t := 0; t+2 < len(idx); t += 3 {
			a, bb, cc := mesh.Vertex(verts, int(idx[t])), mesh.Vertex(verts, int(idx[t+1])), mesh.Vertex(verts, int(idx[t+2]))
			sphereTriangle(c, v, b, a, bb, cc)
		}
	default:
		center := mesh.Vertex(verts, 0)
		for i := 1; i+1 < mesh.Len(verts); i++ {
			fanTriangle(c, v, b, center, mesh.Vertex(verts, i), mesh.Vertex(verts, i+1))
		}
	}

	// always leave a mark for bodies smaller than a pixel
	if b.Radius*v.scale < 1 {
		x, y := v.pixel(b.Position)
		c.Set(int(x), int(y), b.CenterColor)
	}
}

// fan triangles fade from the centre colour at the centre vertex to the
// edge colour on the rim.
func fanTriangle(c Canvas, v view, b *physics.Body, center, p1, p2 mgl64.Vec3) {
	fill(c, v, center, p1, p2, func(w0, _, _ float64) (colorful.Color, bool) {
		return b.CenterColor.BlendLab(b.EdgeColor, 1-w0).Clamped(), true
	})
}

// sphere triangles are lit from the viewer: brightness follows how much
// the surface faces +z. back faces are skipped.
func sphereTriangle(c Canvas, v view, b *physics.Body, p0, p1, p2 mgl64.Vec3) {
	z0 := (p0[2] - b.Position[2]) / b.Radius
	z1 := (p1[2] - b.Position[2]) / b.Radius
	z2 := (p2[2] - b.Position[2]) / b.Radius
	if z0 < 0 && z1 < 0 && z2 < 0 {
		return
	}
	fill(c, v, p0, p1, p2, func(w0, w1, w2 float64) (colorful.Color, bool) {
		nz := w0*z0 + w1*z1 + w2*z2
		if nz < 0 {
			return black, false
		}
		return b.EdgeColor.BlendLab(b.CenterColor, math.Min(nz, 1)).Clamped(), true
	})
}

// fill rasterises the triangle p0 p1 p2, sampling pixel centres. shade gets
// the barycentric weights of each covered pixel.
func fill(c Canvas, v view, p0, p1, p2 mgl64.Vec3, shade func(w0, w1, w2 float64) (colorful.Color, bool)) {
	ax, ay := v.pixel(p0)
	bx, by := v.pixel(p1)
	cx, cy := v.pixel(p2)

	area := edge(ax, ay, bx, by, cx, cy)
	if area == 0 {
		return
	}

	w, h := c.Size()
	minX := clamp(int(math.Floor(math.Min(ax, math.Min(bx, cx)))), 0, w-1)
	maxX := clamp(int(math.Ceil(math.Max(ax, math.Max(bx, cx)))), 0, w-1)
	minY := clamp(int(math.Floor(math.Min(ay, math.Min(by, cy)))), 0, h-1)
	maxY := clamp(int(math.Ceil(math.Max(ay, math.Max(by, cy)))), 0, h-1)

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(bx, by, cx, cy, px, py) / area
			w1 := edge(cx, cy, ax, ay, px, py) / area
			w2 := edge(ax, ay, bx, by, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			if col, ok := shade(w0, w1, w2); ok {
				c.Set(x, y, col)
			}
		}
	}
}

// twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// plotline draws a simple line on c from (x0,y0) to (x1,y1).
//
// Bresenham's line algorithm,
// https://en.wikipedia.org/wiki/Bresenham%27s_line_algorithm.
func plotline(c Canvas, col colorful.Color, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// abs cuz no integer abs function in the Go standard library.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
