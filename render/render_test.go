package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/quillaja/gravity/mesh"
	"github.com/quillaja/gravity/physics"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func litBody() physics.Body {
	b := physics.NewBody()
	b.ID = 1
	b.Radius = 0.5
	b.CenterColor = white
	b.EdgeColor = colorful.Color{R: 0.2, G: 0, B: 0}
	return b
}

func lightness(c colorful.Color) float64 {
	l, _, _ := c.Lab()
	return l
}

func TestFanFillsDiscWithGradient(t *testing.T) {
	img := NewImage(40, 20)
	r := New(mesh.Fan)
	bodies := []physics.Body{litBody()}
	bounds := physics.Bounds{X: 2, Y: 1}

	r.Draw(img, bodies, bounds)

	at := func(x, y int) colorful.Color {
		c, _ := colorful.MakeColor(img.Img.At(x, y))
		return c
	}

	center, rim, outside := at(20, 10), at(24, 10), at(5, 10)
	if outside != r.Background {
		t.Errorf("Expected background outside the body, got %v", outside.Hex())
	}
	if center == r.Background || rim == r.Background {
		t.Fatal("Expected the disc to be painted")
	}
	if lightness(center) <= lightness(rim) {
		t.Errorf("Expected centre (%s) lighter than rim (%s)", center.Hex(), rim.Hex())
	}
}

func TestSphereShadesTowardViewer(t *testing.T) {
	img := NewImage(40, 20)
	r := New(mesh.UVSphere)
	r.Draw(img, []physics.Body{litBody()}, physics.Bounds{X: 2, Y: 1})

	center, _ := colorful.MakeColor(img.Img.At(20, 10))
	rim, _ := colorful.MakeColor(img.Img.At(24, 10))
	if center == r.Background || rim == r.Background {
		t.Fatal("Expected the sphere to be painted")
	}
	if lightness(center) <= lightness(rim) {
		t.Errorf("Expected lit centre (%s) brighter than limb (%s)", center.Hex(), rim.Hex())
	}
}

func TestBorderOutlinesDomain(t *testing.T) {
	img := NewImage(30, 10)
	r := New(mesh.Fan)
	r.Draw(img, nil, physics.Bounds{X: 3, Y: 1})

	for _, p := range [][2]int{{0, 0}, {29, 0}, {0, 9}, {29, 9}, {15, 0}, {0, 5}} {
		c, _ := colorful.MakeColor(img.Img.At(p[0], p[1]))
		if c.DistanceRgb(r.Border) > 0.01 {
			t.Errorf("Expected border at %v, got %s", p, c.Hex())
		}
	}
}

func TestTinyBodyStillVisible(t *testing.T) {
	img := NewImage(20, 20)
	b := physics.NewBody() // radius 0.01, well under a pixel here
	b.CenterColor = white

	New(mesh.Fan).Draw(img, []physics.Body{b}, physics.Bounds{X: 1, Y: 1})

	c, _ := colorful.MakeColor(img.Img.At(10, 10))
	if c.DistanceRgb(white) > 0.01 {
		t.Errorf("Expected a marker pixel, got %s", c.Hex())
	}
}

func TestHeavierBodyDrawnOnTop(t *testing.T) {
	img := NewImage(40, 20)
	light, heavy := litBody(), litBody()
	light.ID, heavy.ID = 1, 2
	light.Mass, heavy.Mass = 1, 10
	light.CenterColor, light.EdgeColor = colorful.Color{R: 1}, colorful.Color{R: 1}
	heavy.CenterColor, heavy.EdgeColor = colorful.Color{B: 1}, colorful.Color{B: 1}

	// heavy first in the slice; it must still win
	New(mesh.Fan).Draw(img, []physics.Body{heavy, light}, physics.Bounds{X: 2, Y: 1})

	c, _ := colorful.MakeColor(img.Img.At(20, 10))
	if c.DistanceRgb(colorful.Color{B: 1}) > 0.01 {
		t.Errorf("Expected heavy body on top, got %s", c.Hex())
	}
}

func TestDrawsHandBuiltBodiesApart(t *testing.T) {
	img := NewImage(40, 20)
	red, blue := colorful.Color{R: 1}, colorful.Color{B: 1}

	a, b := physics.NewBody(), physics.NewBody()
	a.Radius, b.Radius = 0.2, 0.2
	a.Position = physics.Vector3{-1, 0, 0}
	b.Position = physics.Vector3{1, 0, 0}
	a.CenterColor, a.EdgeColor = red, red
	b.CenterColor, b.EdgeColor = blue, blue

	New(mesh.Fan).Draw(img, []physics.Body{a, b}, physics.Bounds{X: 2, Y: 1})

	for _, tc := range []struct {
		x, y int
		want colorful.Color
	}{
		{10, 10, red},
		{30, 10, blue},
	} {
		c, _ := colorful.MakeColor(img.Img.At(tc.x, tc.y))
		if c.DistanceRgb(tc.want) > 0.01 {
			t.Errorf("Expected %s at (%d, %d), got %s", tc.want.Hex(), tc.x, tc.y, c.Hex())
		}
	}
}

func TestRendererReusesGeometry(t *testing.T) {
	img := NewImage(20, 10)
	r := New(mesh.Fan)
	bodies := []physics.Body{litBody()}
	bounds := physics.Bounds{X: 2, Y: 1}

	r.Draw(img, bodies, bounds)
	r.Draw(img, bodies, bounds)
	if r.Cache().Builds != 1 {
		t.Errorf("Expected one mesh build for a still body, got %d", r.Cache().Builds)
	}

	bodies[0].Velocity = physics.Vector3{0.1, 0, 0}
	bodies[0].UpdatePosition(1)
	r.Draw(img, bodies, bounds)
	if r.Cache().Builds != 2 {
		t.Errorf("Expected a rebuild after the body moved, got %d", r.Cache().Builds)
	}
}

func TestWritePNG(t *testing.T) {
	img := NewImage(8, 8)
	New(mesh.Fan).Draw(img, []physics.Body{litBody()}, physics.Bounds{X: 1, Y: 1})

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := img.WritePNG(path); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("Expected a non-empty png, got %v %v", info, err)
	}
}

func TestTerminalCanvas(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 10)

	term := NewTerminal(screen)
	if w, h := term.Size(); w != 40 || h != 20 {
		t.Fatalf("Expected 40x20 pixels, got %dx%d", w, h)
	}
	if a := Aspect(term); a != 2 {
		t.Errorf("Expected aspect 2, got %v", a)
	}

	New(mesh.Fan).Draw(term, []physics.Body{litBody()}, physics.BoundsForAspect(Aspect(term)))
	term.Flush()
	term.Show()

	if term.Pixel(20, 10) == black {
		t.Error("Expected the body under the centre pixel")
	}
	mainc, _, style, _ := screen.GetContent(20, 5)
	if mainc != halfBlock {
		t.Errorf("Expected half block, got %q", mainc)
	}
	fg, bg, _ := style.Decompose()
	if fg == tcell.ColorBlack && bg == tcell.ColorBlack {
		t.Error("Expected a coloured cell under the body")
	}

	term.Text(0, 0, "hi", white)
	if c, _, _, _ := screen.GetContent(1, 0); c != 'i' {
		t.Errorf("Expected status text, got %q", c)
	}
}

func TestTerminalResize(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(10, 5)
	term := NewTerminal(screen)

	screen.SetSize(30, 12)
	term.Resize()
	if w, h := term.Size(); w != 30 || h != 24 {
		t.Errorf("Expected 30x24 after resize, got %dx%d", w, h)
	}
	term.Set(100, 100, white) // out of range is ignored
}
