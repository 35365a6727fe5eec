package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a grid of pixels a Renderer can paint.
type Canvas interface {
	Size() (w, h int)
	Set(x, y int, c colorful.Color)
	Clear(c colorful.Color)
}

// Aspect is w/h of the canvas in pixels, 1 for an empty canvas.
func Aspect(c Canvas) float64 {
	w, h := c.Size()
	if w == 0 || h == 0 {
		return 1
	}
	return float64(w) / float64(h)
}

/*

image canvas

*/

// Image paints into an RGBA image.
type Image struct {
	Img *image.RGBA
}

// NewImage makes a w x h image canvas.
func NewImage(w, h int) *Image {
	return &Image{Img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (m *Image) Size() (int, int) {
	b := m.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Image) Set(x, y int, c colorful.Color) {
	m.Img.Set(x, y, toRGBA(c))
}

func (m *Image) Clear(c colorful.Color) {
	col := toRGBA(c)
	b := m.Img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m.Img.SetRGBA(x, y, col)
		}
	}
}

// WritePNG encodes the image to path.
func (m *Image) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, m.Img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

/*

terminal canvas

*/

// upper half block: foreground paints the top pixel, background the bottom.
const halfBlock = '▀'

// Terminal paints a tcell screen at two pixels per cell, stacked vertically,
// so pixels come out roughly square.
type Terminal struct {
	screen tcell.Screen
	w, h   int // pixels
	pix    []colorful.Color
}

// NewTerminal wraps an initialised screen.
func NewTerminal(screen tcell.Screen) *Terminal {
	t := &Terminal{screen: screen}
	t.Resize()
	return t
}

// Resize picks up the screen's current size. Call it on tcell.EventResize.
func (t *Terminal) Resize() {
	cols, rows := t.screen.Size()
	t.w, t.h = cols, rows*2
	if n := t.w * t.h; cap(t.pix) >= n {
		t.pix = t.pix[:n]
	} else {
		t.pix = make([]colorful.Color, n)
	}
}

func (t *Terminal) Size() (int, int) { return t.w, t.h }

func (t *Terminal) Set(x, y int, c colorful.Color) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return
	}
	t.pix[y*t.w+x] = c
}

func (t *Terminal) Clear(c colorful.Color) {
	for i := range t.pix {
		t.pix[i] = c
	}
}

// Pixel reads back a pixel, for tests.
func (t *Terminal) Pixel(x, y int) colorful.Color {
	return t.pix[y*t.w+x]
}

// Text writes s at cell (col, row) over whatever Flush painted.
func (t *Terminal) Text(col, row int, s string, fg colorful.Color) {
	style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcell.ColorBlack)
	for i, r := range []rune(s) {
		t.screen.SetContent(col+i, row, r, nil, style)
	}
}

// Flush copies the pixels onto the screen cells. Call Show afterwards.
func (t *Terminal) Flush() {
	rows := t.h / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < t.w; col++ {
			top := t.pix[(2*row)*t.w+col]
			bottom := t.pix[(2*row+1)*t.w+col]
			style := tcell.StyleDefault.
				Foreground(tcellColor(top)).
				Background(tcellColor(bottom))
			t.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
}

// Show pushes the screen contents to the terminal.
func (t *Terminal) Show() { t.screen.Show() }

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
