package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the bitmap font used for labels and overlays.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// FontHeight is the line height of Font in pixels.
const FontHeight = 10

// TextWidth returns the rendered width of s in pixels.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(Font, s)
	return int(outbox)
}

// DrawText writes s with its top-left corner at (x, y).
func DrawText(t Target, x, y int, s string, c Color) {
	if t == nil || s == "" {
		return
	}
	d := &targetDisplayer{t: t}
	tinyfont.WriteLine(d, Font, int16(x), int16(y+FontHeight-2), s, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// DrawTextOutlined writes s with a one-pixel outline so it stays readable over
// any background.
func DrawTextOutlined(t Target, x, y int, s string, fill, outline Color) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			DrawText(t, x+dx, y+dy, s, outline)
		}
	}
	DrawText(t, x, y, s, fill)
}

// DrawTextCentered centers s horizontally on cx.
func DrawTextCentered(t Target, cx, y int, s string, fill, outline Color) {
	DrawTextOutlined(t, cx-TextWidth(s)/2, y, s, fill, outline)
}

// FillRect blends c over the rectangle [x0,x1)×[y0,y1).
func FillRect(t Target, x0, y0, x1, y1 int, c Color) {
	if t == nil {
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			t.BlendPixel(x, y, c)
		}
	}
}

// FillCircle blends a filled disc of radius r at (cx, cy).
func FillCircle(t Target, cx, cy, r int, c Color) {
	if t == nil || r <= 0 {
		return
	}
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				t.BlendPixel(cx+x, cy+y, c)
			}
		}
	}
}

// targetDisplayer lets tinyfont draw into a Target.
type targetDisplayer struct {
	t Target
}

func (d *targetDisplayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d *targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.BlendPixel(int(x), int(y), Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (d *targetDisplayer) Display() error { return nil }

var _ drivers.Displayer = (*targetDisplayer)(nil)
