package globeview

import (
	"fmt"

	"travelglobe/gfx"
	"travelglobe/scene"
)

var (
	textColor    = gfx.RGB(0xe0, 0xe8, 0xff)
	dimColor     = gfx.RGB(0x90, 0xa0, 0xb8)
	outlineColor = gfx.RGB(0, 0, 0)
	panelColor   = gfx.RGBA(0, 0, 0, 0x90)
	visitedDot   = gfx.RGB(0x22, 0xc5, 0x5e)
	plannedDot   = gfx.RGB(0xea, 0xb3, 0x08)
)

const hudPad = 6

func (v *View) drawLabels(labels []scene.Label) {
	w, h := v.surface.Size()
	for _, l := range labels {
		sp, ok := gfx.ProjectToScreen(v.camera, w, h, l.Anchor)
		if !ok {
			continue
		}
		gfx.DrawTextCentered(v.surface, int(sp.X), int(sp.Y)-gfx.FontHeight/2, l.Text, l.Color, outlineColor)
	}
}

func (v *View) drawHUD() {
	t := v.surface
	w, h := t.Size()
	visited, planned := v.dests.Counts()

	// Legend.
	y := hudPad
	gfx.FillCircle(t, hudPad+3, y+4, 3, visitedDot)
	gfx.DrawTextOutlined(t, hudPad+10, y, fmt.Sprintf("Visited (%d)", visited), textColor, outlineColor)
	y += gfx.FontHeight + 2
	gfx.FillCircle(t, hudPad+3, y+4, 3, plannedDot)
	gfx.DrawTextOutlined(t, hudPad+10, y, fmt.Sprintf("Planned (%d)", planned), textColor, outlineColor)
	y += gfx.FontHeight + 2
	gfx.DrawTextOutlined(t, hudPad, y, "Filter: "+v.filter.String(), dimColor, outlineColor)

	hint := "drag rotate  wheel zoom  click/tab select  1/2/3 f filter  esc clear"
	gfx.DrawTextOutlined(t, w-gfx.TextWidth(hint)-hudPad, h-gfx.FontHeight-hudPad, hint, dimColor, outlineColor)

	d, ok := v.Selection()
	if !ok {
		return
	}
	lines := []string{d.Name}
	if d.Description != "" {
		lines = append(lines, d.Description)
	}
	if d.Visited {
		if near, km, ok := v.dests.Nearest(d); ok {
			lines = append(lines, fmt.Sprintf("Nearest visited: %s (%.0f km)", near.Name, km))
		}
	} else {
		lines = append(lines, "Planned")
	}
	if !v.filter.Match(d) {
		lines = append(lines, "Hidden by filter")
	}

	maxW := 0
	for _, l := range lines {
		maxW = max(maxW, gfx.TextWidth(l))
	}
	top := h - hudPad*2 - gfx.FontHeight - len(lines)*(gfx.FontHeight+2) - 4
	gfx.FillRect(t, hudPad-2, top-2, hudPad+maxW+4, top+len(lines)*(gfx.FontHeight+2)+2, panelColor)
	for i, l := range lines {
		c := dimColor
		if i == 0 {
			c = d.Color
		}
		gfx.DrawTextOutlined(t, hudPad, top+i*(gfx.FontHeight+2), l, c, outlineColor)
	}
}

// placeholderSize clamps the requested size into what a surface accepts.
func placeholderSize(w, h int) (int, int) {
	clamp := func(v, def int) int {
		if v <= 0 {
			return def
		}
		return min(v, gfx.MaxSurfaceSide)
	}
	return clamp(w, 320), clamp(h, 180)
}

func drawPlaceholder(t *gfx.RGBATarget, cause error) {
	if t == nil {
		return
	}
	w, h := t.Size()
	t.Clear(gfx.RGB(0x10, 0x14, 0x20))

	r := min(w, h) / 4
	gfx.FillCircle(t, w/2, h/2-gfx.FontHeight, r, gfx.RGB(0x1d, 0x3a, 0x6a))
	gfx.DrawTextCentered(t, w/2, h/2+r, "Globe unavailable", textColor, outlineColor)
	if cause != nil {
		gfx.DrawTextCentered(t, w/2, h/2+r+gfx.FontHeight+2, cause.Error(), dimColor, outlineColor)
	}
}
