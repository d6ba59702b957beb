package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"travelglobe/gfx"
)

// crash logs a recovered panic, paints the crash screen and parks the
// loop on it.
func (a *App) crash(v any) error {
	stack := debug.Stack()
	a.crashed = fmt.Errorf("app: panic: %v", v)
	a.log.Error().Interface("panic", v).Bytes("stack", stack).Msg("render loop panicked")

	fb := a.h.Display().Framebuffer()
	if fb == nil {
		return a.stopErr()
	}
	t, err := gfx.NewRGBATarget(fb.Width(), fb.Height())
	if err != nil {
		return a.stopErr()
	}
	drawCrash(t, v, stack)
	if err := fb.Present(t.Image()); err != nil {
		a.log.Warn().Err(err).Msg("present crash screen")
	}
	a.keep(t.Image())
	return a.stopErr()
}

func (a *App) stopErr() error {
	if a.cfg.ExitOnPanic {
		return a.crashed
	}
	return nil
}

func drawCrash(t *gfx.RGBATarget, v any, stack []byte) {
	t.Clear(gfx.RGB(0xff, 0xff, 0xff))
	fg := gfx.RGB(0, 0, 0)

	lines := []string{"Travel Globe crashed:", fmt.Sprintf("panic: %v", v)}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
			}
		}
	}

	w, h := t.Size()
	cols := max(1, w/max(1, gfx.TextWidth("0")))
	y := 2
	for _, line := range lines {
		for len(line) > 0 {
			if y+gfx.FontHeight > h {
				return
			}
			chunk, rest := takeRunes(line, cols)
			gfx.DrawText(t, 2, y, chunk, fg)
			y += gfx.FontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

// takeRunes splits s after n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
