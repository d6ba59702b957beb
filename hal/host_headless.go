package hal

import (
	"context"
	"fmt"
	"time"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Width  int
	Height int
	// Scale multiplies the initial window size.
	Scale int
	TPS   int
	Title string
}

func (c *WindowConfig) setDefaults() {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.Title == "" {
		c.Title = "Travel Globe"
	}
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width  int
	Height int
	Hz     int
	// Ticks stops the run after that many steps; zero runs until ctx ends.
	Ticks uint64
	// FixedStep advances time by exactly 1/Hz per step instead of by wall
	// time, which makes runs reproducible.
	FixedStep bool
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp func(HAL) func() error) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}

	h := newHost(cfg.Width, cfg.Height)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cfg.FixedStep {
				h.t.advance(d)
			} else {
				h.t.step()
			}
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
