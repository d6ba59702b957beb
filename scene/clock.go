package scene

import "time"

// Clock is the animation time source. It only moves forward.
type Clock struct {
	Elapsed time.Duration
	Frames  uint64
}

// Advance moves the clock by one frame of length dt. Negative dt counts as a
// frame of zero length.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.Elapsed += dt
	}
	c.Frames++
}

func (c Clock) Seconds() float64 { return c.Elapsed.Seconds() }
