package engine2d

import "time"

// DefaultMaxDT caps the real time credited to one frame, bounding how many
// fixed steps a frame runs after a stall.
const DefaultMaxDT = 0.25

// Clock turns variable frame times into a whole number of fixed steps.
type Clock struct {
	fixedDT float64
	maxDT   float64

	last        time.Time
	accumulator float64

	fpsTimer  float64
	fpsFrames int

	now func() time.Time
}

// NewClock creates a clock running fixed steps of fixedDT seconds. A
// non-positive maxDT selects DefaultMaxDT.
func NewClock(fixedDT, maxDT float64) *Clock {
	if maxDT <= 0 {
		maxDT = DefaultMaxDT
	}
	c := &Clock{fixedDT: fixedDT, maxDT: maxDT, now: time.Now}
	c.last = c.now()
	return c
}

// FixedDT returns the length of one fixed step in seconds.
func (c *Clock) FixedDT() float64 {
	return c.fixedDT
}

// Advance measures the real time since the previous call, caps it at the
// maximum frame delta, credits it to the step accumulator and returns it.
func (c *Clock) Advance() float64 {
	now := c.now()
	dt := min(now.Sub(c.last).Seconds(), c.maxDT)
	if dt < 0 {
		dt = 0
	}
	c.last = now
	c.accumulator += dt
	return dt
}

// ConsumeFixedSteps returns how many whole fixed steps the accumulator holds
// and removes them from it.
func (c *Clock) ConsumeFixedSteps() int {
	if c.fixedDT <= 0 {
		return 0
	}
	steps := 0
	for c.accumulator >= c.fixedDT {
		c.accumulator -= c.fixedDT
		steps++
	}
	return steps
}

// UpdateFPS counts a frame of dt seconds. Once at least a second has been
// counted it returns the average frame rate and true, and starts over.
func (c *Clock) UpdateFPS(dt float64) (float64, bool) {
	c.fpsTimer += dt
	c.fpsFrames++
	if c.fpsTimer < 1 {
		return 0, false
	}
	fps := float64(c.fpsFrames) / c.fpsTimer
	c.fpsTimer = 0
	c.fpsFrames = 0
	return fps, true
}
