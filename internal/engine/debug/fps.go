package debug

import (
	"fmt"
	"math"
	"time"
)

// FPSCounter averages frame rate over a sliding window and tracks the
// lowest and highest window averages seen.
type FPSCounter struct {
	window time.Duration
	start  time.Time
	frames int

	fps      float64
	min, max float64
	frameMs  float64
	last     time.Time
}

// NewFPSCounter returns a counter that refreshes its reading every window.
func NewFPSCounter(window time.Duration) *FPSCounter {
	if window <= 0 {
		window = time.Second
	}
	return &FPSCounter{window: window, min: math.Inf(1)}
}

// Tick records a frame presented at now.
func (c *FPSCounter) Tick(now time.Time) {
	if !c.last.IsZero() {
		c.frameMs = float64(now.Sub(c.last)) / float64(time.Millisecond)
	}
	c.last = now

	if c.start.IsZero() {
		c.start = now
		return
	}
	c.frames++
	if elapsed := now.Sub(c.start); elapsed >= c.window {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.min = math.Min(c.min, c.fps)
		c.max = math.Max(c.max, c.fps)
		c.start, c.frames = now, 0
	}
}

// FPS returns the last window average.
func (c *FPSCounter) FPS() float64 { return c.fps }

// FrameTime returns the duration of the last frame in milliseconds.
func (c *FPSCounter) FrameTime() float64 { return c.frameMs }

// String formats the reading as "60 FPS (58-61)".
func (c *FPSCounter) String() string {
	if math.IsInf(c.min, 1) {
		return "-- FPS"
	}
	return fmt.Sprintf("%.0f FPS (%.0f-%.0f)", c.fps, c.min, c.max)
}
