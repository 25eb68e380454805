package envmap

import (
	"errors"
	"fmt"
)

var (
	// ErrCaptureIncomplete is returned when the captured cube is read before
	// all six faces of the current frame were written.
	ErrCaptureIncomplete = errors.New("environment capture incomplete")
	// ErrCaptureOrder is returned for writes outside Begin/Finish or repeated faces.
	ErrCaptureOrder = errors.New("environment capture out of order")
)

// CaptureTracker enforces the single-writer protocol of a captured cube:
// Begin, one MarkWritten per face, Finish, and only then reads.
type CaptureTracker struct {
	frame    uint64
	written  [FaceCount]bool
	count    int
	active   bool
	complete bool
}

// Begin starts a new capture and invalidates the previous frame's contents.
func (c *CaptureTracker) Begin() {
	c.frame++
	c.written = [FaceCount]bool{}
	c.count = 0
	c.active = true
	c.complete = false
}

// MarkWritten records that face f has been fully rendered.
func (c *CaptureTracker) MarkWritten(f Face) error {
	if !c.active {
		return fmt.Errorf("face %s written outside a capture: %w", f, ErrCaptureOrder)
	}
	if !f.Valid() {
		return fmt.Errorf("invalid face %d: %w", int(f), ErrCaptureOrder)
	}
	if c.written[f] {
		return fmt.Errorf("face %s written twice: %w", f, ErrCaptureOrder)
	}
	c.written[f] = true
	c.count++
	return nil
}

// Finish closes the capture. It fails if any face is missing.
func (c *CaptureTracker) Finish() error {
	if !c.active {
		return fmt.Errorf("finish without begin: %w", ErrCaptureOrder)
	}
	c.active = false
	if c.count != FaceCount {
		return fmt.Errorf("%d of %d faces written: %w", c.count, FaceCount, ErrCaptureIncomplete)
	}
	c.complete = true
	return nil
}

// CheckReadable fails unless the current frame's capture finished with all faces.
func (c *CaptureTracker) CheckReadable() error {
	if c.active || !c.complete {
		return fmt.Errorf("frame %d: %d of %d faces written: %w", c.frame, c.count, FaceCount, ErrCaptureIncomplete)
	}
	return nil
}

// Written returns how many faces of the current capture are written.
func (c *CaptureTracker) Written() int { return c.count }

// Frame returns the number of captures begun so far.
func (c *CaptureTracker) Frame() uint64 { return c.frame }
