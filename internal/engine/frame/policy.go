package frame

import (
	"errors"
	"fmt"
)

// ErrTooManyFailures is returned once consecutive frame failures exceed the budget.
var ErrTooManyFailures = errors.New("too many consecutive frame failures")

// FailurePolicy turns frame errors into skipped frames until MaxConsecutive
// failures happen in a row. A non-positive MaxConsecutive makes every failure fatal.
type FailurePolicy struct {
	MaxConsecutive int
	consecutive    int
	total          int
}

// Observe records a frame result. It returns nil when the loop may continue.
func (p *FailurePolicy) Observe(err error) error {
	if err == nil {
		p.consecutive = 0
		return nil
	}
	p.consecutive++
	p.total++
	if p.consecutive > p.MaxConsecutive || p.MaxConsecutive <= 0 {
		return fmt.Errorf("%d in a row, last: %w", p.consecutive, errors.Join(ErrTooManyFailures, err))
	}
	return nil
}

// Skipped returns the number of frames dropped so far.
func (p *FailurePolicy) Skipped() int { return p.total }
