package smooth

import (
	"errors"
	"fmt"

	"github.com/mrshankly/control/control/core"
)

// Errors returned by smoother construction.
var (
	ErrTimeConstant = errors.New("smooth: time constant must be >= 0 and finite")
	ErrSamplingTime = errors.New("smooth: sampling time must be positive and finite")
	ErrSlewRate     = errors.New("smooth: slew rate must be positive and finite")
)

// EMA is a one-pole exponential moving-average smoother,
//
//	y[n] = y[n-1] + alpha * (x[n] - y[n-1])
//
// with alpha derived from a time constant and the sampling period. A time
// constant of zero yields alpha = 1 and the smoother becomes transparent.
type EMA[T core.Float] struct {
	alpha T
	state T
}

// NewEMA creates a smoother with the given time constant in seconds,
// sampled every samplingTime seconds. State starts at zero; use
// [EMA.SetValue] to start from a known level instead.
func NewEMA[T core.Float](timeConstant, samplingTime T) (*EMA[T], error) {
	if timeConstant < 0 || !core.IsFinite(timeConstant) {
		return nil, fmt.Errorf("%w: %v", ErrTimeConstant, timeConstant)
	}

	if samplingTime <= 0 || !core.IsFinite(samplingTime) {
		return nil, fmt.Errorf("%w: %v", ErrSamplingTime, samplingTime)
	}

	return &EMA[T]{
		alpha: samplingTime / (timeConstant + samplingTime),
	}, nil
}

// Process advances the smoother by one sampling period and returns the new
// smoothed value.
func (s *EMA[T]) Process(x T) T {
	s.state = core.FlushDenormals(s.state + s.alpha*(x-s.state))
	return s.state
}

// Value returns the current smoothed value without advancing the state.
func (s *EMA[T]) Value() T {
	return s.state
}

// SetValue forces the smoother state to v, bypassing the filter.
func (s *EMA[T]) SetValue(v T) {
	s.state = v
}

// Reset returns the smoother state to zero.
func (s *EMA[T]) Reset() {
	s.state = 0
}
