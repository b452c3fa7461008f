package smooth

import (
	"fmt"

	"github.com/mrshankly/control/control/core"
)

// SlewLimiter bounds how fast its output may move toward a target value,
// with independent rise and fall rates. Typical use is ramping a setpoint
// so a step change does not slam the loop, or protecting an actuator from
// abrupt commands.
type SlewLimiter[T core.Float] struct {
	maxRise T // per step
	maxFall T // per step

	current T
}

// NewSlewLimiter creates a limiter allowing the output to rise by at most
// risePerSecond and fall by at most fallPerSecond (both positive
// magnitudes), sampled every samplingTime seconds. Output starts at zero;
// use [SlewLimiter.SetValue] to start elsewhere.
func NewSlewLimiter[T core.Float](risePerSecond, fallPerSecond, samplingTime T) (*SlewLimiter[T], error) {
	if risePerSecond <= 0 || !core.IsFinite(risePerSecond) {
		return nil, fmt.Errorf("%w: rise %v", ErrSlewRate, risePerSecond)
	}

	if fallPerSecond <= 0 || !core.IsFinite(fallPerSecond) {
		return nil, fmt.Errorf("%w: fall %v", ErrSlewRate, fallPerSecond)
	}

	if samplingTime <= 0 || !core.IsFinite(samplingTime) {
		return nil, fmt.Errorf("%w: %v", ErrSamplingTime, samplingTime)
	}

	return &SlewLimiter[T]{
		maxRise: risePerSecond * samplingTime,
		maxFall: fallPerSecond * samplingTime,
	}, nil
}

// Process advances the limiter by one sampling period toward target and
// returns the new output. The step toward the target is capped at the
// configured per-period rise or fall, and never overshoots the target.
func (l *SlewLimiter[T]) Process(target T) T {
	delta := core.Clamp(target-l.current, -l.maxFall, l.maxRise)
	l.current += delta
	return l.current
}

// Value returns the current output without advancing the state.
func (l *SlewLimiter[T]) Value() T {
	return l.current
}

// SetValue forces the output to v, bypassing rate limiting.
func (l *SlewLimiter[T]) SetValue(v T) {
	l.current = v
}

// Reset returns the output to zero.
func (l *SlewLimiter[T]) Reset() {
	l.current = 0
}
