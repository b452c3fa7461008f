package pid

import (
	"errors"
	"fmt"

	"github.com/mrshankly/control/control/core"
)

// Errors returned by construction and bound configuration.
var (
	ErrNonFiniteCoefficient = errors.New("pid: coefficient must be finite")
	ErrSamplingTime         = errors.New("pid: sampling time must be positive and finite")
	ErrDegenerateFilter     = errors.New("pid: 2*tau + sampling time must not be zero")
	ErrBounds               = errors.New("pid: lower bound must be <= upper bound and not NaN")
)

// Controller is a discrete-time PID controller with a filtered derivative
// term, integral anti-windup and output saturation.
//
// The dependent gains are computed once at construction from the classical
// coefficients and stay fixed for the controller's lifetime; only the
// setpoint, the two bound pairs and the recurrence state itself change
// afterwards.
type Controller[T core.Float] struct {
	setpoint T

	// Recurrence state from the previous step.
	prevError       T
	prevMeasurement T
	integral        T
	derivative      T

	// Dependent gains, fixed at construction.
	gainP       T // kp
	gainI       T // ki * Ts / 2
	gainD       T // -2 * kd
	filterCoeff T // (2*tau - Ts) / (2*tau + Ts)

	integralMin T
	integralMax T
	outputMin   T
	outputMax   T
}

// Option mutates a Controller during construction.
type Option[T core.Float] func(*Controller[T]) error

// WithIntegralBounds restricts the integral accumulator to [min, max] from
// the start. Equivalent to calling [Controller.BoundIntegral] after New.
func WithIntegralBounds[T core.Float](min, max T) Option[T] {
	return func(c *Controller[T]) error {
		return c.BoundIntegral(min, max)
	}
}

// WithOutputBounds restricts the controller output to [min, max] from the
// start. Equivalent to calling [Controller.BoundOutput] after New.
func WithOutputBounds[T core.Float](min, max T) Option[T] {
	return func(c *Controller[T]) error {
		return c.BoundOutput(min, max)
	}
}

// New creates a Controller with proportional gain kp, integral gain ki and
// derivative gain kd.
//
// tau is the time constant of the derivative low-pass filter and
// samplingTime the fixed interval in seconds between consecutive Step
// calls. All coefficients must be finite, samplingTime must be positive and
// 2*tau + samplingTime must not be zero; the recurrence state starts at
// zero and both bound pairs default to (-Inf, +Inf).
//
// The first Step computes its integral and derivative contributions against
// the zero initial state, a known start-up transient.
func New[T core.Float](kp, ki, kd, tau, samplingTime, setpoint T, opts ...Option[T]) (*Controller[T], error) {
	for _, v := range [...]T{kp, ki, kd, tau, setpoint} {
		if !core.IsFinite(v) {
			return nil, fmt.Errorf("%w: %v", ErrNonFiniteCoefficient, v)
		}
	}

	if samplingTime <= 0 || !core.IsFinite(samplingTime) {
		return nil, fmt.Errorf("%w: %v", ErrSamplingTime, samplingTime)
	}

	if 2*tau+samplingTime == 0 {
		return nil, fmt.Errorf("%w: tau=%v samplingTime=%v", ErrDegenerateFilter, tau, samplingTime)
	}

	c := &Controller[T]{
		setpoint: setpoint,

		gainP:       kp,
		gainI:       0.5 * ki * samplingTime,
		gainD:       -2 * kd,
		filterCoeff: (2*tau - samplingTime) / (2*tau + samplingTime),

		integralMin: core.Inf[T](-1),
		integralMax: core.Inf[T](1),
		outputMin:   core.Inf[T](-1),
		outputMax:   core.Inf[T](1),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// BoundIntegral restricts the integral accumulator to [min, max], taking
// effect on the next Step. Useful to prevent integral windup while the
// output is saturated.
//
// The pair replaces any previously configured one; no history is kept. On an
// invalid pair the active bounds are left untouched and an error wrapping
// [ErrBounds] is returned.
func (c *Controller[T]) BoundIntegral(min, max T) error {
	if err := checkBounds(min, max); err != nil {
		return err
	}

	c.integralMin = min
	c.integralMax = max

	return nil
}

// BoundOutput restricts the controller output to [min, max], taking effect
// on the next Step. This saturation protects the actuator; it is
// independent of the integral clamp and does not by itself prevent windup.
//
// The pair replaces any previously configured one; no history is kept. On an
// invalid pair the active bounds are left untouched and an error wrapping
// [ErrBounds] is returned.
func (c *Controller[T]) BoundOutput(min, max T) error {
	if err := checkBounds(min, max); err != nil {
		return err
	}

	c.outputMin = min
	c.outputMax = max

	return nil
}

func checkBounds[T core.Float](min, max T) error {
	// !(min <= max) also rejects NaN on either side.
	if !(min <= max) {
		return fmt.Errorf("%w: [%v, %v]", ErrBounds, min, max)
	}

	return nil
}

// SetSetpoint changes the target value the process should track. It may be
// called at any time and is used from the next Step on.
func (c *Controller[T]) SetSetpoint(setpoint T) {
	c.setpoint = setpoint
}

// Setpoint returns the current target value.
func (c *Controller[T]) Setpoint() T {
	return c.setpoint
}

// IntegralState returns the clamped integral accumulator as of the most
// recent Step.
func (c *Controller[T]) IntegralState() T {
	return c.integral
}

// DerivativeState returns the filtered derivative accumulator as of the
// most recent Step.
func (c *Controller[T]) DerivativeState() T {
	return c.derivative
}

// Step advances the controller by one sampling period and returns the
// control output for the given measurement.
//
// Call Step exactly once per sampling period, in chronological order. The
// recurrence is stateful and order-dependent: skipped or reordered calls
// silently corrupt the physical meaning of the integral and derivative
// terms, there is no runtime detection.
func (c *Controller[T]) Step(measurement T) T {
	e := c.setpoint - measurement

	proportional := c.gainP * e

	// Trapezoidal integral, clamped after accumulation so the stored state
	// pins at the bound instead of winding up while saturated.
	c.integral = core.Clamp(c.gainI*(e+c.prevError)+c.integral, c.integralMin, c.integralMax)

	// Derivative on the measurement, not the error: a setpoint change does
	// not move the measurement, so it cannot kick the output.
	c.derivative = c.gainD*(measurement-c.prevMeasurement) + c.filterCoeff*c.derivative

	c.prevError = e
	c.prevMeasurement = measurement

	return core.Clamp(proportional+c.integral+c.derivative, c.outputMin, c.outputMax)
}

// Reset zeroes the recurrence state (previous error, previous measurement,
// integral and derivative accumulators) while keeping gains, setpoint and
// bounds. The controller then behaves as if freshly constructed with the
// same configuration.
func (c *Controller[T]) Reset() {
	c.prevError = 0
	c.prevMeasurement = 0
	c.integral = 0
	c.derivative = 0
}
