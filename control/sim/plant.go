package sim

import (
	"errors"
	"fmt"

	"github.com/mrshankly/control/control/core"
)

// Errors returned by plant construction and loop runs.
var (
	ErrPlantGain        = errors.New("sim: plant gain must be finite")
	ErrPlantTimeConst   = errors.New("sim: plant time constant must be positive and finite")
	ErrSamplingTime     = errors.New("sim: sampling time must be positive and finite")
	ErrNilController    = errors.New("sim: controller must not be nil")
	ErrNilPlant         = errors.New("sim: plant must not be nil")
	ErrNonPositiveSteps = errors.New("sim: step count must be positive")
)

// Plant models a controlled process: it consumes one control input per
// sampling period and returns the next process measurement.
type Plant interface {
	Step(input float64) float64
	Reset()
}

// FirstOrder is a first-order lag process,
//
//	tau * dy/dt + y = gain * u,
//
// discretized with forward Euler at the loop's sampling period. It models
// processes such as thermal masses or motor speed under load.
type FirstOrder struct {
	gain  float64
	coeff float64 // samplingTime / tau

	state float64
}

// NewFirstOrder creates a first-order lag plant with the given static gain
// and time constant in seconds, advanced every samplingTime seconds. The
// discretization is stable for samplingTime < 2*tau.
func NewFirstOrder(gain, timeConstant, samplingTime float64) (*FirstOrder, error) {
	if !core.IsFinite(gain) {
		return nil, fmt.Errorf("%w: %v", ErrPlantGain, gain)
	}

	if timeConstant <= 0 || !core.IsFinite(timeConstant) {
		return nil, fmt.Errorf("%w: %v", ErrPlantTimeConst, timeConstant)
	}

	if samplingTime <= 0 || !core.IsFinite(samplingTime) {
		return nil, fmt.Errorf("%w: %v", ErrSamplingTime, samplingTime)
	}

	return &FirstOrder{
		gain:  gain,
		coeff: samplingTime / timeConstant,
	}, nil
}

// Step advances the plant by one sampling period under control input u and
// returns the new measurement.
func (p *FirstOrder) Step(u float64) float64 {
	p.state += (p.gain*u - p.state) * p.coeff
	return p.state
}

// SetState forces the process output to y, e.g. to start a simulation from
// a non-zero operating point.
func (p *FirstOrder) SetState(y float64) {
	p.state = y
}

// Reset returns the process output to zero.
func (p *FirstOrder) Reset() {
	p.state = 0
}

// Integrator is a pure integrating process,
//
//	dy/dt = gain * u,
//
// such as a tank level fed by a valve. Unlike FirstOrder it has no
// self-regulation: the measurement holds its value at zero input.
type Integrator struct {
	gainDt float64

	state float64
}

// NewIntegrator creates an integrating plant advanced every samplingTime
// seconds.
func NewIntegrator(gain, samplingTime float64) (*Integrator, error) {
	if !core.IsFinite(gain) {
		return nil, fmt.Errorf("%w: %v", ErrPlantGain, gain)
	}

	if samplingTime <= 0 || !core.IsFinite(samplingTime) {
		return nil, fmt.Errorf("%w: %v", ErrSamplingTime, samplingTime)
	}

	return &Integrator{gainDt: gain * samplingTime}, nil
}

// Step advances the plant by one sampling period under control input u and
// returns the new measurement.
func (p *Integrator) Step(u float64) float64 {
	p.state += p.gainDt * u
	return p.state
}

// SetState forces the process output to y.
func (p *Integrator) SetState(y float64) {
	p.state = y
}

// Reset returns the process output to zero.
func (p *Integrator) Reset() {
	p.state = 0
}
