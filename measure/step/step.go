// Package step computes time-domain step-response metrics from a recorded
// closed-loop trajectory: rise time, overshoot, settling time and
// steady-state error.
package step

import (
	"errors"
	"math"
)

const (
	// riseFraction is the fraction of the target that defines rise time.
	riseFraction = 0.9
	// settlingBand is the relative band around the target inside which the
	// response counts as settled.
	settlingBand = 0.02
)

// Errors returned by Calculate.
var (
	ErrEmptyResponse       = errors.New("step: response signal is empty")
	ErrInvalidTarget       = errors.New("step: target must be finite and non-zero")
	ErrInvalidSamplingTime = errors.New("step: sampling time must be positive and finite")
)

// Metrics holds step-response characteristics. Metrics that never occur
// within the recorded window (a response that never reaches the rise
// threshold, or never stays inside the settling band) are reported as NaN.
type Metrics struct {
	Length int

	RiseTime         float64 // seconds until the response first reaches 90% of the target
	PeakValue        float64 // extreme excursion in the target's direction
	PeakTime         float64 // seconds until PeakValue
	Overshoot        float64 // max(0, excursion beyond the target) as a fraction of the target
	SettlingTime     float64 // seconds after which the response stays within +/-2% of the target
	SteadyStateError float64 // target minus the final sample
}

// Calculate computes step-response metrics for a response that starts near
// zero and is driven toward target, sampled every samplingTime seconds.
// Sample i is taken at time (i+1)*samplingTime, the instant the i-th
// sampling period completes.
//
// The computation is a single pass; responses of any length are accepted.
func Calculate(response []float64, target, samplingTime float64) (Metrics, error) {
	if len(response) == 0 {
		return Metrics{}, ErrEmptyResponse
	}

	if target == 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return Metrics{}, ErrInvalidTarget
	}

	if samplingTime <= 0 || math.IsNaN(samplingTime) || math.IsInf(samplingTime, 0) {
		return Metrics{}, ErrInvalidSamplingTime
	}

	var (
		riseIndex     = -1
		peakNorm      = math.Inf(-1)
		peakIndex     int
		lastOutOfBand = -1
	)

	for i, y := range response {
		// Normalizing by the target makes the pass sign-agnostic: the
		// target maps to 1 regardless of direction.
		norm := y / target

		if riseIndex < 0 && norm >= riseFraction {
			riseIndex = i
		}

		if norm > peakNorm {
			peakNorm = norm
			peakIndex = i
		}

		if math.Abs(norm-1) > settlingBand {
			lastOutOfBand = i
		}
	}

	m := Metrics{
		Length:           len(response),
		PeakValue:        peakNorm * target,
		PeakTime:         float64(peakIndex+1) * samplingTime,
		Overshoot:        math.Max(0, peakNorm-1),
		SteadyStateError: target - response[len(response)-1],
	}

	if riseIndex >= 0 {
		m.RiseTime = float64(riseIndex+1) * samplingTime
	} else {
		m.RiseTime = math.NaN()
	}

	if lastOutOfBand == len(response)-1 {
		// Still outside the band at the end of the window.
		m.SettlingTime = math.NaN()
	} else {
		m.SettlingTime = float64(lastOutOfBand+2) * samplingTime
	}

	return m, nil
}
