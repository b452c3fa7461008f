// Package freq computes the frequency response of a discrete-time
// controller from its impulse response, for inspecting loop shaping
// (integral boost at DC, derivative lift and its low-pass roll-off).
package freq

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/mrshankly/control/control/pid"
)

// Errors returned by response computations.
var (
	ErrNilController       = errors.New("freq: controller must not be nil")
	ErrInvalidLength       = errors.New("freq: length must be positive")
	ErrInvalidSamplingTime = errors.New("freq: sampling time must be positive and finite")
)

// ImpulseResponse returns the controller's response to a single unit of
// error at sample zero, over n samples.
//
// The controller is reset and its setpoint forced to zero for the duration
// of the measurement, so a measurement of -1 followed by zeros presents
// exactly one unit-impulse of error. Because the derivative acts on the
// measurement, which is the negated error under a zero setpoint, the
// recorded outputs are the complete error-to-output impulse response. The
// original setpoint is restored and the controller reset again before
// returning.
//
// Bounds stay active during the measurement; measure an unbounded copy if
// saturation would distort the response.
func ImpulseResponse(c *pid.Controller[float64], n int) ([]float64, error) {
	if c == nil {
		return nil, ErrNilController
	}

	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	setpoint := c.Setpoint()
	c.Reset()
	c.SetSetpoint(0)

	out := make([]float64, n)
	out[0] = c.Step(-1)
	for i := 1; i < n; i++ {
		out[i] = c.Step(0)
	}

	c.SetSetpoint(setpoint)
	c.Reset()

	return out, nil
}

// Response holds a one-sided frequency response from DC to Nyquist.
type Response struct {
	Frequencies []float64 // bin centers in Hz
	Magnitude   []float64 // |C(e^jw)| per bin
}

// FrequencyResponse computes the controller's magnitude response from an
// FFT of its impulse response. n is the minimum number of impulse-response
// samples to analyze; it is rounded up to the next power of two for the
// transform. samplingTime fixes the frequency axis: bins run from DC to
// the Nyquist frequency 1/(2*samplingTime).
func FrequencyResponse(c *pid.Controller[float64], samplingTime float64, n int) (*Response, error) {
	if samplingTime <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSamplingTime, samplingTime)
	}

	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	size := nextPowerOf2(n)

	ir, err := ImpulseResponse(c, size)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("freq: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	bins := make([]complex128, size)
	if err := plan.Forward(bins, in); err != nil {
		return nil, fmt.Errorf("freq: forward FFT failed: %w", err)
	}

	// Real input: keep the one-sided spectrum, DC through Nyquist.
	half := size/2 + 1

	re := make([]float64, half)
	im := make([]float64, half)
	for i := 0; i < half; i++ {
		re[i] = real(bins[i])
		im[i] = imag(bins[i])
	}

	mag := make([]float64, half)
	vecmath.Magnitude(mag, re, im)

	freqs := make([]float64, half)
	binWidth := 1 / (samplingTime * float64(size))
	for i := range freqs {
		freqs[i] = float64(i) * binWidth
	}

	return &Response{Frequencies: freqs, Magnitude: mag}, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
