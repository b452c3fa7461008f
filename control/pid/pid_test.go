package pid

import (
	"errors"
	"math"
	"testing"

	"github.com/mrshankly/control/internal/testutil"
)

func mustNew(t *testing.T, kp, ki, kd, tau, samplingTime, setpoint float64, opts ...Option[float64]) *Controller[float64] {
	t.Helper()
	c, err := New(kp, ki, kd, tau, samplingTime, setpoint, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name                              string
		kp, ki, kd, tau, samplingTime, sp float64
		wantErr                           error
	}{
		{name: "nan kp", kp: math.NaN(), samplingTime: 0.1, wantErr: ErrNonFiniteCoefficient},
		{name: "inf ki", ki: math.Inf(1), samplingTime: 0.1, wantErr: ErrNonFiniteCoefficient},
		{name: "nan setpoint", samplingTime: 0.1, sp: math.NaN(), wantErr: ErrNonFiniteCoefficient},
		{name: "zero sampling time", wantErr: ErrSamplingTime},
		{name: "negative sampling time", samplingTime: -0.1, wantErr: ErrSamplingTime},
		{name: "inf sampling time", samplingTime: math.Inf(1), wantErr: ErrSamplingTime},
		{name: "degenerate filter", tau: -0.05, samplingTime: 0.1, wantErr: ErrDegenerateFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.kp, tt.ki, tt.kd, tt.tau, tt.samplingTime, tt.sp)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewOptionErrorPropagates(t *testing.T) {
	_, err := New(1.0, 0, 0, 0, 0.1, 0, WithIntegralBounds(5.0, 1.0))
	if !errors.Is(err, ErrBounds) {
		t.Fatalf("New() error = %v, want %v", err, ErrBounds)
	}
}

func TestNewNilOptionIgnored(t *testing.T) {
	if _, err := New(1.0, 0, 0, 0, 0.1, 0, nil); err != nil {
		t.Fatalf("New() error = %v", err)
	}
}

func TestStepZeroErrorYieldsZero(t *testing.T) {
	c := mustNew(t, 2.0, 0.5, 0.1, 0.2, 0.1, 0)

	if out := c.Step(0); out != 0 {
		t.Fatalf("Step(0) = %v, want 0", out)
	}
	if got := c.IntegralState(); got != 0 {
		t.Fatalf("IntegralState() = %v, want 0", got)
	}
	if got := c.DerivativeState(); got != 0 {
		t.Fatalf("DerivativeState() = %v, want 0", got)
	}
}

func TestStepConcreteScenario(t *testing.T) {
	// kp=2 ki=0.5 kd=0.1 tau=0.2 Ts=0.1 setpoint=10, constant measurement 0.
	c := mustNew(t, 2.0, 0.5, 0.1, 0.2, 0.1, 10.0)

	wantOutputs := []float64{20.25, 20.75, 21.25}
	prevIntegral := 0.0
	for i, want := range wantOutputs {
		out := c.Step(0)
		testutil.RequireNearlyEqual(t, out, want, 1e-12)

		if c.IntegralState() < prevIntegral {
			t.Fatalf("step %d: integral decreased: %v < %v", i, c.IntegralState(), prevIntegral)
		}
		prevIntegral = c.IntegralState()

		// Constant measurement keeps the derivative term at its zero start.
		if got := c.DerivativeState(); got != 0 {
			t.Fatalf("step %d: DerivativeState() = %v, want 0", i, got)
		}
	}
}

func TestIntegralAntiWindup(t *testing.T) {
	c := mustNew(t, 0, 10.0, 0, 0, 0.1, 10.0)
	if err := c.BoundIntegral(-1.0, 1.0); err != nil {
		t.Fatalf("BoundIntegral() error = %v", err)
	}

	// Large constant positive error: the accumulator must pin at the upper
	// bound, never beyond it.
	for i := 0; i < 50; i++ {
		c.Step(0)
		if got := c.IntegralState(); got > 1 {
			t.Fatalf("step %d: IntegralState() = %v, exceeds bound 1", i, got)
		}
	}
	if got := c.IntegralState(); got != 1 {
		t.Fatalf("IntegralState() = %v, want exactly 1", got)
	}

	// The first step with a strongly negative error must move the stored
	// state off the bound immediately, with no stored excess to unwind.
	c.Step(40.0)
	if got := c.IntegralState(); got >= 1 {
		t.Fatalf("IntegralState() = %v, expected immediate decrease below 1", got)
	}
}

func TestOutputClampIndependentOfIntegral(t *testing.T) {
	c := mustNew(t, 0, 10.0, 0, 0, 0.1, 10.0, WithOutputBounds(-10.0, 10.0))

	exceeded := false
	for i := 0; i < 20; i++ {
		out := c.Step(0)
		if out < -10 || out > 10 {
			t.Fatalf("step %d: output %v escapes output bounds", i, out)
		}
		if math.Abs(c.IntegralState()) > 10 {
			exceeded = true
		}
	}
	if !exceeded {
		t.Fatal("integral never exceeded the output bound; clamp independence not exercised")
	}
}

func TestNoDerivativeKickOnSetpointChange(t *testing.T) {
	c := mustNew(t, 1.0, 0, 5.0, 0.5, 0.1, 0)

	// Settle at measurement == setpoint == 0 so all state is exactly zero.
	for i := 0; i < 3; i++ {
		c.Step(0)
	}

	// A setpoint jump alone does not move the measurement, so the filtered
	// derivative must stay exactly zero even though the error jumped.
	c.SetSetpoint(10.0)
	out := c.Step(0)

	if got := c.DerivativeState(); got != 0 {
		t.Fatalf("DerivativeState() = %v, want exactly 0 after setpoint jump", got)
	}
	if out != 10 {
		t.Fatalf("Step() = %v, want pure proportional response 10", out)
	}
}

func TestBoundValidation(t *testing.T) {
	c := mustNew(t, 0, 10.0, 0, 0, 0.1, 10.0)
	if err := c.BoundIntegral(-1.0, 1.0); err != nil {
		t.Fatalf("BoundIntegral() error = %v", err)
	}

	tests := []struct {
		name     string
		min, max float64
	}{
		{name: "reversed", min: 5, max: 1},
		{name: "nan min", min: math.NaN(), max: 1},
		{name: "nan max", min: 0, max: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.BoundIntegral(tt.min, tt.max); !errors.Is(err, ErrBounds) {
				t.Fatalf("BoundIntegral() error = %v, want %v", err, ErrBounds)
			}
			if err := c.BoundOutput(tt.min, tt.max); !errors.Is(err, ErrBounds) {
				t.Fatalf("BoundOutput() error = %v, want %v", err, ErrBounds)
			}
		})
	}

	// The rejected pairs must not have replaced the active bounds.
	for i := 0; i < 10; i++ {
		c.Step(0)
	}
	if got := c.IntegralState(); got != 1 {
		t.Fatalf("IntegralState() = %v, want 1 (active bounds untouched)", got)
	}
}

func TestBoundReplacementTakesEffect(t *testing.T) {
	c := mustNew(t, 0, 10.0, 0, 0, 0.1, 10.0)
	if err := c.BoundIntegral(-1.0, 1.0); err != nil {
		t.Fatalf("BoundIntegral() error = %v", err)
	}
	c.Step(0)

	if err := c.BoundIntegral(-2.0, 2.0); err != nil {
		t.Fatalf("BoundIntegral() error = %v", err)
	}
	c.Step(0)

	if got := c.IntegralState(); got != 2 {
		t.Fatalf("IntegralState() = %v, want 2 after bound replacement", got)
	}
}

func TestDeterminism(t *testing.T) {
	newController := func() *Controller[float64] {
		return mustNew(t, 2.0, 0.5, 0.1, 0.2, 0.1, 10.0,
			WithIntegralBounds(-50.0, 50.0),
			WithOutputBounds(-100.0, 100.0),
		)
	}

	a := newController()
	b := newController()

	for _, m := range testutil.DeterministicNoise(7, 5.0, 256) {
		outA := a.Step(m)
		outB := b.Step(m)
		if outA != outB {
			t.Fatalf("outputs diverge: %v != %v", outA, outB)
		}
	}
	if a.IntegralState() != b.IntegralState() || a.DerivativeState() != b.DerivativeState() {
		t.Fatal("recurrence state diverged between identical controllers")
	}
}

func TestResetRestoresInitialBehavior(t *testing.T) {
	c := mustNew(t, 2.0, 0.5, 0.1, 0.2, 0.1, 10.0)
	noise := testutil.DeterministicNoise(3, 2.0, 64)

	first := make([]float64, len(noise))
	for i, m := range noise {
		first[i] = c.Step(m)
	}

	c.Reset()

	for i, m := range noise {
		if out := c.Step(m); out != first[i] {
			t.Fatalf("step %d after Reset: got %v, want %v", i, out, first[i])
		}
	}
}

func TestSetpointAccessors(t *testing.T) {
	c := mustNew(t, 1.0, 0, 0, 0, 0.1, 4.0)
	if got := c.Setpoint(); got != 4 {
		t.Fatalf("Setpoint() = %v, want 4", got)
	}
	c.SetSetpoint(-2.5)
	if got := c.Setpoint(); got != -2.5 {
		t.Fatalf("Setpoint() = %v, want -2.5", got)
	}
}

func TestNaNMeasurementPropagates(t *testing.T) {
	c := mustNew(t, 2.0, 0.5, 0.1, 0.2, 0.1, 10.0,
		WithOutputBounds(-10.0, 10.0),
	)

	if out := c.Step(math.NaN()); !math.IsNaN(out) {
		t.Fatalf("Step(NaN) = %v, want NaN", out)
	}
}

func TestFloat32Instantiation(t *testing.T) {
	c, err := New[float32](2.0, 0.5, 0.1, 0.2, 0.1, 10.0)
	if err != nil {
		t.Fatalf("New[float32]() error = %v", err)
	}

	out := c.Step(0)
	if diff := math.Abs(float64(out) - 20.25); diff > 1e-4 {
		t.Fatalf("Step(0) = %v, want ~20.25", out)
	}
}
