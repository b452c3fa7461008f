package sim

// Controller produces a control output from a process measurement once per
// sampling period. *pid.Controller[float64] satisfies it.
type Controller interface {
	Step(measurement float64) float64
}

// Trajectory records one closed-loop run. All slices have the same length;
// index i holds the i-th sampling period: the measurement fed to the
// controller, the output it produced, and the plant's response to that
// output.
type Trajectory struct {
	Measurements []float64 // measurement presented to the controller
	Outputs      []float64 // controller output applied to the plant
	Responses    []float64 // plant measurement after applying the output
}

// Len returns the number of recorded sampling periods.
func (tr Trajectory) Len() int {
	return len(tr.Outputs)
}

// Run drives ctrl against plant for steps sampling periods, starting from
// the measurement initial, and records the trajectory. The plant is stepped
// with each controller output; its response becomes the next measurement.
//
// Run does not reset either party, so a run can continue a previous one or
// start from a primed plant state.
func Run(ctrl Controller, plant Plant, initial float64, steps int) (Trajectory, error) {
	if ctrl == nil {
		return Trajectory{}, ErrNilController
	}

	if plant == nil {
		return Trajectory{}, ErrNilPlant
	}

	if steps <= 0 {
		return Trajectory{}, ErrNonPositiveSteps
	}

	tr := Trajectory{
		Measurements: make([]float64, steps),
		Outputs:      make([]float64, steps),
		Responses:    make([]float64, steps),
	}

	measurement := initial
	for i := 0; i < steps; i++ {
		out := ctrl.Step(measurement)

		tr.Measurements[i] = measurement
		tr.Outputs[i] = out

		measurement = plant.Step(out)
		tr.Responses[i] = measurement
	}

	return tr, nil
}
