package testutil

import "math/rand"

// Constant returns a sequence of the given length filled with value.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// StepSequence returns a sequence that holds low before pos and high from
// pos on.
func StepSequence(low, high float64, length, pos int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i < pos {
			out[i] = low
		} else {
			out[i] = high
		}
	}
	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
