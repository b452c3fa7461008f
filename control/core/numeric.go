package core

import "math"

const defaultEpsilon = 1e-12

// Float covers the floating-point kinds the control types are generic over:
// single or double precision, including named types with those underlying
// kinds.
type Float interface {
	~float32 | ~float64
}

// Clamp limits value to the inclusive range [min, max].
//
// Callers must pass min <= max. NaN propagates unchanged: a NaN value
// compares false against both bounds and is returned as-is.
func Clamp[T Float](value, min, max T) T {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Inf returns positive infinity if sign >= 0, negative infinity otherwise.
func Inf[T Float](sign int) T {
	return T(math.Inf(sign))
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite[T Float](x T) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NearlyEqual reports whether a and b are equal within eps, using a combined
// absolute and relative tolerance.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in recursive accumulators
// that decay toward zero.
func FlushDenormals[T Float](x T) T {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}
