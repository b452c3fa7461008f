// Package pid implements a discrete-time proportional-integral-derivative
// controller for fixed-rate control loops.
//
// The controller is a pure numeric state machine: the embedding loop samples
// the process once per period and calls [Controller.Step] with the fresh
// measurement; Step performs only scalar arithmetic on owned state and never
// allocates, blocks or performs I/O. The recurrence uses a trapezoidal
// integral with clamp-after-accumulate anti-windup, a low-pass filtered
// derivative computed on the measurement (so setpoint changes cannot kick
// the output), and an independent output saturation clamp.
//
// Configuration mistakes (non-finite coefficients, a non-positive sampling
// period, a bound pair with min > max) are reported as errors rather than
// process aborts; an invalid bound pair never replaces the active one. NaN
// values arriving through Step propagate unchanged through both clamps.
//
// A Controller provides no internal synchronization. Run one instance per
// control loop, or guard shared access with an external lock.
package pid
