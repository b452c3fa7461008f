// Package sim provides a fixed-step closed-loop simulation harness for
// exercising controllers offline: simple plant models discretized at the
// loop's sampling period, and a runner that drives a controller against a
// plant and records the trajectory.
//
// The harness exists for tuning, testing and analysis. It performs no I/O;
// a real deployment replaces the plant with the physical process and calls
// the controller directly.
package sim
