// Package smooth provides per-sample conditioning for setpoint and command
// signals feeding a control loop: a one-pole exponential smoother and a
// slew-rate limiter.
//
// Both types follow the same discipline as the pid controller: one Process
// call per sampling period, scalar state only, no allocation and no
// internal synchronization.
package smooth
