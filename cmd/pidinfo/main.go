// Command pidinfo prints the dependent gains of a PID configuration and the
// step-response metrics of the closed loop it forms with a simulated
// first-order plant.
//
// Usage:
//
//	pidinfo [flags]
//
// Examples:
//
//	pidinfo -kp 2 -ki 0.5 -kd 0.1
//	pidinfo -kp 1.5 -ki 0.2 -ts 0.05 -setpoint 25 -steps 2000
//	pidinfo -kp 2 -ki 0.5 -plant-gain 1.5 -plant-tau 3
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mrshankly/control/control/pid"
	"github.com/mrshankly/control/control/sim"
	"github.com/mrshankly/control/measure/step"
)

func main() {
	kp := flag.Float64("kp", 1.0, "proportional gain")
	ki := flag.Float64("ki", 0.0, "integral gain")
	kd := flag.Float64("kd", 0.0, "derivative gain")
	tau := flag.Float64("tau", 0.0, "derivative low-pass filter time constant in seconds")
	ts := flag.Float64("ts", 0.1, "sampling period in seconds")
	setpoint := flag.Float64("setpoint", 10.0, "simulated loop setpoint")
	steps := flag.Int("steps", 1000, "number of simulated sampling periods")
	plantGain := flag.Float64("plant-gain", 1.0, "simulated plant static gain")
	plantTau := flag.Float64("plant-tau", 1.0, "simulated plant time constant in seconds")
	outMin := flag.Float64("out-min", 0, "lower output bound (used with -out-max)")
	outMax := flag.Float64("out-max", 0, "upper output bound (used with -out-min)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pidinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints dependent gains and simulated closed-loop step-response metrics\n")
		fmt.Fprintf(os.Stderr, "for a PID configuration against a first-order plant.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var opts []pid.Option[float64]
	if *outMin != 0 || *outMax != 0 {
		opts = append(opts, pid.WithOutputBounds(*outMin, *outMax))
	}

	ctrl, err := pid.New(*kp, *ki, *kd, *tau, *ts, *setpoint, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	plant, err := sim.NewFirstOrder(*plantGain, *plantTau, *ts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	tr, err := sim.Run(ctrl, plant, 0, *steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	metrics, err := step.Calculate(tr.Responses, *setpoint, *ts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	printReport(*kp, *ki, *kd, *tau, *ts, metrics)
}

func printReport(kp, ki, kd, tau, ts float64, m step.Metrics) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Dependent gains\t\n")
	fmt.Fprintf(tw, "  proportional\t%g\n", kp)
	fmt.Fprintf(tw, "  integral (ki*Ts/2)\t%g\n", 0.5*ki*ts)
	fmt.Fprintf(tw, "  derivative (-2*kd)\t%g\n", -2*kd)
	fmt.Fprintf(tw, "  filter coefficient\t%g\n", (2*tau-ts)/(2*tau+ts))
	fmt.Fprintf(tw, "\t\n")
	fmt.Fprintf(tw, "Step response (%d samples at %g s)\t\n", m.Length, ts)
	fmt.Fprintf(tw, "  rise time\t%g s\n", m.RiseTime)
	fmt.Fprintf(tw, "  peak\t%g at %g s\n", m.PeakValue, m.PeakTime)
	fmt.Fprintf(tw, "  overshoot\t%.1f%%\n", 100*m.Overshoot)
	fmt.Fprintf(tw, "  settling time (2%%)\t%g s\n", m.SettlingTime)
	fmt.Fprintf(tw, "  steady-state error\t%g\n", m.SteadyStateError)

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
