// Command soak runs many randomized simulations in parallel and checks the
// locomotion invariants on every step.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/milk9111/locomotion/logger"
)

func main() {
	runs := flag.Int("runs", 200, "number of simulations")
	steps := flag.Int("steps", 3000, "physics steps per simulation")
	workers := flag.Int("workers", runtime.NumCPU(), "pool size")
	seed := flag.Int64("seed", 1, "base seed; run i uses seed+i")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "console"})
	l := logger.L()

	report, err := Soak(Options{Runs: *runs, Steps: *steps, Workers: *workers, Seed: *seed})
	if err != nil {
		l.Error("soak failed", "err", err)
		os.Exit(1)
	}

	l.Info("soak finished", "runs", report.Runs, "steps", report.Steps, "jumps", report.Jumps, "landings", report.Landings, "failures", len(report.Failures))
	for _, f := range report.Failures {
		fmt.Fprintf(os.Stderr, "seed %d step %d: %s\n", f.Seed, f.Step, f.Reason)
	}
	if len(report.Failures) > 0 || report.Runs != *runs {
		os.Exit(1)
	}
}
