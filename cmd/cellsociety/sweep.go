package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"

	"cellsociety/internal/core"
	"cellsociety/internal/runner"
	"cellsociety/internal/scenario"
	"cellsociety/internal/sweep"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
)

var (
	sweepFlags   overrides
	flagAxes     []string
	flagSeeds    []int64
	flagWorkers  int
	flagSwSteps  int
	flagSwStable bool
	flagSwQuiet  bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <scenario>",
	Short: "Run a scenario across parameter values and seeds",
	Long: `Run every combination of the given parameter values and seeds, each on
its own copy of the scenario, and report the final populations.

An axis is key=v1,v2,... or key=start:stop:step.

Examples:
  cellsociety sweep segregation --axis threshold=0.1:0.9:0.1 --until-stable
  cellsociety sweep fire --axis catch_probability=0.2,0.4,0.6 --seeds 1,2,3,4
  cellsociety sweep wator --axis fish_breed_time=2:6:1 --axis shark_breed_time=6,8 --steps 300`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepFlags.bind(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&flagAxes, "axis", nil, "Parameter axis (repeatable)")
	sweepCmd.Flags().Int64SliceVar(&flagSeeds, "seeds", nil, "Seeds to run each combination with (default: the scenario's seed)")
	sweepCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Number of worker goroutines")
	sweepCmd.Flags().IntVar(&flagSwSteps, "steps", 200, "Maximum steps per job")
	sweepCmd.Flags().BoolVar(&flagSwStable, "until-stable", false, "Stop each job once a step changes nothing")
	sweepCmd.Flags().BoolVar(&flagSwQuiet, "no-progress", false, "Hide the progress bar")
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := sweepFlags.load(cmd, args[0])
	if err != nil {
		return err
	}
	axes := make([]sweep.Axis, 0, len(flagAxes))
	for _, spec := range flagAxes {
		a, err := sweep.ParseAxis(spec)
		if err != nil {
			return err
		}
		axes = append(axes, a)
	}
	seeds := flagSeeds
	if len(seeds) == 0 {
		seeds = []int64{s.Seed}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := sweep.Config{
		Build:   buildFrom(s),
		Axes:    axes,
		Seeds:   seeds,
		Steps:   flagSwSteps,
		Workers: flagWorkers,
		Logger:  logger,
	}
	if flagSwStable {
		cfg.Until = runner.Static
	}
	if !flagSwQuiet {
		bar := pb.New(len(sweep.Jobs(axes, seeds)))
		bar.SetWriter(os.Stderr)
		bar.Start()
		cfg.OnResult = func(sweep.Result) { bar.Increment() }
		defer bar.Finish()
	}

	results, err := sweep.Run(ctx, cfg)
	if err != nil {
		return err
	}
	printSweep(results)
	return nil
}

// buildFrom returns a builder that applies one job's parameters and seed to
// a private copy of s.
func buildFrom(s *scenario.Scenario) func(map[string]float64, int64) (core.Model, error) {
	return func(params map[string]float64, seed int64) (core.Model, error) {
		job := *s
		job.Params = maps.Clone(s.Params)
		if job.Params == nil {
			job.Params = map[string]float64{}
		}
		maps.Copy(job.Params, params)
		job.Seed = seed
		return job.New()
	}
}

func printSweep(results []sweep.Result) {
	stateSet := map[string]bool{}
	for _, r := range results {
		for name := range r.Population {
			stateSet[name] = true
		}
	}
	states := make([]string, 0, len(stateSet))
	for name := range stateSet {
		states = append(states, name)
	}
	sort.Strings(states)

	labelLen := len("Job")
	for _, r := range results {
		labelLen = max(labelLen, len(r.Label()))
	}

	var header strings.Builder
	fmt.Fprintf(&header, "  %-*s  %6s  %7s", labelLen, "Job", "Steps", "Settled")
	for _, name := range states {
		fmt.Fprintf(&header, "  %8s", name)
	}
	fmt.Println()
	fmt.Println(header.String())

	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("  %-*s  error: %v\n", labelLen, r.Label(), r.Err)
			continue
		}
		settled := "no"
		if r.Settled {
			settled = "yes"
		}
		fmt.Printf("  %-*s  %6d  %7s", labelLen, r.Label(), r.Steps, settled)
		for _, name := range states {
			fmt.Printf("  %8d", r.Population[name])
		}
		fmt.Println()
	}
}
