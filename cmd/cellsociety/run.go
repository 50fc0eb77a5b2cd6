package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"cellsociety/internal/core"
	"cellsociety/internal/render"
	"cellsociety/internal/runner"
	"cellsociety/internal/scenario"
	"cellsociety/internal/storage"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	runFlags       overrides
	flagSteps      int
	flagTPS        int
	flagPrint      bool
	flagProgress   bool
	flagRecord     bool
	flagSampleStep int
	flagSavePath   string
	flagUntilStill bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario without a viewer",
	Long: `Run a scenario headless and report the final population.

With --record every sampled generation is stored in the history database
(see 'cellsociety history'). With --until-stable the run stops as soon as
a step leaves the grid unchanged.

Examples:
  cellsociety run glider --steps 40 --print
  cellsociety run wator --steps 1000 --record --sample-every 10
  cellsociety run segregation --until-stable --steps 500
  cellsociety run fire --param catch_probability=0.7 --save out.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runFlags.bind(runCmd)
	runCmd.Flags().IntVar(&flagSteps, "steps", 100, "Steps to run (0 = until interrupted or stable)")
	runCmd.Flags().IntVar(&flagTPS, "tps", 0, "Steps per second (0 = as fast as possible)")
	runCmd.Flags().BoolVar(&flagPrint, "print", false, "Print the grid before and after the run")
	runCmd.Flags().BoolVar(&flagProgress, "progress", false, "Show a progress bar")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record population history to the database")
	runCmd.Flags().IntVar(&flagSampleStep, "sample-every", 1, "Record every Nth generation")
	runCmd.Flags().StringVar(&flagSavePath, "save", "", "Write the final state as a scenario file")
	runCmd.Flags().BoolVar(&flagUntilStill, "until-stable", false, "Stop once a step changes nothing")
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := runFlags.load(cmd, args[0])
	if err != nil {
		return err
	}
	m, err := s.New()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := runner.Options{
		Steps:       flagSteps,
		TPS:         flagTPS,
		SampleEvery: flagSampleStep,
		Logger:      logger,
	}
	if flagUntilStill {
		opts.Until = runner.Static()
	}

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		f := m.Finder()
		rows, cols := m.Dimensions()
		id, err := store.StartRun(storage.Run{
			Scenario: s.Name,
			Model:    m.Name(),
			Rows:     rows,
			Cols:     cols,
			Topology: f.Topology.String(),
			Pattern:  f.Pattern.String(),
			Edges:    f.Edges.String(),
			Seed:     s.Seed,
		})
		if err != nil {
			return err
		}
		opts.Recorder = store.Recorder(id)
		logger.Info("recording run", "id", id, "db", flagDBPath)
	}

	if flagProgress && flagSteps > 0 {
		bar := pb.New(flagSteps)
		bar.SetWriter(os.Stderr)
		bar.Start()
		defer bar.Finish()
		opts.Observe = func(core.Model) { bar.Increment() }
	}

	if flagPrint {
		printGrid(s, m)
	}
	res, err := runner.Run(ctx, m, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if flagPrint {
		printGrid(s, m)
	}

	printSummary(res)
	if flagSavePath != "" {
		name := fmt.Sprintf("%s-gen%d", s.Name, m.Generation())
		if err := scenario.Write(flagSavePath, scenario.FromModel(name, m)); err != nil {
			return err
		}
		logger.Info("scenario saved", "path", flagSavePath)
	}
	return nil
}

// printGrid writes the grid to stdout, coloured when stdout is a terminal.
func printGrid(s *scenario.Scenario, m core.Model) {
	legend := s.Legend
	if len(legend) == 0 {
		legend = scenario.DefaultLegend(m.States())
	}
	glyphs := render.GlyphsFromLegend(m.States(), legend)
	snap := m.Snapshot()

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Println(render.Text(snap, glyphs))
		fmt.Println()
		return
	}
	if w, _, err := term.GetSize(fd); err == nil {
		if _, cols := snap.Dimensions(); cols > w {
			logger.Warn("grid is wider than the terminal", "cols", cols, "width", w)
		}
	}
	fmt.Printf("generation %d\n", m.Generation())
	fmt.Println(render.NewStyler(m.States(), glyphs).Render(snap))
	fmt.Println()
}

func printSummary(res runner.Result) {
	names := make([]string, 0, len(res.Population))
	for name := range res.Population {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Steps:      %d\n", res.Steps)
	fmt.Printf("Generation: %d\n", res.Generation)
	fmt.Printf("Elapsed:    %s\n", res.Elapsed.Round(time.Millisecond))
	if res.Settled {
		fmt.Println("Settled:    yes")
	}
	fmt.Println("Population:")
	for _, name := range names {
		fmt.Printf("  %-10s %d\n", name, res.Population[name])
	}
}
