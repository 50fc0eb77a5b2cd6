package main

import (
	"io"
	"os"

	"cellsociety/internal/core"
	"cellsociety/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	tuiFlags    overrides
	flagTuiTPS  int
	flagPaused  bool
	flagSaveDir string
	flagLogFile string
)

var tuiCmd = &cobra.Command{
	Use:   "tui <scenario>",
	Short: "Run a scenario in the interactive terminal viewer",
	Long: `Open the scenario in a full-screen terminal viewer.

Controls:
  Space      - Pause/resume
  N          - Single step
  R          - Reset to the scenario
  Arrows     - Move the cursor
  Enter      - Cycle the cell under the cursor
  T / G / E  - Cycle topology, neighbor pattern, edge policy
  + / -      - Faster / slower
  S          - Save the current state as a scenario
  ?          - All keys
  Q/Ctrl+C   - Quit

Examples:
  cellsociety tui glider
  cellsociety tui hexlife --tps 20`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	tuiFlags.bind(tuiCmd)
	tuiCmd.Flags().IntVar(&flagTuiTPS, "tps", 10, "Steps per second")
	tuiCmd.Flags().BoolVar(&flagPaused, "paused", false, "Start paused")
	tuiCmd.Flags().StringVar(&flagSaveDir, "save-dir", "", "Directory for saved scenarios (default: ~/.cellsociety/scenarios)")
	tuiCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the viewer runs")
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := tuiFlags.load(cmd, args[0])
	if err != nil {
		return err
	}

	// The viewer owns the terminal, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	viewLog := log.NewWithOptions(out, log.Options{ReportTimestamp: true, Prefix: "cellsociety-tui"})
	viewLog.SetLevel(logger.GetLevel())

	return tui.Run(func() (core.Model, error) { return s.New() }, tui.Options{
		Name:    s.Name,
		TPS:     flagTuiTPS,
		Legend:  s.Legend,
		SaveDir: flagSaveDir,
		Paused:  flagPaused,
	}, viewLog)
}
