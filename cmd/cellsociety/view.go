package main

import "github.com/spf13/cobra"

var (
	viewFlags    overrides
	flagScale    int
	flagViewTPS  int
	flagViewSave string
)

var viewCmd = &cobra.Command{
	Use:   "view <scenario>",
	Short: "Open a scenario in the desktop viewer",
	Long: `Open the scenario in a window. Requires a build with the ebiten tag:

  go build -tags ebiten ./cmd/cellsociety

Controls:
  Space/Enter  - Pause / resume
  N            - Single step
  R            - Reset
  S            - Save the current state as a scenario
  Up/Down      - Double / halve speed
  1            - Toggle the neighbor overlay
  Click        - Cycle a cell, or a HUD control
  Q/Esc        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewFlags.bind(viewCmd)
	viewCmd.Flags().IntVar(&flagScale, "scale", 8, "Pixels per cell")
	viewCmd.Flags().IntVar(&flagViewTPS, "tps", 10, "Steps per second")
	viewCmd.Flags().StringVar(&flagViewSave, "save-dir", "", "Directory for saved scenarios (default: ~/.cellsociety/scenarios)")
}
