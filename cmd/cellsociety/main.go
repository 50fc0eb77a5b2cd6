// cellsociety runs grid-based cellular simulations.
//
// Usage:
//
//	cellsociety list                 - List models and bundled scenarios
//	cellsociety run <scenario>       - Run headless, optionally recording history
//	cellsociety sweep <scenario>     - Run a parameter sweep in parallel
//	cellsociety history [run-id]     - Show recorded runs and population history
//	cellsociety serve <scenario>     - Stream a run to websocket viewers
//	cellsociety tui <scenario>       - Interactive terminal viewer
//	cellsociety view <scenario>      - Desktop viewer (requires the ebiten build tag)
//
// Global flags:
//
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--db <path>          - History database (default: ~/.cellsociety/history.db)
package main

import (
	"fmt"
	"os"

	"cellsociety/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import models to register them
	_ "cellsociety/internal/sims/briansbrain"
	_ "cellsociety/internal/sims/elementary"
	_ "cellsociety/internal/sims/fire"
	_ "cellsociety/internal/sims/life"
	_ "cellsociety/internal/sims/segregation"
	_ "cellsociety/internal/sims/wator"
)

var (
	// Global flags
	flagLogLevel string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cellsociety",
	Short: "Cell Society - grid-based cellular simulations",
	Long: `Cell Society runs cellular simulations (Game of Life, Brian's Brain,
Wa-Tor, Schelling segregation, spreading fire and elementary Wolfram
rules) on square, triangular or hexagonal grids.

Scenarios are YAML files. A name is looked up as a path, then in
~/.cellsociety/scenarios, then in ./scenarios, then among the bundled
scenarios listed by 'cellsociety list'.

Examples:
  cellsociety list
  cellsociety run glider --steps 20 --print
  cellsociety run wator --steps 500 --record
  cellsociety sweep segregation --axis threshold=0.1:0.9:0.1 --seeds 1,2,3
  cellsociety serve fire --addr :8080
  cellsociety tui brain`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
}

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "cellsociety",
})

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the run history database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(viewCmd)
}
