package main

import (
	"fmt"
	"sort"
	"strconv"

	"cellsociety/internal/storage"

	"github.com/spf13/cobra"
)

var (
	flagLimit  int
	flagDelete bool
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded runs or one run's population history",
	Long: `Without arguments, list the most recent recorded runs. With a run id,
print the population of every state at each recorded generation.

Examples:
  cellsociety history
  cellsociety history 3
  cellsociety history 3 --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to list")
	historyCmd.Flags().BoolVar(&flagDelete, "delete", false, "Delete the given run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return listRuns(store)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}
	if flagDelete {
		if err := store.DeleteRun(id); err != nil {
			return err
		}
		fmt.Printf("Deleted run %d.\n", id)
		return nil
	}
	return showRun(store, id)
}

func listRuns(store *storage.Store) error {
	runs, err := store.Runs(flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Record one with 'cellsociety run <scenario> --record'.")
		return nil
	}

	fmt.Printf("  %-4s  %-14s  %-12s  %-9s  %-22s  %6s  %s\n", "ID", "Scenario", "Model", "Size", "Neighbors", "Steps", "Date")
	fmt.Printf("  %-4s  %-14s  %-12s  %-9s  %-22s  %6s  %s\n", "--", "--------", "-----", "----", "---------", "-----", "----")
	for _, r := range runs {
		size := fmt.Sprintf("%dx%d", r.Rows, r.Cols)
		hood := fmt.Sprintf("%s/%s/%s", r.Topology, r.Pattern, r.Edges)
		fmt.Printf("  %-4d  %-14s  %-12s  %-9s  %-22s  %6d  %s\n",
			r.ID, r.Scenario, r.Model, size, hood, r.Steps, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func showRun(store *storage.Store, id int64) error {
	run, err := store.Run(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %d", id)
	}
	samples, err := store.History(id)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d - %s (%s, %dx%d %s/%s/%s, seed %d)\n", run.ID, run.Scenario, run.Model,
		run.Rows, run.Cols, run.Topology, run.Pattern, run.Edges, run.Seed)
	fmt.Println()
	if len(samples) == 0 {
		fmt.Println("No samples recorded.")
		return nil
	}

	stateSet := map[string]bool{}
	for _, s := range samples {
		for name := range s.Counts {
			stateSet[name] = true
		}
	}
	states := make([]string, 0, len(stateSet))
	for name := range stateSet {
		states = append(states, name)
	}
	sort.Strings(states)

	fmt.Printf("  %10s", "Generation")
	for _, name := range states {
		fmt.Printf("  %8s", name)
	}
	fmt.Println()
	for _, s := range samples {
		fmt.Printf("  %10d", s.Generation)
		for _, name := range states {
			fmt.Printf("  %8d", s.Counts[name])
		}
		fmt.Println()
	}
	return nil
}
