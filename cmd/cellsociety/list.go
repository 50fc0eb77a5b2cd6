package main

import (
	"fmt"

	"cellsociety/internal/core"
	"cellsociety/internal/scenario"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List models and bundled scenarios",
	Long:  `Shows every registered model with its states and parameters, followed by the bundled scenarios.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	sims := core.Sims()

	fmt.Println("Models:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, d := range sims {
		maxIDLen = max(maxIDLen, len(d.Name))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, d := range sims {
		fmt.Printf("  %-*s  %s\n", maxIDLen, d.Name, d.Title)
		fmt.Printf("  %-*s    states: %v\n", maxIDLen, "", d.States.Names())
		for _, p := range d.Params {
			fmt.Printf("  %-*s    %s = %g  %s\n", maxIDLen, "", p.Key, p.Default, p.Description)
		}
	}

	fmt.Println()
	fmt.Println("Bundled scenarios:")
	fmt.Println()
	for _, name := range scenario.Builtin() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println()
	fmt.Println("Run 'cellsociety run <scenario>' to run one.")
}
