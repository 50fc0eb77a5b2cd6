//go:build !ebiten

package main

import (
	"cellsociety/internal/app"

	"github.com/spf13/cobra"
)

func runView(cmd *cobra.Command, args []string) error {
	if _, err := viewFlags.load(cmd, args[0]); err != nil {
		return err
	}
	_, err := app.New(nil, app.Options{})
	return err
}
