//go:build ebiten

package main

import (
	"errors"

	"cellsociety/internal/app"
	"cellsociety/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

const hudWidth = 220

func runView(cmd *cobra.Command, args []string) error {
	s, err := viewFlags.load(cmd, args[0])
	if err != nil {
		return err
	}
	game, err := app.New(func() (core.Model, error) { return s.New() }, app.Options{
		Name:     s.Name,
		Scale:    flagScale,
		TPS:      flagViewTPS,
		HUDWidth: hudWidth,
		SaveDir:  flagViewSave,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("Cell Society - " + s.Name)
	ebiten.SetWindowSize(game.Layout(0, 0))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
