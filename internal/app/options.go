package app

import "cellsociety/internal/core"

// Builder produces a fresh model; the viewer calls it again on reset.
type Builder func() (core.Model, error)

// Options configures the desktop viewer.
type Options struct {
	// Name prefixes saved scenario files.
	Name     string
	Scale    int
	TPS      int
	HUDWidth int
	// SaveDir receives saved scenarios; empty means the user scenario dir.
	SaveDir string
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "snapshot"
	}
	if o.Scale <= 0 {
		o.Scale = 8
	}
	if o.TPS <= 0 {
		o.TPS = 10
	}
	if o.HUDWidth < 0 {
		o.HUDWidth = 0
	}
	return o
}
