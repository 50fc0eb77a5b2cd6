package main

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"cellsociety/internal/core"
	"cellsociety/internal/scenario"

	"github.com/spf13/cobra"
)

// overrides are the scenario flags shared by every command that loads one.
type overrides struct {
	seed     int64
	topology string
	pattern  string
	edges    string
	params   []string
}

func (o *overrides) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&o.seed, "seed", 0, "Override the scenario's RNG seed")
	cmd.Flags().StringVar(&o.topology, "topology", "", "Override topology: square, triangular, hexagonal")
	cmd.Flags().StringVar(&o.pattern, "pattern", "", "Override neighbor pattern: moore, cardinal, diagonal, hex")
	cmd.Flags().StringVar(&o.edges, "edges", "", "Override edge policy: bounded, toroidal")
	cmd.Flags().StringArrayVar(&o.params, "param", nil, "Override a model parameter (key=value, repeatable)")
}

// load finds the named scenario and applies the command line overrides.
func (o *overrides) load(cmd *cobra.Command, name string) (*scenario.Scenario, error) {
	s, err := scenario.Load(name)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		s.Seed = o.seed
	}
	if o.topology != "" {
		s.Topology = o.topology
	}
	if o.pattern != "" {
		s.Pattern = o.pattern
	}
	if o.edges != "" {
		s.Edges = o.edges
	}
	if len(o.params) > 0 {
		s.Params = maps.Clone(s.Params)
		if s.Params == nil {
			s.Params = map[string]float64{}
		}
		for _, kv := range o.params {
			key, raw, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("--param %q: want key=value: %w", kv, core.ErrConfiguration)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("--param %q: %v: %w", kv, err, core.ErrConfiguration)
			}
			s.Params[strings.TrimSpace(key)] = v
		}
	}
	// Build once up front so bad overrides fail before windows or sockets open.
	if _, err := s.New(); err != nil {
		return nil, err
	}
	return s, nil
}
