package scenario

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"cellsociety/internal/core"
)

// FromModel captures a model's current grid, neighbor configuration and
// parameters. The RNG position is not part of the capture, so a stochastic
// model restored from it diverges from the original run.
func FromModel(name string, m core.Model) *Scenario {
	snap := m.Snapshot()
	rows, cols := snap.Dimensions()
	legend := DefaultLegend(m.States())
	chars := make(map[string]string, len(legend))
	for ch, state := range legend {
		chars[state] = ch
	}

	pictures := make([]string, rows)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		b.Reset()
		for c := 0; c < cols; c++ {
			b.WriteString(chars[m.States().Name(snap.At(snap.Index(r, c)))])
		}
		pictures[r] = b.String()
	}

	f := m.Finder()
	return &Scenario{
		Name:        name,
		Description: fmt.Sprintf("%s saved at generation %d", m.Name(), m.Generation()),
		Model:       m.Name(),
		Rows:        rows,
		Cols:        cols,
		Topology:    f.Topology.String(),
		Pattern:     f.Pattern.String(),
		Edges:       f.Edges.String(),
		Legend:      legend,
		Cells:       pictures,
		Params:      maps.Clone(map[string]float64(m.Params())),
	}
}

// Write stores the scenario at path, creating parent directories.
func Write(path string, s *Scenario) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("scenario: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scenario: write %s: %w", path, err)
	}
	return nil
}
