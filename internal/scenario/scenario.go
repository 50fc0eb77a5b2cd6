// Package scenario reads and writes simulation setups as YAML.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"cellsociety/internal/core"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Load when no file or built-in matches a name.
var ErrNotFound = errors.New("scenario not found")

// Scenario is the on-disk description of a simulation setup.
//
// Cells holds one picture string per row, each character mapped to a state
// name through Legend. When Legend is empty the model's default legend is
// used. Rows and Cols may be omitted when Cells is present.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Model       string `yaml:"model"`

	Rows     int    `yaml:"rows,omitempty"`
	Cols     int    `yaml:"cols,omitempty"`
	Topology string `yaml:"topology,omitempty"`
	Pattern  string `yaml:"pattern,omitempty"`
	Edges    string `yaml:"edges,omitempty"`
	Seed     int64  `yaml:"seed,omitempty"`

	Legend       map[string]string  `yaml:"legend,omitempty"`
	Cells        []string           `yaml:"cells,omitempty"`
	Distribution map[string]float64 `yaml:"distribution,omitempty"`
	Params       map[string]float64 `yaml:"params,omitempty"`
}

// Parse decodes a scenario document. Unknown fields are rejected. source is
// only used in error messages.
func Parse(data []byte, source string) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", source, err)
	}
	if s.Model == "" {
		return nil, fmt.Errorf("scenario: %s: model is required: %w", source, core.ErrConfiguration)
	}
	return &s, nil
}

// Marshal encodes the scenario as YAML.
func (s *Scenario) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("scenario: encode %s: %w", s.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("scenario: encode %s: %w", s.Name, err)
	}
	return buf.Bytes(), nil
}

// Config converts the scenario into model construction input.
func (s *Scenario) Config() (core.Config, error) {
	d, ok := core.Lookup(s.Model)
	if !ok {
		return core.Config{}, fmt.Errorf("scenario: %s: unknown model %q: %w", s.Name, s.Model, core.ErrConfiguration)
	}
	topo, err := core.ParseTopology(s.Topology)
	if err != nil {
		return core.Config{}, fmt.Errorf("scenario: %s: %w", s.Name, err)
	}
	pattern, err := core.ParsePattern(s.Pattern)
	if err != nil {
		return core.Config{}, fmt.Errorf("scenario: %s: %w", s.Name, err)
	}
	edges, err := core.ParseEdgePolicy(s.Edges)
	if err != nil {
		return core.Config{}, fmt.Errorf("scenario: %s: %w", s.Name, err)
	}

	cfg := core.Config{
		Model:        s.Model,
		Rows:         s.Rows,
		Cols:         s.Cols,
		Topology:     topo,
		Pattern:      pattern,
		Edges:        edges,
		Distribution: s.Distribution,
		Params:       s.Params,
		Seed:         s.Seed,
	}
	if len(s.Cells) == 0 {
		return cfg, nil
	}

	legend := s.Legend
	if len(legend) == 0 {
		legend = DefaultLegend(d.States)
	}
	if cfg.Rows == 0 {
		cfg.Rows = len(s.Cells)
	}
	if cfg.Cols == 0 {
		cfg.Cols = utf8.RuneCountInString(s.Cells[0])
	}
	if len(s.Cells) != cfg.Rows {
		return core.Config{}, fmt.Errorf("scenario: %s: %d picture rows for %d grid rows: %w", s.Name, len(s.Cells), cfg.Rows, core.ErrConfiguration)
	}
	cfg.Cells = make([]string, 0, cfg.Rows*cfg.Cols)
	for r, row := range s.Cells {
		if n := utf8.RuneCountInString(row); n != cfg.Cols {
			return core.Config{}, fmt.Errorf("scenario: %s: row %d has %d cells, want %d: %w", s.Name, r, n, cfg.Cols, core.ErrConfiguration)
		}
		for c, ch := range []rune(row) {
			name, ok := legend[string(ch)]
			if !ok {
				return core.Config{}, fmt.Errorf("scenario: %s: cell (%d,%d): %q is not in the legend: %w", s.Name, r, c, ch, core.ErrConfiguration)
			}
			cfg.Cells = append(cfg.Cells, name)
		}
	}
	return cfg, nil
}

// New builds the model the scenario describes.
func (s *Scenario) New() (core.Model, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	return core.New(cfg)
}

// DefaultLegend assigns one character per state: '.' for the default state
// and the first free letter of the name for the rest, falling back to digits
// and punctuation.
func DefaultLegend(set *core.StateSet) map[string]string {
	legend := make(map[string]string, set.Len())
	for i, name := range set.Names() {
		legend[legendChar(legend, i, name)] = name
	}
	return legend
}

func legendChar(used map[string]string, i int, name string) string {
	if i == 0 {
		return "."
	}
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsLetter(r) {
		for _, cand := range []rune{unicode.ToUpper(r), unicode.ToLower(r)} {
			if _, taken := used[string(cand)]; !taken {
				return string(cand)
			}
		}
	}
	for _, cand := range fallbackChars {
		if _, taken := used[string(cand)]; !taken {
			return string(cand)
		}
	}
	return fmt.Sprintf("<%d>", i)
}

const fallbackChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ#*+=@%&"
