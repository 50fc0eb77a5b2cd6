package core

import (
	"fmt"
	"sort"
)

// Model is the contract every simulation family implements. Update and Click
// must not be called concurrently on the same Model.
type Model interface {
	Name() string
	// Update advances the simulation by one generation.
	Update()
	// Click rotates the state of one cell to its successor.
	Click(row, col int) error
	State(row, col int) (State, error)
	// Population returns a fresh map from state name to cell count.
	Population() map[string]int
	Dimensions() (rows, cols int)
	SetGrid(kind Topology) error
	SetNeighborPattern(p Pattern) error
	SetEdgePolicy(e EdgePolicy) error
	States() *StateSet
	// Snapshot returns a copy of the grid that the caller may keep.
	Snapshot() *Grid
	Generation() int
	Parameters() ParameterSnapshot
	// Params returns the resolved numeric parameters.
	Params() Params
	// Finder returns the active neighbor configuration.
	Finder() NeighborFinder
}

// Config is the construction input for a Model. At most one of Cells,
// Distribution and Generator may be set; with none, every cell starts in
// the default state.
type Config struct {
	Model    string
	Rows     int
	Cols     int
	Topology Topology
	Pattern  Pattern
	Edges    EdgePolicy

	// Cells lists R*C state names in row-major order.
	Cells []string
	// Distribution seeds each cell at random with weights by state name.
	Distribution map[string]float64
	// Generator picks the initial state of each cell.
	Generator func(row, col int, rng *RNG) State

	Params map[string]float64

	// Seed initializes the model's RNG unless RNG is set.
	Seed int64
	RNG  *RNG
}

// Descriptor registers a simulation family.
type Descriptor struct {
	Name   string
	Title  string
	States *StateSet
	Params []ParamSpec
	// Build wraps the shared bookkeeping into the family's Model.
	Build func(b *Base) (Model, error)
}

var sims = map[string]Descriptor{}

// Register adds a simulation family. It panics on duplicate or incomplete
// registrations since those happen from init functions.
func Register(d Descriptor) {
	if d.Name == "" || d.States == nil || d.Build == nil {
		panic("core: incomplete simulation descriptor")
	}
	if _, exists := sims[d.Name]; exists {
		panic(fmt.Sprintf("core: simulation %q already registered", d.Name))
	}
	sims[d.Name] = d
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := sims[name]
	return d, ok
}

// Sims lists the registered descriptors sorted by name.
func Sims() []Descriptor {
	out := make([]Descriptor, 0, len(sims))
	for _, d := range sims {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// New builds the registered Model named by cfg.Model.
func New(cfg Config) (Model, error) {
	d, ok := sims[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("core: unknown model %q: %w", cfg.Model, ErrConfiguration)
	}
	b, err := NewBase(d, cfg)
	if err != nil {
		return nil, err
	}
	return d.Build(b)
}
