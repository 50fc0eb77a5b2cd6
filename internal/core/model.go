package core

import "fmt"

// Base carries the bookkeeping every Model shares: the grid, the double
// buffer, population counts, the neighbor table, parameters and the RNG.
// Simulation families embed *Base and supply Update.
//
// A step reads only the current buffer and writes every cell of the next
// buffer, then Commit swaps them. Neighbor lookups therefore never observe
// states written earlier in the same step.
type Base struct {
	desc   Descriptor
	grid   *Grid
	next   []State
	pop    *Population
	finder NeighborFinder
	hood   Neighborhood
	params Params
	rng    *RNG
	gen    int
}

// NewBase validates cfg against the descriptor and builds the initial grid.
func NewBase(d Descriptor, cfg Config) (*Base, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("core: %s: dimensions %dx%d must be positive: %w", d.Name, cfg.Rows, cfg.Cols, ErrConfiguration)
	}
	finder := NeighborFinder{Topology: cfg.Topology, Pattern: cfg.Pattern, Edges: cfg.Edges}
	if err := finder.Validate(); err != nil {
		return nil, err
	}
	params, err := ResolveParams(d.Params, cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("core: %s: %w", d.Name, err)
	}
	rng := cfg.RNG
	if rng == nil {
		rng = NewRNG(cfg.Seed)
	}
	grid, err := NewGrid(cfg.Rows, cfg.Cols, cfg.Topology, cfg.Edges)
	if err != nil {
		return nil, fmt.Errorf("core: %s: %v: %w", d.Name, err, ErrConfiguration)
	}
	if err := seedGrid(grid, d.States, cfg, rng); err != nil {
		return nil, fmt.Errorf("core: %s: %w", d.Name, err)
	}
	hood, err := BuildNeighborhood(cfg.Rows, cfg.Cols, finder)
	if err != nil {
		return nil, err
	}
	return &Base{
		desc:   d,
		grid:   grid,
		next:   make([]State, grid.Len()),
		pop:    NewPopulation(d.States, grid),
		finder: finder,
		hood:   hood,
		params: params,
		rng:    rng,
	}, nil
}

func seedGrid(g *Grid, set *StateSet, cfg Config, rng *RNG) error {
	sources := 0
	if cfg.Cells != nil {
		sources++
	}
	if cfg.Distribution != nil {
		sources++
	}
	if cfg.Generator != nil {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("cells, distribution and generator are mutually exclusive: %w", ErrConfiguration)
	}

	switch {
	case cfg.Cells != nil:
		if len(cfg.Cells) != g.Len() {
			return fmt.Errorf("got %d cell states for a %dx%d grid: %w", len(cfg.Cells), g.rows, g.cols, ErrConfiguration)
		}
		for i, name := range cfg.Cells {
			st, ok := set.Lookup(name)
			if !ok {
				return fmt.Errorf("cell %v: unknown state %q: %w", g.Position(i), name, ErrConfiguration)
			}
			g.data[i] = st
		}
	case cfg.Distribution != nil:
		weights := make([]float64, set.Len())
		total := 0.0
		for name, w := range cfg.Distribution {
			st, ok := set.Lookup(name)
			if !ok {
				return fmt.Errorf("distribution: unknown state %q: %w", name, ErrConfiguration)
			}
			if w < 0 {
				return fmt.Errorf("distribution: negative weight for %q: %w", name, ErrConfiguration)
			}
			weights[st] = w
			total += w
		}
		if total <= 0 {
			return fmt.Errorf("distribution: weights sum to zero: %w", ErrConfiguration)
		}
		for i := range g.data {
			g.data[i] = State(rng.Weighted(weights))
		}
	case cfg.Generator != nil:
		for i := range g.data {
			pos := g.Position(i)
			st := cfg.Generator(pos.Row, pos.Col, rng)
			if !set.Valid(st) {
				return fmt.Errorf("generator returned state %d at %v: %w", st, pos, ErrConfiguration)
			}
			g.data[i] = st
		}
	}
	return nil
}

// Name returns the simulation identifier.
func (b *Base) Name() string { return b.desc.Name }

// States returns the model's state set.
func (b *Base) States() *StateSet { return b.desc.States }

// Dimensions returns the grid's rows and columns.
func (b *Base) Dimensions() (rows, cols int) { return b.grid.Dimensions() }

// Generation counts committed steps.
func (b *Base) Generation() int { return b.gen }

// Params returns the resolved parameters.
func (b *Base) Params() Params { return b.params }

// RNG returns the model's random source.
func (b *Base) RNG() *RNG { return b.rng }

// Finder returns the active neighbor configuration.
func (b *Base) Finder() NeighborFinder { return b.finder }

// State returns the state at (row, col).
func (b *Base) State(row, col int) (State, error) {
	c, err := b.grid.Get(row, col)
	if err != nil {
		return 0, err
	}
	return c.State, nil
}

// Population returns a copy of the population counts keyed by state name.
func (b *Base) Population() map[string]int { return b.pop.Map() }

// Count returns the population of a single state.
func (b *Base) Count(st State) int { return b.pop.Count(st) }

// Snapshot returns an independent copy of the current grid.
func (b *Base) Snapshot() *Grid { return b.grid.Clone() }

// Click rotates the state at (row, col) and updates the counts immediately.
func (b *Base) Click(row, col int) error {
	if !b.grid.Contains(row, col) {
		return b.grid.outOfBounds(row, col)
	}
	idx := b.grid.Index(row, col)
	old := b.grid.data[idx]
	st := b.desc.States.Next(old)
	b.grid.data[idx] = st
	b.pop.Move(old, st)
	b.pop.check(b.grid.Len())
	return nil
}

// SetGrid switches the topology while keeping every cell's state. It fails
// with ErrInvalidTopology, leaving the model unchanged, when the current
// neighbor pattern is undefined for the new topology.
func (b *Base) SetGrid(kind Topology) error {
	f := b.finder
	f.Topology = kind
	if err := b.rebuild(f); err != nil {
		return err
	}
	b.grid = b.grid.SwitchTopology(kind)
	return nil
}

// SetNeighborPattern changes the neighbor pattern.
func (b *Base) SetNeighborPattern(p Pattern) error {
	f := b.finder
	f.Pattern = p
	return b.rebuild(f)
}

// SetEdgePolicy changes how the grid boundary is treated.
func (b *Base) SetEdgePolicy(e EdgePolicy) error {
	f := b.finder
	f.Edges = e
	if err := b.rebuild(f); err != nil {
		return err
	}
	b.grid = b.grid.WithEdgePolicy(e)
	return nil
}

func (b *Base) rebuild(f NeighborFinder) error {
	rows, cols := b.grid.Dimensions()
	hood, err := BuildNeighborhood(rows, cols, f)
	if err != nil {
		return err
	}
	b.finder = f
	b.hood = hood
	return nil
}

// Len is the number of cells.
func (b *Base) Len() int { return b.grid.Len() }

// Position converts a linear index to coordinates.
func (b *Base) Position(idx int) Position { return b.grid.Position(idx) }

// Index converts coordinates to a linear index.
func (b *Base) Index(row, col int) int { return b.grid.Index(row, col) }

// Neighbors returns the linear indices of the neighbors of cell idx. The
// slice is shared and must not be modified.
func (b *Base) Neighbors(idx int) []int { return b.hood[idx] }

// Current exposes the committed buffer. Update implementations read it and
// must not write to it.
func (b *Base) Current() []State { return b.grid.data }

// Next exposes the buffer being built for the following generation. Its
// contents are stale on entry; Update must write every cell before Commit.
func (b *Base) Next() []State { return b.next }

// CountNeighbors returns how many neighbors of idx currently hold st.
func (b *Base) CountNeighbors(idx int, st State) int {
	n := 0
	for _, j := range b.hood[idx] {
		if b.grid.data[j] == st {
			n++
		}
	}
	return n
}

// Commit publishes the next buffer as the current generation, applying
// population deltas for every changed cell.
func (b *Base) Commit() {
	cur := b.grid.data
	for i, st := range b.next {
		if !b.desc.States.Valid(st) {
			panic(fmt.Sprintf("core: %s wrote invalid state %d at %v", b.desc.Name, st, b.grid.Position(i)))
		}
		if cur[i] != st {
			b.pop.Move(cur[i], st)
		}
	}
	b.grid.data, b.next = b.next, cur
	b.gen++
	b.pop.check(b.grid.Len())
}

// Parameters describes the grid and the model's resolved parameters.
func (b *Base) Parameters() ParameterSnapshot {
	rows, cols := b.grid.Dimensions()
	world := ParameterGroup{
		Name: "Grid",
		Params: []Parameter{
			{Key: "rows", Label: "Rows", Type: ParamTypeInt, Value: fmt.Sprint(rows)},
			{Key: "cols", Label: "Columns", Type: ParamTypeInt, Value: fmt.Sprint(cols)},
			{Key: "topology", Label: "Topology", Value: b.finder.Topology.String()},
			{Key: "pattern", Label: "Neighbors", Value: b.finder.Pattern.String()},
			{Key: "edges", Label: "Edges", Value: b.finder.Edges.String()},
		},
	}
	groups := []ParameterGroup{world}
	if len(b.desc.Params) > 0 {
		rules := ParameterGroup{Name: b.desc.Title}
		for _, s := range b.desc.Params {
			rules.Params = append(rules.Params, formatParam(s, b.params[s.Key]))
		}
		groups = append(groups, rules)
	}
	return ParameterSnapshot{Groups: groups}
}
