package core

import (
	"fmt"
	"iter"
)

// Grid stores a rectangular 2D grid of cell states in row-major order.
// Topology only changes how neighbors are resolved, never the storage, so
// triangular and hexagonal grids use the same backing slice.
type Grid struct {
	rows, cols int
	topology   Topology
	edges      EdgePolicy
	data       []State
}

// NewGrid allocates a grid with every cell in the default (zero) state.
func NewGrid(rows, cols int, topology Topology, edges EdgePolicy) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("core: grid %dx%d: %w", rows, cols, ErrInvalidGrid)
	}
	return &Grid{
		rows:     rows,
		cols:     cols,
		topology: topology,
		edges:    edges,
		data:     make([]State, rows*cols),
	}, nil
}

// Dimensions returns the number of rows and columns.
func (g *Grid) Dimensions() (rows, cols int) { return g.rows, g.cols }

// Len is the number of cells, rows*cols.
func (g *Grid) Len() int { return len(g.data) }

// Topology reports the grid's adjacency shape.
func (g *Grid) Topology() Topology { return g.topology }

// EdgePolicy reports how the boundary is treated.
func (g *Grid) EdgePolicy() EdgePolicy { return g.edges }

// Contains reports whether (row, col) lies inside the grid.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Index returns the linear slice index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// Position converts a linear index back to coordinates.
func (g *Grid) Position(idx int) Position { return Position{Row: idx / g.cols, Col: idx % g.cols} }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(row, col int) (int, int) {
	row = (row%g.rows + g.rows) % g.rows
	col = (col%g.cols + g.cols) % g.cols
	return row, col
}

func (g *Grid) outOfBounds(row, col int) error {
	return fmt.Errorf("core: (%d,%d) outside %dx%d grid: %w", row, col, g.rows, g.cols, ErrOutOfBounds)
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.Contains(row, col) {
		return Cell{}, g.outOfBounds(row, col)
	}
	return Cell{Position: Position{Row: row, Col: col}, State: g.data[g.Index(row, col)]}, nil
}

// Set replaces the state at (row, col). Callers that track populations must
// account for the change themselves.
func (g *Grid) Set(row, col int, st State) error {
	if !g.Contains(row, col) {
		return g.outOfBounds(row, col)
	}
	g.data[g.Index(row, col)] = st
	return nil
}

// At returns the state at a linear index without bounds translation.
func (g *Grid) At(idx int) State { return g.data[idx] }

// Cells yields every cell in row-major order. The sequence is lazy and can be
// ranged over any number of times.
func (g *Grid) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for idx, st := range g.data {
			if !yield(Cell{Position: g.Position(idx), State: st}) {
				return
			}
		}
	}
}

// States returns a copy of the backing states in row-major order.
func (g *Grid) States() []State {
	return append([]State(nil), g.data...)
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	c.data = g.States()
	return &c
}

// SwitchTopology returns a new grid with the same dimensions and edge policy
// under another topology. Storage is rectangular for every topology, so each
// position carries its state over unchanged. The receiver is left untouched.
func (g *Grid) SwitchTopology(kind Topology) *Grid {
	c := g.Clone()
	c.topology = kind
	return c
}

// WithEdgePolicy returns a copy of the grid using the given edge policy.
func (g *Grid) WithEdgePolicy(edges EdgePolicy) *Grid {
	c := g.Clone()
	c.edges = edges
	return c
}

// Clear resets every cell to the default state.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
