package core

import "fmt"

type offset struct{ dr, dc int }

// Offset tables are indexed by parity class. Square grids have a single
// class. Triangular cells point up when row+col is even (class 0) and down
// otherwise (class 1). Hexagonal grids use odd-r offset rows: odd rows are
// shifted half a cell to the right, so the class is row parity.
var (
	squareCardinal = [][]offset{{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}}
	squareMoore    = [][]offset{{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}}
	squareDiagonal = [][]offset{{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}}

	triCardinal = [][]offset{
		{{0, -1}, {0, 1}, {1, 0}},
		{{-1, 0}, {0, -1}, {0, 1}},
	}
	triMoore = [][]offset{
		{
			{-1, -1}, {-1, 0}, {-1, 1},
			{0, -2}, {0, -1}, {0, 1}, {0, 2},
			{1, -2}, {1, -1}, {1, 0}, {1, 1}, {1, 2},
		},
		{
			{-1, -2}, {-1, -1}, {-1, 0}, {-1, 1}, {-1, 2},
			{0, -2}, {0, -1}, {0, 1}, {0, 2},
			{1, -1}, {1, 0}, {1, 1},
		},
	}
	triDiagonal = [][]offset{
		{
			{-1, -1}, {-1, 0}, {-1, 1},
			{0, -2}, {0, 2},
			{1, -2}, {1, -1}, {1, 1}, {1, 2},
		},
		{
			{-1, -2}, {-1, -1}, {-1, 1}, {-1, 2},
			{0, -2}, {0, 2},
			{1, -1}, {1, 0}, {1, 1},
		},
	}

	hexRing = [][]offset{
		{{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 0}},
		{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}, {1, 1}},
	}
)

// offsetTable returns the parity-indexed offsets for a topology/pattern pair,
// or nil when the pair is undefined.
func offsetTable(t Topology, p Pattern) [][]offset {
	switch t {
	case Square:
		switch p {
		case Cardinal:
			return squareCardinal
		case Moore:
			return squareMoore
		case Diagonal:
			return squareDiagonal
		}
	case Triangular:
		switch p {
		case Cardinal:
			return triCardinal
		case Moore:
			return triMoore
		case Diagonal:
			return triDiagonal
		}
	case Hexagonal:
		switch p {
		case Cardinal, Moore, HexRing:
			return hexRing
		}
	}
	return nil
}

func parityClass(t Topology, row, col int) int {
	switch t {
	case Triangular:
		return (row + col) & 1
	case Hexagonal:
		return row & 1
	}
	return 0
}

// Supports reports whether the topology defines the pattern.
func Supports(t Topology, p Pattern) bool { return offsetTable(t, p) != nil }

// NeighborFinder resolves neighbor positions. It holds no mutable state.
type NeighborFinder struct {
	Topology Topology
	Pattern  Pattern
	Edges    EdgePolicy
}

// Validate checks that the pattern is defined for the topology.
func (f NeighborFinder) Validate() error {
	if !Supports(f.Topology, f.Pattern) {
		return fmt.Errorf("core: pattern %s on %s grid: %w", f.Pattern, f.Topology, ErrInvalidTopology)
	}
	return nil
}

// Of returns the neighbors of pos on a rows x cols grid.
func (f NeighborFinder) Of(pos Position, rows, cols int) ([]Position, error) {
	return NeighborsOf(pos, rows, cols, f.Topology, f.Pattern, f.Edges)
}

// NeighborsOf returns the ordered neighbors of pos. Output order follows the
// offset table. Positions outside the grid are dropped under Bounded and
// wrapped under Toroidal; on grids too small for the pattern, wrapped
// duplicates and wraps back onto pos are dropped, keeping first occurrences.
func NeighborsOf(pos Position, rows, cols int, t Topology, p Pattern, edges EdgePolicy) ([]Position, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("core: neighbors on %dx%d grid: %w", rows, cols, ErrInvalidGrid)
	}
	if pos.Row < 0 || pos.Row >= rows || pos.Col < 0 || pos.Col >= cols {
		return nil, fmt.Errorf("core: neighbors of %v on %dx%d grid: %w", pos, rows, cols, ErrOutOfBounds)
	}
	table := offsetTable(t, p)
	if table == nil {
		return nil, fmt.Errorf("core: pattern %s on %s grid: %w", p, t, ErrInvalidTopology)
	}
	offsets := table[parityClass(t, pos.Row, pos.Col)]
	out := make([]Position, 0, len(offsets))
	for _, o := range offsets {
		r, c := pos.Row+o.dr, pos.Col+o.dc
		if edges == Toroidal {
			r = (r%rows + rows) % rows
			c = (c%cols + cols) % cols
		} else if r < 0 || r >= rows || c < 0 || c >= cols {
			continue
		}
		n := Position{Row: r, Col: c}
		if n == pos || containsPosition(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func containsPosition(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

// Neighborhood is a precomputed neighbor index table for one grid shape:
// entry i lists the linear indices of cell i's neighbors.
type Neighborhood [][]int

// BuildNeighborhood resolves every cell's neighbors once so stepping loops
// can read them by linear index.
func BuildNeighborhood(rows, cols int, f NeighborFinder) (Neighborhood, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("core: neighborhood on %dx%d grid: %w", rows, cols, ErrInvalidGrid)
	}
	table := make(Neighborhood, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			ns, err := f.Of(Position{Row: r, Col: c}, rows, cols)
			if err != nil {
				return nil, err
			}
			idx := make([]int, len(ns))
			for i, n := range ns {
				idx[i] = n.Row*cols + n.Col
			}
			table[r*cols+c] = idx
		}
	}
	return table, nil
}
