package core

import (
	"errors"
	"slices"
	"testing"
)

func positions(pairs ...int) []Position {
	out := make([]Position, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, P(pairs[i], pairs[i+1]))
	}
	return out
}

func TestNeighborsOfTable(t *testing.T) {
	cases := []struct {
		name  string
		pos   Position
		rows  int
		cols  int
		topo  Topology
		pat   Pattern
		edges EdgePolicy
		want  []Position
	}{
		{"square cardinal center", P(2, 2), 5, 5, Square, Cardinal, Bounded,
			positions(1, 2, 2, 1, 2, 3, 3, 2)},
		{"square moore center", P(2, 2), 5, 5, Square, Moore, Bounded,
			positions(1, 1, 1, 2, 1, 3, 2, 1, 2, 3, 3, 1, 3, 2, 3, 3)},
		{"square diagonal center", P(2, 2), 5, 5, Square, Diagonal, Bounded,
			positions(1, 1, 1, 3, 3, 1, 3, 3)},
		{"square cardinal corner", P(0, 0), 5, 5, Square, Cardinal, Bounded,
			positions(0, 1, 1, 0)},
		{"square moore corner", P(4, 4), 5, 5, Square, Moore, Bounded,
			positions(3, 3, 3, 4, 4, 3)},
		{"square diagonal edge", P(0, 2), 5, 5, Square, Diagonal, Bounded,
			positions(1, 1, 1, 3)},
		{"square cardinal toroidal corner", P(0, 0), 3, 3, Square, Cardinal, Toroidal,
			positions(2, 0, 0, 2, 0, 1, 1, 0)},
		{"square moore toroidal corner", P(0, 0), 4, 4, Square, Moore, Toroidal,
			positions(3, 3, 3, 0, 3, 1, 0, 3, 0, 1, 1, 3, 1, 0, 1, 1)},

		{"triangle up cardinal", P(2, 2), 6, 6, Triangular, Cardinal, Bounded,
			positions(2, 1, 2, 3, 3, 2)},
		{"triangle down cardinal", P(2, 3), 6, 6, Triangular, Cardinal, Bounded,
			positions(1, 3, 2, 2, 2, 4)},
		{"triangle up moore", P(2, 2), 6, 6, Triangular, Moore, Bounded,
			positions(1, 1, 1, 2, 1, 3, 2, 0, 2, 1, 2, 3, 2, 4, 3, 0, 3, 1, 3, 2, 3, 3, 3, 4)},
		{"triangle down moore", P(3, 2), 6, 6, Triangular, Moore, Bounded,
			positions(2, 0, 2, 1, 2, 2, 2, 3, 2, 4, 3, 0, 3, 1, 3, 3, 3, 4, 4, 1, 4, 2, 4, 3)},
		{"triangle up diagonal", P(2, 2), 6, 6, Triangular, Diagonal, Bounded,
			positions(1, 1, 1, 2, 1, 3, 2, 0, 2, 4, 3, 0, 3, 1, 3, 3, 3, 4)},
		{"triangle down diagonal", P(3, 2), 6, 6, Triangular, Diagonal, Bounded,
			positions(2, 0, 2, 1, 2, 3, 2, 4, 3, 0, 3, 4, 4, 1, 4, 2, 4, 3)},
		{"triangle up cardinal corner", P(0, 0), 6, 6, Triangular, Cardinal, Bounded,
			positions(0, 1, 1, 0)},
		{"triangle down cardinal top row", P(0, 1), 6, 6, Triangular, Cardinal, Bounded,
			positions(0, 0, 0, 2)},

		{"hex even row", P(2, 2), 6, 6, Hexagonal, HexRing, Bounded,
			positions(1, 1, 1, 2, 2, 1, 2, 3, 3, 1, 3, 2)},
		{"hex odd row", P(3, 2), 6, 6, Hexagonal, HexRing, Bounded,
			positions(2, 2, 2, 3, 3, 1, 3, 3, 4, 2, 4, 3)},
		{"hex cardinal matches ring", P(3, 2), 6, 6, Hexagonal, Cardinal, Bounded,
			positions(2, 2, 2, 3, 3, 1, 3, 3, 4, 2, 4, 3)},
		{"hex even row left edge", P(0, 0), 6, 6, Hexagonal, HexRing, Bounded,
			positions(0, 1, 1, 0)},
		{"hex odd row right edge", P(1, 5), 6, 6, Hexagonal, HexRing, Bounded,
			positions(0, 5, 1, 4, 2, 5)},
		{"hex toroidal corner", P(0, 0), 6, 6, Hexagonal, HexRing, Toroidal,
			positions(5, 5, 5, 0, 0, 5, 0, 1, 1, 5, 1, 0)},
	}

	for _, tc := range cases {
		got, err := NeighborsOf(tc.pos, tc.rows, tc.cols, tc.topo, tc.pat, tc.edges)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !slices.Equal(got, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNeighborsToroidalWrapScenario(t *testing.T) {
	got, err := NeighborsOf(P(0, 0), 3, 3, Square, Cardinal, Toroidal)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []Position{P(2, 0), P(0, 2)} {
		if !slices.Contains(got, want) {
			t.Fatalf("neighbors of (0,0) = %v, missing %v", got, want)
		}
	}
}

func validPairs() []NeighborFinder {
	var out []NeighborFinder
	for _, topo := range Topologies() {
		for _, pat := range Patterns() {
			if !Supports(topo, pat) {
				continue
			}
			for _, edges := range []EdgePolicy{Bounded, Toroidal} {
				out = append(out, NeighborFinder{Topology: topo, Pattern: pat, Edges: edges})
			}
		}
	}
	return out
}

func TestNeighborsNeverLeaveGrid(t *testing.T) {
	dims := [][2]int{{1, 1}, {1, 3}, {2, 2}, {3, 3}, {3, 5}, {4, 7}, {6, 8}}
	for _, f := range validPairs() {
		for _, d := range dims {
			rows, cols := d[0], d[1]
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					pos := P(r, c)
					ns, err := f.Of(pos, rows, cols)
					if err != nil {
						t.Fatalf("%+v %dx%d %v: %v", f, rows, cols, pos, err)
					}
					seen := map[Position]bool{}
					for _, n := range ns {
						if n.Row < 0 || n.Row >= rows || n.Col < 0 || n.Col >= cols {
							t.Fatalf("%+v %dx%d: neighbor %v of %v out of range", f, rows, cols, n, pos)
						}
						if n == pos {
							t.Fatalf("%+v %dx%d: %v lists itself", f, rows, cols, pos)
						}
						if seen[n] {
							t.Fatalf("%+v %dx%d: %v lists %v twice", f, rows, cols, pos, n)
						}
						seen[n] = true
					}
				}
			}
		}
	}
}

func TestNeighborsDeterministic(t *testing.T) {
	for _, f := range validPairs() {
		first, err := f.Of(P(3, 4), 7, 9)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			again, _ := f.Of(P(3, 4), 7, 9)
			if !slices.Equal(first, again) {
				t.Fatalf("%+v: call %d returned %v, first call %v", f, i, again, first)
			}
		}
	}
}

func TestNeighborsFullCountOnTorus(t *testing.T) {
	want := map[Topology]map[Pattern]int{
		Square:     {Cardinal: 4, Moore: 8, Diagonal: 4},
		Triangular: {Cardinal: 3, Moore: 12, Diagonal: 9},
		Hexagonal:  {Cardinal: 6, Moore: 6, HexRing: 6},
	}
	rows, cols := 6, 8
	for topo, byPattern := range want {
		for pat, n := range byPattern {
			f := NeighborFinder{Topology: topo, Pattern: pat, Edges: Toroidal}
			for r := 0; r < rows; r++ {
				for c := 0; c < cols; c++ {
					ns, err := f.Of(P(r, c), rows, cols)
					if err != nil {
						t.Fatal(err)
					}
					if len(ns) != n {
						t.Fatalf("%s/%s at (%d,%d): %d neighbors, want %d", topo, pat, r, c, len(ns), n)
					}
				}
			}
		}
	}
}

// Adjacency must be mutual for every parity class; even dimensions keep the
// parity consistent across the wrap.
func TestNeighborsSymmetric(t *testing.T) {
	rows, cols := 6, 8
	for _, f := range validPairs() {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				p := P(r, c)
				ns, _ := f.Of(p, rows, cols)
				for _, q := range ns {
					back, _ := f.Of(q, rows, cols)
					if !slices.Contains(back, p) {
						t.Fatalf("%+v: %v lists %v but %v does not list %v", f, p, q, q, p)
					}
				}
			}
		}
	}
}

func TestTriangularMooreIsCardinalPlusDiagonal(t *testing.T) {
	for _, p := range []Position{P(2, 2), P(2, 3)} {
		moore, _ := NeighborsOf(p, 6, 6, Triangular, Moore, Bounded)
		card, _ := NeighborsOf(p, 6, 6, Triangular, Cardinal, Bounded)
		diag, _ := NeighborsOf(p, 6, 6, Triangular, Diagonal, Bounded)
		union := append(append([]Position(nil), card...), diag...)
		if len(union) != len(moore) {
			t.Fatalf("%v: cardinal+diagonal = %d cells, moore = %d", p, len(union), len(moore))
		}
		for _, q := range union {
			if !slices.Contains(moore, q) {
				t.Fatalf("%v: %v missing from moore neighbors", p, q)
			}
		}
	}
}

func TestNeighborsErrors(t *testing.T) {
	if _, err := NeighborsOf(P(0, 0), 0, 3, Square, Moore, Bounded); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("zero rows: got %v, want ErrInvalidGrid", err)
	}
	if _, err := NeighborsOf(P(0, 0), 3, -1, Square, Moore, Toroidal); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("negative cols: got %v, want ErrInvalidGrid", err)
	}
	if _, err := NeighborsOf(P(0, 0), 3, 3, Square, HexRing, Bounded); !errors.Is(err, ErrInvalidTopology) {
		t.Fatalf("hex ring on square: got %v, want ErrInvalidTopology", err)
	}
	if _, err := NeighborsOf(P(0, 0), 3, 3, Triangular, HexRing, Bounded); !errors.Is(err, ErrInvalidTopology) {
		t.Fatalf("hex ring on triangles: got %v, want ErrInvalidTopology", err)
	}
	if _, err := NeighborsOf(P(0, 0), 3, 3, Hexagonal, Diagonal, Bounded); !errors.Is(err, ErrInvalidTopology) {
		t.Fatalf("diagonal on hex: got %v, want ErrInvalidTopology", err)
	}
	if _, err := NeighborsOf(P(3, 0), 3, 3, Square, Moore, Bounded); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("row 3 on 3x3: got %v, want ErrOutOfBounds", err)
	}
}

func TestBuildNeighborhoodMatchesFinder(t *testing.T) {
	f := NeighborFinder{Topology: Hexagonal, Pattern: HexRing, Edges: Toroidal}
	hood, err := BuildNeighborhood(4, 5, f)
	if err != nil {
		t.Fatal(err)
	}
	if len(hood) != 20 {
		t.Fatalf("table has %d entries, want 20", len(hood))
	}
	for idx, list := range hood {
		ns, _ := f.Of(P(idx/5, idx%5), 4, 5)
		if len(ns) != len(list) {
			t.Fatalf("cell %d: table has %d neighbors, finder %d", idx, len(list), len(ns))
		}
		for i, n := range ns {
			if list[i] != n.Row*5+n.Col {
				t.Fatalf("cell %d: entry %d = %d, want %d", idx, i, list[i], n.Row*5+n.Col)
			}
		}
	}
}
