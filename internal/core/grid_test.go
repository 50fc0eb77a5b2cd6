package core

import (
	"errors"
	"testing"
)

func TestNewGridRejectsDegenerateDimensions(t *testing.T) {
	for _, d := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		if _, err := NewGrid(d[0], d[1], Square, Bounded); !errors.Is(err, ErrInvalidGrid) {
			t.Fatalf("NewGrid(%d,%d): got %v, want ErrInvalidGrid", d[0], d[1], err)
		}
	}
}

func TestGridGetSetBounds(t *testing.T) {
	g, err := NewGrid(3, 4, Square, Bounded)
	if err != nil {
		t.Fatal(err)
	}
	if rows, cols := g.Dimensions(); rows != 3 || cols != 4 {
		t.Fatalf("dimensions %dx%d, want 3x4", rows, cols)
	}
	if err := g.Set(2, 3, 1); err != nil {
		t.Fatal(err)
	}
	c, err := g.Get(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if c.State != 1 || c.Row != 2 || c.Col != 3 {
		t.Fatalf("Get(2,3) = %+v", c)
	}
	for _, p := range []Position{P(3, 0), P(0, 4), P(-1, 0), P(0, -1)} {
		if _, err := g.Get(p.Row, p.Col); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get%v: got %v, want ErrOutOfBounds", p, err)
		}
		if err := g.Set(p.Row, p.Col, 1); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set%v: got %v, want ErrOutOfBounds", p, err)
		}
	}
}

func TestGridCellsRowMajorAndRestartable(t *testing.T) {
	g, _ := NewGrid(2, 3, Square, Bounded)
	_ = g.Set(1, 0, 2)

	for pass := 0; pass < 2; pass++ {
		i := 0
		for c := range g.Cells() {
			want := P(i/3, i%3)
			if c.Position != want {
				t.Fatalf("pass %d: cell %d at %v, want %v", pass, i, c.Position, want)
			}
			if want == P(1, 0) && c.State != 2 {
				t.Fatalf("pass %d: (1,0) state %d, want 2", pass, c.State)
			}
			i++
		}
		if i != 6 {
			t.Fatalf("pass %d: visited %d cells, want 6", pass, i)
		}
	}

	n := 0
	for range g.Cells() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("early break visited %d cells", n)
	}
}

func TestSwitchTopologyPreservesStatesWithoutAliasing(t *testing.T) {
	g, _ := NewGrid(3, 3, Square, Toroidal)
	_ = g.Set(0, 1, 1)
	_ = g.Set(2, 2, 2)

	h := g.SwitchTopology(Hexagonal)
	if h.Topology() != Hexagonal || g.Topology() != Square {
		t.Fatalf("topologies: new %s, old %s", h.Topology(), g.Topology())
	}
	if h.EdgePolicy() != Toroidal {
		t.Fatalf("edge policy %s, want toroidal", h.EdgePolicy())
	}
	for c := range g.Cells() {
		got, _ := h.Get(c.Row, c.Col)
		if got.State != c.State {
			t.Fatalf("%v: state %d after switch, want %d", c.Position, got.State, c.State)
		}
	}

	_ = h.Set(0, 1, 0)
	if c, _ := g.Get(0, 1); c.State != 1 {
		t.Fatal("switched grid shares storage with the original")
	}
}

func TestGridWrap(t *testing.T) {
	g, _ := NewGrid(3, 5, Square, Toroidal)
	if r, c := g.Wrap(-1, 5); r != 2 || c != 0 {
		t.Fatalf("Wrap(-1,5) = (%d,%d), want (2,0)", r, c)
	}
	if r, c := g.Wrap(7, -6); r != 1 || c != 4 {
		t.Fatalf("Wrap(7,-6) = (%d,%d), want (1,4)", r, c)
	}
}
