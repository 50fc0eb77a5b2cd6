package core

import (
	"errors"
	"image/color"
	"testing"
)

var spreadStates = NewStateSet("spread",
	StateDef{Name: "Off", Tag: color.RGBA{A: 255}},
	StateDef{Name: "On", Tag: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	StateDef{Name: "Marked", Tag: color.RGBA{R: 255, A: 255}},
)

// spread turns a cell On exactly when some neighbor is On. Applied in place
// the rule would flood a whole row in one pass; double buffered it moves one
// cell per step.
type spread struct{ *Base }

func (s *spread) Update() {
	cur, next := s.Current(), s.Next()
	for i := range cur {
		next[i] = 0
		if s.CountNeighbors(i, 1) > 0 {
			next[i] = 1
		}
	}
	s.Commit()
}

func init() {
	Register(Descriptor{
		Name:   "spread",
		Title:  "Spread",
		States: spreadStates,
		Params: []ParamSpec{{Key: "unused", Type: ParamTypeInt, Default: 1}},
		Build:  func(b *Base) (Model, error) { return &spread{Base: b}, nil },
	})
}

func rowOf(n int, on ...int) []string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "Off"
	}
	for _, i := range on {
		cells[i] = "On"
	}
	return cells
}

func assertConserved(t *testing.T, m Model) {
	t.Helper()
	rows, cols := m.Dimensions()
	total := 0
	for _, n := range m.Population() {
		if n < 0 {
			t.Fatalf("negative population in %v", m.Population())
		}
		total += n
	}
	if total != rows*cols {
		t.Fatalf("population %v sums to %d, want %d", m.Population(), total, rows*cols)
	}
}

func TestStepReadsOnlyPreviousGeneration(t *testing.T) {
	m, err := New(Config{Model: "spread", Rows: 1, Cols: 6, Pattern: Cardinal, Cells: rowOf(6, 0)})
	if err != nil {
		t.Fatal(err)
	}
	m.Update()
	for col := 0; col < 6; col++ {
		st, _ := m.State(0, col)
		want := State(0)
		if col == 1 {
			want = 1
		}
		if st != want {
			t.Fatalf("after one step (0,%d) = %s, want %s", col, spreadStates.Name(st), spreadStates.Name(want))
		}
	}
	if m.Generation() != 1 {
		t.Fatalf("generation %d, want 1", m.Generation())
	}
	if got := m.Population(); got["On"] != 1 || got["Off"] != 5 || got["Marked"] != 0 {
		t.Fatalf("population %v", got)
	}
}

func TestClickRotatesAndCounts(t *testing.T) {
	m, err := New(Config{Model: "spread", Rows: 2, Cols: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Population(); got["Off"] != 4 || len(got) != 3 {
		t.Fatalf("initial population %v", got)
	}
	for i := 0; i < m.States().Len(); i++ {
		if err := m.Click(1, 1); err != nil {
			t.Fatal(err)
		}
		assertConserved(t, m)
		if i == 0 && m.Population()["On"] != 1 {
			t.Fatalf("after first click population %v", m.Population())
		}
	}
	if st, _ := m.State(1, 1); st != 0 {
		t.Fatalf("%d clicks did not return to the start state, got %s", m.States().Len(), spreadStates.Name(st))
	}
	if err := m.Click(2, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Click(2,0): got %v, want ErrOutOfBounds", err)
	}
	if _, err := m.State(0, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("State(0,5): got %v, want ErrOutOfBounds", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"unknown model", Config{Model: "nope", Rows: 2, Cols: 2}, ErrConfiguration},
		{"zero rows", Config{Model: "spread", Rows: 0, Cols: 2}, ErrConfiguration},
		{"short cell list", Config{Model: "spread", Rows: 2, Cols: 2, Cells: rowOf(3)}, ErrConfiguration},
		{"unknown state", Config{Model: "spread", Rows: 1, Cols: 2, Cells: []string{"Off", "Lit"}}, ErrConfiguration},
		{"two sources", Config{Model: "spread", Rows: 1, Cols: 2, Cells: rowOf(2), Distribution: map[string]float64{"On": 1}}, ErrConfiguration},
		{"empty distribution", Config{Model: "spread", Rows: 1, Cols: 2, Distribution: map[string]float64{"On": 0}}, ErrConfiguration},
		{"bad generator", Config{Model: "spread", Rows: 1, Cols: 2, Generator: func(int, int, *RNG) State { return 7 }}, ErrConfiguration},
		{"unknown param", Config{Model: "spread", Rows: 1, Cols: 2, Params: map[string]float64{"speed": 1}}, ErrConfiguration},
		{"hex ring on square", Config{Model: "spread", Rows: 2, Cols: 2, Pattern: HexRing}, ErrInvalidTopology},
	}
	for _, tc := range cases {
		if _, err := New(tc.cfg); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestDistributionIsSeeded(t *testing.T) {
	cfg := Config{Model: "spread", Rows: 8, Cols: 8, Distribution: map[string]float64{"Off": 1, "On": 1}, Seed: 5}
	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := New(cfg)
	sa, sb := a.Snapshot().States(), b.Snapshot().States()
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("same seed produced different grids at %d", i)
		}
	}
	if a.Population()["Marked"] != 0 {
		t.Fatal("zero-weight state was seeded")
	}
	assertConserved(t, a)
}

func TestSetGridAndPatternMidSimulation(t *testing.T) {
	m, err := New(Config{Model: "spread", Rows: 4, Cols: 4, Topology: Hexagonal, Pattern: HexRing, Edges: Toroidal,
		Generator: func(r, c int, _ *RNG) State { return State((r + c) % 3) }})
	if err != nil {
		t.Fatal(err)
	}
	before := m.Snapshot()
	popBefore := m.Population()

	if err := m.SetGrid(Square); !errors.Is(err, ErrInvalidTopology) {
		t.Fatalf("hex ring on square: got %v, want ErrInvalidTopology", err)
	}
	if got := m.Snapshot().Topology(); got != Hexagonal {
		t.Fatalf("failed SetGrid changed topology to %s", got)
	}
	if err := m.SetNeighborPattern(Moore); err != nil {
		t.Fatal(err)
	}
	if err := m.SetGrid(Triangular); err != nil {
		t.Fatal(err)
	}
	after := m.Snapshot()
	if after.Topology() != Triangular {
		t.Fatalf("topology %s, want triangular", after.Topology())
	}
	for c := range before.Cells() {
		got, _ := after.Get(c.Row, c.Col)
		if got.State != c.State {
			t.Fatalf("%v changed from %d to %d across SetGrid", c.Position, c.State, got.State)
		}
	}
	for k, v := range popBefore {
		if m.Population()[k] != v {
			t.Fatalf("population %v changed to %v across SetGrid", popBefore, m.Population())
		}
	}
	if err := m.SetEdgePolicy(Bounded); err != nil {
		t.Fatal(err)
	}
	m.Update()
	assertConserved(t, m)
}

func TestSnapshotIsACopy(t *testing.T) {
	m, _ := New(Config{Model: "spread", Rows: 2, Cols: 2})
	snap := m.Snapshot()
	_ = snap.Set(0, 0, 1)
	if st, _ := m.State(0, 0); st != 0 {
		t.Fatal("writing to a snapshot changed the model")
	}
}

func TestCommitRejectsInvalidState(t *testing.T) {
	m, _ := New(Config{Model: "spread", Rows: 1, Cols: 2})
	s := m.(*spread)
	next := s.Next()
	next[0], next[1] = 9, 0
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a state outside the set")
		}
	}()
	s.Commit()
}

func TestParametersSnapshot(t *testing.T) {
	m, _ := New(Config{Model: "spread", Rows: 3, Cols: 5, Pattern: Cardinal})
	snap := m.Parameters()
	if len(snap.Groups) != 2 {
		t.Fatalf("groups = %d, want grid and rules", len(snap.Groups))
	}
	found := map[string]string{}
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			found[p.Key] = p.Value
		}
	}
	if found["rows"] != "3" || found["cols"] != "5" || found["pattern"] != "cardinal" || found["unused"] != "1" {
		t.Fatalf("parameters = %v", found)
	}
}
