package segregation

import (
	"slices"
	"testing"

	"cellsociety/internal/core"
)

func newModel(t *testing.T, cfg core.Config) *Model {
	t.Helper()
	cfg.Model = "segregation"
	m, err := core.New(cfg)
	if err != nil {
		t.Fatalf("core.New: %v", err)
	}
	return m.(*Model)
}

func town(rows ...string) []string {
	var cells []string
	for _, row := range rows {
		for _, ch := range row {
			switch ch {
			case 'R':
				cells = append(cells, "Red")
			case 'B':
				cells = append(cells, "Blue")
			default:
				cells = append(cells, "Empty")
			}
		}
	}
	return cells
}

func TestVacatedCellsWaitForNextStep(t *testing.T) {
	m := newModel(t, core.Config{Rows: 1, Cols: 3, Pattern: core.Cardinal, Cells: town("RB."),
		Params: map[string]float64{"threshold": 1}})
	m.Update()

	want := []core.State{Empty, Blue, Red}
	for col, w := range want {
		if got, _ := m.State(0, col); got != w {
			t.Fatalf("(0,%d) = %s, want %s", col, States.Name(got), States.Name(w))
		}
	}
	if m.Relocations() != 1 {
		t.Fatalf("relocations %d, want 1", m.Relocations())
	}
}

func TestSatisfiedAgentsStay(t *testing.T) {
	m := newModel(t, core.Config{Rows: 2, Cols: 3, Pattern: core.Cardinal, Cells: town("RR.", "BB."),
		Params: map[string]float64{"threshold": 0.5}})
	m.Update()
	if m.Relocations() != 0 {
		t.Fatalf("relocations %d, every agent has half like neighbors", m.Relocations())
	}
	if !slices.Equal(m.Snapshot().States(), []core.State{Red, Red, Empty, Blue, Blue, Empty}) {
		t.Fatalf("grid changed: %v", m.Snapshot().States())
	}
}

func TestLoneAgentIsSatisfied(t *testing.T) {
	m := newModel(t, core.Config{Rows: 3, Cols: 3, Cells: town("...", ".R.", "..."),
		Params: map[string]float64{"threshold": 1}})
	m.Update()
	if m.Relocations() != 0 {
		t.Fatal("an agent without occupied neighbors should not move")
	}
}

func TestNoRelocationWithoutEmptyCells(t *testing.T) {
	m := newModel(t, core.Config{Rows: 2, Cols: 2, Cells: town("RB", "BR"),
		Params: map[string]float64{"threshold": 1}})
	m.Update()
	if m.Relocations() != 0 {
		t.Fatalf("relocations %d on a full grid", m.Relocations())
	}
}

func TestLowThresholdReachesEquilibrium(t *testing.T) {
	m := newModel(t, core.Config{Rows: 10, Cols: 10, Edges: core.Toroidal,
		Distribution: map[string]float64{"Empty": 0.2, "Red": 0.4, "Blue": 0.4},
		Params:       map[string]float64{"threshold": 0.3}, Seed: 1})

	settled := -1
	for step := 1; step <= 300; step++ {
		m.Update()
		pop := m.Population()
		if pop["Empty"]+pop["Red"]+pop["Blue"] != 100 {
			t.Fatalf("step %d: population %v", step, pop)
		}
		if m.Relocations() == 0 {
			settled = step
			break
		}
	}
	if settled < 0 {
		t.Fatal("no equilibrium within 300 steps")
	}

	frozen := m.Snapshot().States()
	for i := 0; i < 5; i++ {
		m.Update()
		if m.Relocations() != 0 || !slices.Equal(frozen, m.Snapshot().States()) {
			t.Fatalf("equilibrium reached at step %d did not hold", settled)
		}
	}
}

func TestRelocationConservesAgents(t *testing.T) {
	m := newModel(t, core.Config{Rows: 8, Cols: 8,
		Distribution: map[string]float64{"Empty": 0.3, "Red": 0.35, "Blue": 0.35},
		Params:       map[string]float64{"threshold": 0.7}, Seed: 9})
	start := m.Population()
	for step := 0; step < 20; step++ {
		m.Update()
		pop := m.Population()
		if pop["Red"] != start["Red"] || pop["Blue"] != start["Blue"] {
			t.Fatalf("step %d: agents appeared or vanished: %v -> %v", step, start, pop)
		}
	}
}
