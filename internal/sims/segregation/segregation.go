package segregation

import (
	"image/color"

	"cellsociety/internal/core"
)

const (
	Empty core.State = iota
	Red
	Blue
)

// States is the segregation state set in rotation order.
var States = core.NewStateSet("segregation",
	core.StateDef{Name: "Empty", Tag: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	core.StateDef{Name: "Red", Tag: color.RGBA{R: 220, G: 40, B: 40, A: 255}},
	core.StateDef{Name: "Blue", Tag: color.RGBA{R: 40, G: 80, B: 220, A: 255}},
)

// Model is Schelling's segregation model. An agent is satisfied when it has
// no occupied neighbors or when the share of like neighbors among occupied
// ones reaches the threshold. Unsatisfied agents move, in row-major order,
// to a cell drawn uniformly from those that were empty when the step began;
// each drawn cell leaves the pool, and cells vacated during the step only
// become available on the next one.
type Model struct {
	*core.Base
	threshold float64
	pool      []int
	moves     int
}

// Satisfied reports whether an agent of kind st at idx is content with the
// committed grid.
func (m *Model) Satisfied(idx int, st core.State) bool {
	cur := m.Current()
	like, occupied := 0, 0
	for _, j := range m.Neighbors(idx) {
		switch cur[j] {
		case Empty:
		case st:
			like++
			occupied++
		default:
			occupied++
		}
	}
	if occupied == 0 {
		return true
	}
	return float64(like)/float64(occupied) >= m.threshold
}

// Relocations reports how many agents moved during the last step.
func (m *Model) Relocations() int { return m.moves }

// Update relocates every unsatisfied agent once.
func (m *Model) Update() {
	cur, next := m.Current(), m.Next()
	copy(next, cur)

	m.pool = m.pool[:0]
	for i, st := range cur {
		if st == Empty {
			m.pool = append(m.pool, i)
		}
	}

	rng := m.RNG()
	m.moves = 0
	for i, st := range cur {
		if st == Empty || len(m.pool) == 0 || m.Satisfied(i, st) {
			continue
		}
		k := rng.IntN(len(m.pool))
		target := m.pool[k]
		last := len(m.pool) - 1
		m.pool[k] = m.pool[last]
		m.pool = m.pool[:last]

		next[target] = st
		next[i] = Empty
		m.moves++
	}
	m.Commit()
}

func init() {
	core.Register(core.Descriptor{
		Name:   "segregation",
		Title:  "Segregation",
		States: States,
		Params: []core.ParamSpec{
			{Key: "threshold", Label: "Satisfaction", Type: core.ParamTypeFloat, Default: 0.3, Min: 0, Max: 1, HasMin: true, HasMax: true,
				Description: "minimum share of like neighbors an agent accepts"},
		},
		Build: func(b *core.Base) (core.Model, error) {
			return &Model{Base: b, threshold: b.Params().Float("threshold")}, nil
		},
	})
}
