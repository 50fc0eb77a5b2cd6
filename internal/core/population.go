package core

import "fmt"

// Population tracks how many cells hold each state of a set. Counts change
// through Move only, so the total stays fixed at the grid size.
type Population struct {
	set    *StateSet
	counts []int
}

// NewPopulation counts the states of g. This full scan is only done when a
// model is built; afterwards counts are kept current incrementally.
func NewPopulation(set *StateSet, g *Grid) *Population {
	p := &Population{set: set, counts: make([]int, set.Len())}
	for _, st := range g.data {
		p.counts[st]++
	}
	return p
}

// Move records one cell changing from one state to another.
func (p *Population) Move(from, to State) {
	if from == to {
		return
	}
	p.counts[from]--
	p.counts[to]++
	if p.counts[from] < 0 {
		panic(fmt.Sprintf("core: negative population for %q", p.set.Name(from)))
	}
}

// Count returns the number of cells in st.
func (p *Population) Count(st State) int {
	if !p.set.Valid(st) {
		return 0
	}
	return p.counts[st]
}

// Total sums every count.
func (p *Population) Total() int {
	n := 0
	for _, c := range p.counts {
		n += c
	}
	return n
}

// Map returns a copy of the counts keyed by state name. Every state of the
// set is present, including those with a zero count.
func (p *Population) Map() map[string]int {
	m := make(map[string]int, len(p.counts))
	for i, c := range p.counts {
		m[p.set.Name(State(i))] = c
	}
	return m
}

// Counts returns a copy of the counts indexed by state.
func (p *Population) Counts() []int { return append([]int(nil), p.counts...) }

// check panics unless counts are non-negative and sum to want.
func (p *Population) check(want int) {
	total := 0
	for i, c := range p.counts {
		if c < 0 {
			panic(fmt.Sprintf("core: negative population for %q", p.set.Name(State(i))))
		}
		total += c
	}
	if total != want {
		panic(fmt.Sprintf("core: population %d does not match grid size %d", total, want))
	}
}
