package ui

import "cellsociety/internal/core"

// Control is one neighbor setting: a label, the current value and a way to
// step through the alternatives.
type Control struct {
	Label string
	// Cycle switches the model to the option direction steps away from the
	// current one and returns its name.
	Cycle func(m core.Model, direction int) (string, error)
	Value func(m core.Model) string
}

// NeighborControls switch topology, neighbor pattern and edge policy. Shared by
// the desktop HUD and the terminal viewer.
var NeighborControls = []Control{
	{
		Label: "Topology",
		Value: func(m core.Model) string { return m.Finder().Topology.String() },
		Cycle: func(m core.Model, dir int) (string, error) {
			f := m.Finder()
			next := stepOption(core.Topologies(), f.Topology, dir, func(t core.Topology) bool {
				return core.Supports(t, f.Pattern)
			})
			return next.String(), m.SetGrid(next)
		},
	},
	{
		Label: "Neighbors",
		Value: func(m core.Model) string { return m.Finder().Pattern.String() },
		Cycle: func(m core.Model, dir int) (string, error) {
			f := m.Finder()
			next := stepOption(core.Patterns(), f.Pattern, dir, func(p core.Pattern) bool {
				return core.Supports(f.Topology, p)
			})
			return next.String(), m.SetNeighborPattern(next)
		},
	},
	{
		Label: "Edges",
		Value: func(m core.Model) string { return m.Finder().Edges.String() },
		Cycle: func(m core.Model, dir int) (string, error) {
			next := core.Bounded
			if m.Finder().Edges == core.Bounded {
				next = core.Toroidal
			}
			return next.String(), m.SetEdgePolicy(next)
		},
	},
}

// stepOption walks from cur in direction dir, wrapping around, to the next
// option accepted by ok. It returns cur when nothing else qualifies.
func stepOption[T comparable](opts []T, cur T, dir int, ok func(T) bool) T {
	at := 0
	for i, o := range opts {
		if o == cur {
			at = i
		}
	}
	n := len(opts)
	for k := 1; k < n; k++ {
		cand := opts[((at+dir*k)%n+n)%n]
		if ok(cand) {
			return cand
		}
	}
	return cur
}
