package core

import "fmt"

// Topology is the logical adjacency shape of a grid.
type Topology uint8

const (
	Square Topology = iota
	Triangular
	Hexagonal
)

var topologyNames = [...]string{"square", "triangular", "hexagonal"}

func (t Topology) String() string {
	if int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return fmt.Sprintf("topology(%d)", uint8(t))
}

// ParseTopology resolves a topology identifier. The empty string means square.
func ParseTopology(s string) (Topology, error) {
	if s == "" {
		return Square, nil
	}
	for i, name := range topologyNames {
		if name == s {
			return Topology(i), nil
		}
	}
	return 0, fmt.Errorf("core: unknown topology %q: %w", s, ErrConfiguration)
}

// EdgePolicy decides what happens at the grid boundary.
type EdgePolicy uint8

const (
	// Bounded drops neighbors that fall outside the grid.
	Bounded EdgePolicy = iota
	// Toroidal wraps both axes so opposite edges touch.
	Toroidal
)

func (e EdgePolicy) String() string {
	switch e {
	case Bounded:
		return "bounded"
	case Toroidal:
		return "toroidal"
	}
	return fmt.Sprintf("edges(%d)", uint8(e))
}

// ParseEdgePolicy resolves an edge policy identifier. The empty string means
// bounded.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "", "bounded":
		return Bounded, nil
	case "toroidal", "torus", "wrap":
		return Toroidal, nil
	}
	return 0, fmt.Errorf("core: unknown edge policy %q: %w", s, ErrConfiguration)
}

// Pattern selects which cells count as adjacent. Its concrete offsets depend
// on the topology it is paired with.
type Pattern uint8

const (
	// Moore covers cells sharing an edge or a vertex.
	Moore Pattern = iota
	// Cardinal covers cells sharing an edge.
	Cardinal
	// Diagonal covers cells sharing only a vertex.
	Diagonal
	// HexRing is the six-cell ring of a hexagonal grid.
	HexRing
)

var patternNames = [...]string{"moore", "cardinal", "diagonal", "hex"}

func (p Pattern) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return fmt.Sprintf("pattern(%d)", uint8(p))
}

// ParsePattern resolves a neighbor pattern identifier. The empty string means
// moore. Numeric aliases follow the usual square-grid names.
func ParsePattern(s string) (Pattern, error) {
	switch s {
	case "", "moore", "8":
		return Moore, nil
	case "cardinal", "von-neumann", "4":
		return Cardinal, nil
	case "diagonal":
		return Diagonal, nil
	case "hex", "hex-ring", "6":
		return HexRing, nil
	}
	return 0, fmt.Errorf("core: unknown neighbor pattern %q: %w", s, ErrConfiguration)
}

// Patterns lists every pattern in declaration order.
func Patterns() []Pattern { return []Pattern{Moore, Cardinal, Diagonal, HexRing} }

// Topologies lists every topology in declaration order.
func Topologies() []Topology { return []Topology{Square, Triangular, Hexagonal} }
