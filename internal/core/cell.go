package core

import "fmt"

// Position addresses a cell by zero-based row and column.
type Position struct {
	Row, Col int
}

// P is shorthand for Position{Row: row, Col: col}.
func P(row, col int) Position { return Position{Row: row, Col: col} }

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Cell is a position together with the state it currently holds.
type Cell struct {
	Position
	State State
}
