package ui

import "cellsociety/internal/core"

// CellAt maps a screen point to the grid cell drawn there. Every topology is
// drawn on its rectangular storage layout, scale pixels per cell.
func CellAt(x, y, scale int, m core.Model) (core.Position, bool) {
	if scale <= 0 || x < 0 || y < 0 {
		return core.Position{}, false
	}
	rows, cols := m.Dimensions()
	row, col := y/scale, x/scale
	if row >= rows || col >= cols {
		return core.Position{}, false
	}
	return core.P(row, col), true
}
