package render

import (
	"fmt"
	"strings"

	"cellsociety/internal/core"

	"github.com/charmbracelet/lipgloss"
)

// Glyphs holds the character drawn for each state, indexed by state.
type Glyphs []string

// GlyphsFromLegend inverts a character-to-state-name legend. States missing
// from the legend are drawn as '?'.
func GlyphsFromLegend(set *core.StateSet, legend map[string]string) Glyphs {
	g := make(Glyphs, set.Len())
	for i := range g {
		g[i] = "?"
	}
	for ch, name := range legend {
		if st, ok := set.Lookup(name); ok {
			g[st] = ch
		}
	}
	return g
}

func (g Glyphs) of(st core.State) string {
	if int(st) < len(g) {
		return g[st]
	}
	return "?"
}

// Text renders the grid as plain text, one line per row. Hexagonal grids
// separate cells with spaces and indent odd rows to show the offset layout.
func Text(g *core.Grid, glyphs Glyphs) string {
	return layout(g, func(_ core.State, _ bool, run string) string { return run }, glyphs, -1)
}

// Styler renders grids with each state coloured by its tag.
type Styler struct {
	glyphs Glyphs
	styles []lipgloss.Style
	cursor []lipgloss.Style
}

// NewStyler builds styles for every state in set.
func NewStyler(set *core.StateSet, glyphs Glyphs) *Styler {
	s := &Styler{
		glyphs: glyphs,
		styles: make([]lipgloss.Style, set.Len()),
		cursor: make([]lipgloss.Style, set.Len()),
	}
	for i, tag := range set.Palette() {
		hex := fmt.Sprintf("#%02x%02x%02x", tag.R, tag.G, tag.B)
		s.styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		s.cursor[i] = s.styles[i].Reverse(true)
	}
	return s
}

// Render draws the grid. Runs of equal states share one style span to keep
// escape sequences short.
func (s *Styler) Render(g *core.Grid) string {
	return layout(g, s.paint, s.glyphs, -1)
}

// RenderCursor draws the grid with the cell at pos in reverse video.
func (s *Styler) RenderCursor(g *core.Grid, pos core.Position) string {
	cursor := -1
	if g.Contains(pos.Row, pos.Col) {
		cursor = g.Index(pos.Row, pos.Col)
	}
	return layout(g, s.paint, s.glyphs, cursor)
}

func (s *Styler) paint(st core.State, marked bool, run string) string {
	if int(st) >= len(s.styles) {
		return run
	}
	if marked {
		return s.cursor[st].Render(run)
	}
	return s.styles[st].Render(run)
}

// layout groups each row into runs of equal state. The cell at index cursor,
// if any, always forms a run of its own.
func layout(g *core.Grid, paint func(st core.State, marked bool, run string) string, glyphs Glyphs, cursor int) string {
	rows, cols := g.Dimensions()
	hex := g.Topology() == core.Hexagonal
	var sb strings.Builder
	sb.Grow(rows * (cols*2 + 2))

	var run strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		if hex && r%2 == 1 {
			sb.WriteByte(' ')
		}
		c := 0
		for c < cols {
			first := g.Index(r, c)
			start := g.At(first)
			marked := first == cursor
			run.Reset()
			for c < cols {
				idx := g.Index(r, c)
				if g.At(idx) != start || (idx != first && (marked || idx == cursor)) {
					break
				}
				run.WriteString(glyphs.of(start))
				if hex && c < cols-1 && !marked {
					run.WriteByte(' ')
				}
				c++
			}
			if marked && hex && c < cols {
				sb.WriteString(paint(start, true, run.String()))
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(paint(start, marked, run.String()))
		}
	}
	return sb.String()
}
