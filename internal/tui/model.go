package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"cellsociety/internal/core"
	"cellsociety/internal/render"
	"cellsociety/internal/scenario"
	"cellsociety/internal/ui"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const maxTPS = 240

// Builder constructs a fresh model; reset calls it again.
type Builder func() (core.Model, error)

// Options configures the terminal viewer.
type Options struct {
	// Name prefixes saved scenario files.
	Name string
	TPS  int
	// Legend maps glyphs to state names. Missing states use the default legend.
	Legend  map[string]string
	SaveDir string
	Paused  bool
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// Model is the Bubble Tea model for a running simulation.
type Model struct {
	build   Builder
	opts    Options
	sim     core.Model
	styler  *render.Styler
	keys    KeyMap
	help    help.Model
	tps     int
	seq     int
	paused  bool
	cursor  core.Position
	message string
	logger  *log.Logger
}

// New builds the first model and prepares the viewer.
func New(build Builder, opts Options, logger *log.Logger) (Model, error) {
	if opts.Name == "" {
		opts.Name = "snapshot"
	}
	if opts.TPS <= 0 {
		opts.TPS = 10
	}
	if logger == nil {
		logger = log.Default()
	}
	sim, err := build()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		build:  build,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		tps:    min(opts.TPS, maxTPS),
		paused: opts.Paused,
		logger: logger,
	}
	m.attach(sim)
	return m, nil
}

func (m *Model) attach(sim core.Model) {
	m.sim = sim
	legend := scenario.DefaultLegend(sim.States())
	for ch, name := range m.opts.Legend {
		for old, n := range legend {
			if n == name {
				delete(legend, old)
			}
		}
		legend[ch] = name
	}
	m.styler = render.NewStyler(sim.States(), render.GlyphsFromLegend(sim.States(), legend))
	m.clampCursor()
}

func (m *Model) clampCursor() {
	rows, cols := m.sim.Dimensions()
	m.cursor.Row = max(0, min(m.cursor.Row, rows-1))
	m.cursor.Col = max(0, min(m.cursor.Col, cols-1))
}

// Sim returns the running simulation.
func (m Model) Sim() core.Model { return m.sim }

// Paused reports whether automatic stepping is suspended.
func (m Model) Paused() bool { return m.paused }

// Cursor returns the selected cell.
func (m Model) Cursor() core.Position { return m.cursor }

// TPS returns the current step rate.
func (m Model) TPS() int { return m.tps }

// Init starts the tick loop unless the viewer begins paused.
func (m Model) Init() tea.Cmd {
	if m.paused {
		return nil
	}
	return tickCmd(m.tps, m.seq)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		if msg.Seq != m.seq || m.paused {
			return m, nil
		}
		m.sim.Update()
		return m, tickCmd(m.tps, m.seq)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	rows, cols := m.sim.Dimensions()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if !m.paused {
			return m, m.restartTicks()
		}
	case key.Matches(msg, m.keys.Step):
		m.sim.Update()
	case key.Matches(msg, m.keys.Reset):
		sim, err := m.build()
		if err != nil {
			m.logger.Error("reset failed", "err", err)
			m.message = "reset failed: " + err.Error()
			break
		}
		m.attach(sim)
		m.message = "reset"
	case key.Matches(msg, m.keys.Topology):
		m.cycle(0)
	case key.Matches(msg, m.keys.Pattern):
		m.cycle(1)
	case key.Matches(msg, m.keys.Edges):
		m.cycle(2)
	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = (m.cursor.Row - 1 + rows) % rows
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = (m.cursor.Row + 1) % rows
	case key.Matches(msg, m.keys.Left):
		m.cursor.Col = (m.cursor.Col - 1 + cols) % cols
	case key.Matches(msg, m.keys.Right):
		m.cursor.Col = (m.cursor.Col + 1) % cols
	case key.Matches(msg, m.keys.Click):
		if err := m.sim.Click(m.cursor.Row, m.cursor.Col); err != nil {
			m.message = err.Error()
		}
	case key.Matches(msg, m.keys.Faster):
		m.tps = min(m.tps*2, maxTPS)
		return m, m.restartTicks()
	case key.Matches(msg, m.keys.Slower):
		m.tps = max(m.tps/2, 1)
		return m, m.restartTicks()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// restartTicks abandons the pending tick and schedules a new loop.
func (m *Model) restartTicks() tea.Cmd {
	m.seq++
	if m.paused {
		return nil
	}
	return tickCmd(m.tps, m.seq)
}

func (m *Model) cycle(i int) {
	ctrl := ui.NeighborControls[i]
	value, err := ctrl.Cycle(m.sim, 1)
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("%s: %s", strings.ToLower(ctrl.Label), value)
}

func (m *Model) save() {
	dir := m.opts.SaveDir
	if dir == "" {
		dir = scenario.UserDir()
	}
	name := fmt.Sprintf("%s-gen%d", m.opts.Name, m.sim.Generation())
	path := filepath.Join(dir, name+".yaml")
	if err := scenario.Write(path, scenario.FromModel(name, m.sim)); err != nil {
		m.logger.Error("save failed", "err", err)
		m.message = "save failed: " + err.Error()
		return
	}
	m.logger.Info("scenario saved", "path", path)
	m.message = "saved " + path
}

// View renders the grid, a status block and the key help.
func (m Model) View() string {
	var b strings.Builder
	state := "running"
	if m.paused {
		state = "paused"
	}
	fmt.Fprintf(&b, "%s  %s  %d tps\n\n",
		titleStyle.Render(m.sim.Name()), state, m.tps)
	b.WriteString(m.styler.RenderCursor(m.sim.Snapshot(), m.cursor))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(m.message)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) status() string {
	pop := m.sim.Population()
	names := make([]string, 0, len(pop))
	for name := range pop {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names)+4)
	parts = append(parts, fmt.Sprintf("gen %d", m.sim.Generation()))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d", name, pop[name]))
	}
	f := m.sim.Finder()
	st, _ := m.sim.State(m.cursor.Row, m.cursor.Col)
	parts = append(parts,
		fmt.Sprintf("%s/%s/%s", f.Topology, f.Pattern, f.Edges),
		fmt.Sprintf("cursor %v %s", m.cursor, m.sim.States().Name(st)))
	return strings.Join(parts, " | ")
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(build Builder, opts Options, logger *log.Logger) error {
	m, err := New(build, opts, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
