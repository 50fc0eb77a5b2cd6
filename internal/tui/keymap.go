package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the terminal viewer's bindings.
type KeyMap struct {
	Pause    key.Binding
	Step     key.Binding
	Reset    key.Binding
	Topology key.Binding
	Pattern  key.Binding
	Edges    key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Click    key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Click, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Reset, k.Faster, k.Slower},
		{k.Up, k.Down, k.Left, k.Right, k.Click},
		{k.Topology, k.Pattern, k.Edges},
		{k.Save, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Step: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "step"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Topology: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "topology"),
		),
		Pattern: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "neighbors"),
		),
		Edges: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edges"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "cursor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "cursor down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "cursor left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "cursor right"),
		),
		Click: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter", "cycle cell"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save scenario"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
