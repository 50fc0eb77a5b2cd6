package core

import (
	"fmt"
	"image/color"
)

// State is the index of a cell state within its model's StateSet.
type State uint8

// StateDef names one state of a model family and carries its display tag.
type StateDef struct {
	Name string
	Tag  color.RGBA
}

// StateSet is the closed, ordered set of states a model family uses. The
// order doubles as the rotation order for manual cycling. A StateSet is
// immutable once built.
type StateSet struct {
	family string
	defs   []StateDef
	index  map[string]State
}

// NewStateSet builds the state set for a model family. It panics on an empty
// or duplicated definition list since sets are declared as package vars.
func NewStateSet(family string, defs ...StateDef) *StateSet {
	if len(defs) == 0 {
		panic(fmt.Sprintf("core: state set %q has no states", family))
	}
	if len(defs) > 256 {
		panic(fmt.Sprintf("core: state set %q has too many states", family))
	}
	s := &StateSet{
		family: family,
		defs:   append([]StateDef(nil), defs...),
		index:  make(map[string]State, len(defs)),
	}
	for i, d := range s.defs {
		if _, dup := s.index[d.Name]; dup {
			panic(fmt.Sprintf("core: state set %q repeats state %q", family, d.Name))
		}
		s.index[d.Name] = State(i)
	}
	return s
}

// Family returns the model family the set belongs to.
func (s *StateSet) Family() string { return s.family }

// Len reports the number of states.
func (s *StateSet) Len() int { return len(s.defs) }

// Default is the first state, used for fresh or reset cells.
func (s *StateSet) Default() State { return 0 }

// Next returns the successor of st in rotation order, wrapping from the last
// state back to the first.
func (s *StateSet) Next(st State) State {
	return State((int(st) + 1) % len(s.defs))
}

// Valid reports whether st belongs to the set.
func (s *StateSet) Valid(st State) bool { return int(st) < len(s.defs) }

// Name returns the state's name, or "" for states outside the set.
func (s *StateSet) Name(st State) string {
	if !s.Valid(st) {
		return ""
	}
	return s.defs[st].Name
}

// Tag returns the opaque display tag of st.
func (s *StateSet) Tag(st State) color.RGBA {
	if !s.Valid(st) {
		return color.RGBA{}
	}
	return s.defs[st].Tag
}

// Lookup resolves a state by name.
func (s *StateSet) Lookup(name string) (State, bool) {
	st, ok := s.index[name]
	return st, ok
}

// Names lists the state names in rotation order.
func (s *StateSet) Names() []string {
	names := make([]string, len(s.defs))
	for i, d := range s.defs {
		names[i] = d.Name
	}
	return names
}

// Palette returns the display tags indexed by state.
func (s *StateSet) Palette() []color.RGBA {
	p := make([]color.RGBA, len(s.defs))
	for i, d := range s.defs {
		p[i] = d.Tag
	}
	return p
}
