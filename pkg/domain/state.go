package domain

// State is a node of the transition table.
// Two States are the same entity only when Name, Start and End all match, so
// plain == comparison is the identity check.
type State struct {
	Name  string `json:"name" yaml:"name"`
	Start bool   `json:"start,omitempty" yaml:"start,omitempty"`
	End   bool   `json:"end,omitempty" yaml:"end,omitempty"`
}

// NewState creates an inner state (neither start nor end).
func NewState(name string) State {
	return State{Name: name}
}

// StartState creates a state flagged as the initial state.
func StartState(name string) State {
	return State{Name: name, Start: true}
}

// EndState creates a state flagged as the accepting halt state.
func EndState(name string) State {
	return State{Name: name, End: true}
}

// IsInner reports whether the state is neither start nor end.
func (s State) IsInner() bool {
	return !s.Start && !s.End
}

func (s State) String() string {
	return s.Name
}
