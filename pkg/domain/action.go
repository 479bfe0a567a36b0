package domain

// Action is one tape's contribution to a Rule: what it expects under the head,
// what it writes, and where the head goes afterwards.
type Action struct {
	Read  string    `json:"read" yaml:"read"`
	Write string    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
}

// NewAction creates an Action.
func NewAction(read, write string, move Direction) Action {
	return Action{Read: read, Write: write, Move: move}
}

// Matches reports whether the action accepts the observed symbol.
// A wildcard on either side matches, as does literal equality.
func (a Action) Matches(observed, wildcard string) bool {
	return a.Read == wildcard || observed == wildcard || a.Read == observed
}

// Resolve returns the symbol to write over observed. A wildcard write keeps
// the cell unchanged.
//
// Only the write symbol decides pass-through. A literal read paired with a
// wildcard write writes the observed symbol back, never the wildcard itself,
// and a wildcard read paired with a literal write always writes the literal.
func (a Action) Resolve(observed, wildcard string) string {
	if a.Write == wildcard {
		return observed
	}
	return a.Write
}
