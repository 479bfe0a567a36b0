package domain

import (
	"fmt"
	"strings"
)

// Rule is a transition: (Current, symbols under the heads) -> (Next, writes, moves).
// len(Actions) is the number of tapes the rule governs.
type Rule struct {
	Current State    `json:"current" yaml:"current"`
	Next    State    `json:"next" yaml:"next"`
	Actions []Action `json:"actions" yaml:"actions"`
}

// NewRule creates a Rule over the given per-tape actions.
func NewRule(current, next State, actions ...Action) Rule {
	return Rule{Current: current, Next: next, Actions: actions}
}

// Arity is the number of tapes the rule expects.
func (r Rule) Arity() int {
	return len(r.Actions)
}

// Matches reports whether the rule applies to state with symbols under the heads.
// The state must be identical, the arity must match, and every position must match.
func (r Rule) Matches(state State, symbols []string, wildcard string) bool {
	if state != r.Current {
		return false
	}
	if len(symbols) != len(r.Actions) {
		return false
	}
	for i, a := range r.Actions {
		if !a.Matches(symbols[i], wildcard) {
			return false
		}
	}
	return true
}

// ReadSymbols lists the expected symbols in tape order.
func (r Rule) ReadSymbols() []string {
	out := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		out[i] = a.Read
	}
	return out
}

// WriteSymbols lists the written symbols in tape order.
func (r Rule) WriteSymbols() []string {
	out := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		out[i] = a.Write
	}
	return out
}

// Moves lists the head directions in tape order.
func (r Rule) Moves() []Direction {
	out := make([]Direction, len(r.Actions))
	for i, a := range r.Actions {
		out[i] = a.Move
	}
	return out
}

// String renders the rule as δ(current, (reads)) = (next, (writes), (moves)).
func (r Rule) String() string {
	moves := make([]string, len(r.Actions))
	for i, a := range r.Actions {
		moves[i] = a.Move.String()
	}
	return fmt.Sprintf("δ(%s, (%s)) = (%s, (%s), (%s))",
		r.Current.Name,
		strings.Join(r.ReadSymbols(), ", "),
		r.Next.Name,
		strings.Join(r.WriteSymbols(), ", "),
		strings.Join(moves, ", "),
	)
}
