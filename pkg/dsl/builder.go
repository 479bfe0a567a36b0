package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Builder collects rules in definition order.
type Builder struct {
	cfg   domain.Config
	rules []domain.Rule
}

// New creates a new rule-set builder for cfg.
func New(cfg domain.Config) *Builder {
	return &Builder{cfg: cfg}
}

// Config returns the configuration the builder was created with.
func (b *Builder) Config() domain.Config {
	return b.cfg
}

// Rule appends δ(from, reads) = (to, writes, moves) with one action per tape.
func (b *Builder) Rule(from, to domain.State, actions ...domain.Action) *Builder {
	b.rules = append(b.rules, domain.NewRule(from, to, actions...))
	return b
}

// Loop appends a rule that stays in state.
func (b *Builder) Loop(state domain.State, actions ...domain.Action) *Builder {
	return b.Rule(state, state, actions...)
}

// Len is the number of rules added so far.
func (b *Builder) Len() int {
	return len(b.rules)
}

// Build returns a copy of the rules. All rules must govern the same number of
// tapes, and every rule must govern at least one.
func (b *Builder) Build() ([]domain.Rule, error) {
	var errs []error
	if len(b.rules) > 0 {
		arity := b.rules[0].Arity()
		for i, r := range b.rules {
			switch {
			case r.Arity() == 0:
				errs = append(errs, &domain.ValidationError{
					Key:    fmt.Sprintf("rules[%d]", i),
					Reason: "has no actions",
					Kind:   domain.ErrInvalidRuleSet,
				})
			case r.Arity() != arity:
				errs = append(errs, &domain.ValidationError{
					Key:    fmt.Sprintf("rules[%d]", i),
					Reason: fmt.Sprintf("expected %d actions like rules[0]", arity),
					Value:  r.Arity(),
					Kind:   domain.ErrInvalidRuleSet,
				})
			}
		}
	}
	if err := domain.Aggregate(errs); err != nil {
		return nil, err
	}

	out := make([]domain.Rule, len(b.rules))
	copy(out, b.rules)
	return out, nil
}

// MustBuild is like Build but panics on error. Intended for tests and
// package-level fixtures.
func (b *Builder) MustBuild() []domain.Rule {
	rules, err := b.Build()
	if err != nil {
		panic(err)
	}
	return rules
}
