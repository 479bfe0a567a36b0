package runtime

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/encoding"
)

// validate checks that rules, tapes and heads describe one consistent machine.
func (m *Machine) validate() error {
	var errs []error
	invalid := func(key, reason string, value any) {
		errs = append(errs, &domain.ValidationError{
			Key:    key,
			Reason: reason,
			Value:  value,
			Kind:   domain.ErrInvalidMachine,
		})
	}

	if m.cfg.Blank == "" {
		invalid("config.blank", "must not be empty", nil)
	}
	if m.cfg.Wildcard == "" {
		invalid("config.wildcard", "must not be empty", nil)
	}
	if m.cfg.Blank != "" && m.cfg.Blank == m.cfg.Wildcard {
		invalid("config.wildcard", "must differ from the blank symbol", m.cfg.Wildcard)
	}

	if len(m.tapes) == 0 {
		invalid("tapes", "at least one tape is required", nil)
	}
	if len(m.heads) != len(m.tapes) {
		invalid("heads", fmt.Sprintf("expected %d heads, one per tape", len(m.tapes)), len(m.heads))
	}
	for i, t := range m.tapes {
		switch {
		case t == nil:
			invalid(fmt.Sprintf("tapes[%d]", i), "is nil", nil)
		case t.Blank() != m.cfg.Blank:
			invalid(fmt.Sprintf("tapes[%d]", i), fmt.Sprintf("blank symbol differs from %q", m.cfg.Blank), t.Blank())
		}
	}
	for i, h := range m.heads {
		if h == nil {
			invalid(fmt.Sprintf("heads[%d]", i), "is nil", nil)
		}
	}

	for i, r := range m.rules {
		if r.Arity() != len(m.tapes) {
			invalid(fmt.Sprintf("rules[%d]", i), fmt.Sprintf("expected %d actions, one per tape", len(m.tapes)), r.Arity())
		}
		for j, a := range r.Actions {
			if !a.Move.Valid() {
				invalid(fmt.Sprintf("rules[%d].actions[%d].move", i, j), "unknown direction", int(a.Move))
			}
		}
	}

	if len(m.tapes) > 0 {
		if m.inputTape < 0 || m.inputTape >= len(m.tapes) {
			invalid("input_tape", "out of range", m.inputTape)
		}
		if m.outputTape < 0 || m.outputTape >= len(m.tapes) {
			invalid("output_tape", "out of range", m.outputTape)
		}
	}

	if err := domain.Aggregate(errs); err != nil {
		return err
	}

	// The encoding is produced at the end of every run; reject what it would reject.
	if _, err := encoding.CreateEncodingMappings(m.rules); err != nil {
		return fmt.Errorf("rule set cannot be encoded: %w", err)
	}
	return nil
}
