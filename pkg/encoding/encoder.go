package encoding

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Prefix opens every encoded stream.
const Prefix = "111"

// Terminator widths.
const (
	FieldEnd  = 1
	RuleEnd   = 2
	StreamEnd = 3
)

// Unary encodes n as n zeros followed by m ones.
func Unary(n, m int) string {
	return strings.Repeat("0", n) + strings.Repeat("1", m)
}

// EncodeRulesToBinary serializes rules in order. An empty rule set encodes to "".
func EncodeRulesToBinary(rules []domain.Rule) (string, error) {
	if len(rules) == 0 {
		return "", nil
	}

	var errs []error
	for i, r := range rules {
		if len(r.Actions) == 0 {
			errs = append(errs, &domain.ValidationError{
				Key:    fmt.Sprintf("rules[%d]", i),
				Reason: "has no actions",
				Kind:   domain.ErrInvalidRuleSet,
			})
		}
	}
	if err := domain.Aggregate(errs); err != nil {
		return "", err
	}

	m, err := CreateEncodingMappings(rules)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(Prefix)

	last := len(rules) - 1
	for i, r := range rules {
		term := RuleEnd
		if i == last {
			term = StreamEnd
		}
		if err := encodeRule(&sb, m, r, term); err != nil {
			return "", fmt.Errorf("rules[%d]: %w", i, err)
		}
	}
	return sb.String(), nil
}

func encodeRule(sb *strings.Builder, m *EncodingMap, r domain.Rule, term int) error {
	cur, err := m.state(r.Current)
	if err != nil {
		return err
	}
	sb.WriteString(Unary(cur, FieldEnd))

	for _, a := range r.Actions {
		n, err := m.symbol(a.Read)
		if err != nil {
			return err
		}
		sb.WriteString(Unary(n, FieldEnd))
	}

	next, err := m.state(r.Next)
	if err != nil {
		return err
	}
	sb.WriteString(Unary(next, FieldEnd))

	for _, a := range r.Actions {
		n, err := m.symbol(a.Write)
		if err != nil {
			return err
		}
		sb.WriteString(Unary(n, FieldEnd))
	}

	lastOp := len(r.Actions) - 1
	for j, a := range r.Actions {
		code, err := m.direction(a.Move)
		if err != nil {
			return err
		}
		width := FieldEnd
		if j == lastOp {
			width = term
		}
		sb.WriteString(Unary(code, width))
	}
	return nil
}
