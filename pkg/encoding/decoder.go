package encoding

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when a bitstring is not a valid encoded stream.
var ErrMalformed = errors.New("malformed encoding")

// EncodedRule is a rule in its numeric form.
type EncodedRule struct {
	State  int   `json:"state"`
	Reads  []int `json:"reads"`
	Next   int   `json:"next"`
	Writes []int `json:"writes"`
	Moves  []int `json:"moves"`
}

// Arity is the number of tapes the rule governs.
func (r EncodedRule) Arity() int {
	return len(r.Reads)
}

type segment struct {
	value, width int
}

// Decode parses a stream produced by EncodeRulesToBinary back into numeric
// rules. The empty string decodes to no rules.
func Decode(bits string) ([]EncodedRule, error) {
	if bits == "" {
		return nil, nil
	}
	if len(bits) < len(Prefix) || bits[:len(Prefix)] != Prefix {
		return nil, fmt.Errorf("missing %q prefix: %w", Prefix, ErrMalformed)
	}

	var (
		rules   []EncodedRule
		pending []segment
		pos     = len(Prefix)
	)
	for pos < len(bits) {
		seg, next, err := readSegment(bits, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		pending = append(pending, seg)
		if seg.width == FieldEnd {
			continue
		}

		rule, err := assemble(pending)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", len(rules), err)
		}
		rules = append(rules, rule)
		pending = pending[:0]

		if seg.width == StreamEnd {
			if pos != len(bits) {
				return nil, fmt.Errorf("%d trailing bits after end of stream: %w", len(bits)-pos, ErrMalformed)
			}
			return rules, nil
		}
	}
	return nil, fmt.Errorf("stream not terminated: %w", ErrMalformed)
}

func readSegment(bits string, pos int) (segment, int, error) {
	start := pos
	for pos < len(bits) && bits[pos] == '0' {
		pos++
	}
	zeros := pos - start
	if zeros == 0 {
		return segment{}, pos, fmt.Errorf("empty value at bit %d: %w", start, ErrMalformed)
	}

	start = pos
	for pos < len(bits) && bits[pos] == '1' {
		pos++
	}
	ones := pos - start
	if pos < len(bits) && bits[pos] != '0' {
		return segment{}, pos, fmt.Errorf("unexpected %q at bit %d: %w", bits[pos], pos, ErrMalformed)
	}
	if ones == 0 || ones > StreamEnd {
		return segment{}, pos, fmt.Errorf("terminator of width %d at bit %d: %w", ones, start, ErrMalformed)
	}
	return segment{value: zeros, width: ones}, pos, nil
}

// assemble splits the 3k+2 segments of one rule into its fields.
func assemble(segs []segment) (EncodedRule, error) {
	n := len(segs)
	if n < 5 || (n-2)%3 != 0 {
		return EncodedRule{}, fmt.Errorf("%d fields do not form a rule: %w", n, ErrMalformed)
	}
	k := (n - 2) / 3
	for _, s := range segs[2+2*k:] {
		if s.value > len(directionCodes) {
			return EncodedRule{}, fmt.Errorf("direction code %d: %w", s.value, ErrMalformed)
		}
	}

	values := func(from, to int) []int {
		out := make([]int, 0, to-from)
		for _, s := range segs[from:to] {
			out = append(out, s.value)
		}
		return out
	}

	return EncodedRule{
		State:  segs[0].value,
		Reads:  values(1, 1+k),
		Next:   segs[1+k].value,
		Writes: values(2+k, 2+2*k),
		Moves:  values(2+2*k, n),
	}, nil
}
