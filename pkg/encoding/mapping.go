package encoding

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/aretw0/turing/pkg/domain"
)

// EncodingMap holds the integer assigned to every state, symbol and direction
// of a rule set.
type EncodingMap struct {
	States     map[string]int
	Symbols    map[string]int
	Directions map[domain.Direction]int
}

// directionCodes is the fixed direction numbering.
var directionCodes = map[domain.Direction]int{
	domain.Right: 1,
	domain.Left:  2,
	domain.Stay:  3,
}

// CreateEncodingMappings numbers the states and symbols referenced by rules.
// It fails when the numbering would be ambiguous: two start states, two end
// states, a state flagged both ways, or two distinct states sharing a name.
func CreateEncodingMappings(rules []domain.Rule) (*EncodingMap, error) {
	states, err := statesMapping(rules)
	if err != nil {
		return nil, err
	}
	return &EncodingMap{
		States:     states,
		Symbols:    symbolsMapping(rules),
		Directions: directionsMapping(),
	}, nil
}

func statesMapping(rules []domain.Rule) (map[string]int, error) {
	var (
		errs   []error
		byName = make(map[string]domain.State)
		start  *domain.State
		end    *domain.State
		inner  []string
	)

	invalid := func(key, reason string, value any) {
		errs = append(errs, &domain.ValidationError{
			Key:    key,
			Reason: reason,
			Value:  value,
			Kind:   domain.ErrInvalidRuleSet,
		})
	}

	visit := func(s domain.State) {
		if seen, ok := byName[s.Name]; ok {
			if seen != s {
				invalid("state "+strconv.Quote(s.Name), "declared with conflicting start/end flags", nil)
			}
			return
		}
		byName[s.Name] = s

		switch {
		case s.Start && s.End:
			invalid("state "+strconv.Quote(s.Name), "flagged both start and end", nil)
		case s.Start:
			if start != nil {
				invalid("state "+strconv.Quote(s.Name), "second start state", start.Name)
				return
			}
			start = &s
		case s.End:
			if end != nil {
				invalid("state "+strconv.Quote(s.Name), "second end state", end.Name)
				return
			}
			end = &s
		default:
			inner = append(inner, s.Name)
		}
	}

	for _, r := range rules {
		visit(r.Current)
		visit(r.Next)
	}
	if err := domain.Aggregate(errs); err != nil {
		return nil, err
	}

	sort.Strings(inner)

	mapping := make(map[string]int, len(byName))
	if start != nil {
		mapping[start.Name] = 1
	}
	idx := 2
	for _, name := range inner {
		mapping[name] = idx
		idx++
	}
	if end != nil {
		mapping[end.Name] = idx
	}
	return mapping, nil
}

func symbolsMapping(rules []domain.Rule) map[string]int {
	seen := make(map[string]struct{})
	for _, r := range rules {
		for _, a := range r.Actions {
			seen[a.Read] = struct{}{}
			seen[a.Write] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(seen))
	for s := range seen {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)

	mapping := make(map[string]int, len(sorted))
	for i, s := range sorted {
		mapping[s] = i + 1
	}
	return mapping
}

func directionsMapping() map[domain.Direction]int {
	out := make(map[domain.Direction]int, len(directionCodes))
	for d, code := range directionCodes {
		out[d] = code
	}
	return out
}

// DebugMappings renders the mappings of rules as string tables keyed by
// domain.MappingStates, domain.MappingSymbols and domain.MappingDirections.
func DebugMappings(rules []domain.Rule) (map[string]map[string]string, error) {
	m, err := CreateEncodingMappings(rules)
	if err != nil {
		return nil, err
	}

	states := make(map[string]string, len(m.States))
	for k, v := range m.States {
		states[k] = strconv.Itoa(v)
	}
	symbols := make(map[string]string, len(m.Symbols))
	for k, v := range m.Symbols {
		symbols[k] = strconv.Itoa(v)
	}
	directions := make(map[string]string, len(m.Directions))
	for k, v := range m.Directions {
		directions[k.String()] = strconv.Itoa(v)
	}

	return map[string]map[string]string{
		domain.MappingStates:     states,
		domain.MappingSymbols:    symbols,
		domain.MappingDirections: directions,
	}, nil
}

func (m *EncodingMap) state(s domain.State) (int, error) {
	n, ok := m.States[s.Name]
	if !ok {
		return 0, fmt.Errorf("state %q not in mapping: %w", s.Name, domain.ErrInvalidRuleSet)
	}
	return n, nil
}

func (m *EncodingMap) symbol(s string) (int, error) {
	n, ok := m.Symbols[s]
	if !ok {
		return 0, fmt.Errorf("symbol %q not in mapping: %w", s, domain.ErrInvalidRuleSet)
	}
	return n, nil
}

func (m *EncodingMap) direction(d domain.Direction) (int, error) {
	n, ok := m.Directions[d]
	if !ok {
		return 0, fmt.Errorf("direction %v not in mapping: %w", d, domain.ErrInvalidRuleSet)
	}
	return n, nil
}
