package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/encoding"
)

// cancelCheckInterval is how many steps pass between context checks.
const cancelCheckInterval = 1024

// Run executes the machine from start for at most maxSteps transitions.
//
// Rules are tried in definition order and the first match wins, so a later
// rule matching the same configuration is never executed. The run stops when
// the current state is an end state, when no rule matches, or when the budget
// is used up. None of these is an error.
func (m *Machine) Run(start domain.State, maxSteps int) (*domain.SimulationResult, error) {
	return m.RunContext(context.Background(), start, maxSteps)
}

// RunContext is Run with cancellation. A cancelled run returns the context's
// error and no result.
func (m *Machine) RunContext(ctx context.Context, start domain.State, maxSteps int) (*domain.SimulationResult, error) {
	if maxSteps <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidBudget, maxSteps)
	}
	if m.ran {
		return nil, domain.ErrMachineSpent
	}
	m.ran = true

	m.current = start
	m.logger.Debug("run started", "state", start.Name, "tapes", len(m.tapes), "rules", len(m.rules), "max_steps", maxSteps)

	var (
		steps    int
		stuck    bool
		executed []domain.Rule
	)
	for steps < maxSteps {
		if m.current.End {
			break
		}
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				m.logger.Warn("run cancelled", "steps", steps, "error", err)
				return nil, fmt.Errorf("run cancelled after %d steps: %w", steps, err)
			}
		}

		symbols := m.ReadTapes()
		rule, ok := m.MatchRule(symbols)
		if !ok {
			m.logger.Debug("no rule matches", "state", m.current.Name, "symbols", symbols)
			stuck = true
			break
		}

		from := m.current
		written := m.Apply(rule, symbols)
		steps++
		executed = append(executed, rule)

		m.logger.Debug("step", "n", steps, "rule", rule.String())
		m.emitStep(&domain.StepEvent{
			Step:    steps,
			Rule:    rule,
			Read:    symbols,
			Written: written,
			From:    from,
			To:      m.current,
		})
	}

	reason := domain.HaltBudgetExhausted
	switch {
	case m.current.End:
		reason = domain.HaltAccepted
	case stuck:
		reason = domain.HaltRuleNotFound
	}

	result, err := m.result(steps, reason, executed)
	if err != nil {
		return nil, err
	}

	m.logger.Info("run halted", "reason", reason, "steps", steps, "state", m.current.Name)
	m.emitHalt(&domain.HaltEvent{Steps: steps, Reason: reason, State: m.current})
	return result, nil
}

// ReadTapes returns the symbol under each head, in tape order.
func (m *Machine) ReadTapes() []string {
	symbols := make([]string, len(m.tapes))
	for i, t := range m.tapes {
		symbols[i] = t.Read(m.heads[i].Position)
	}
	return symbols
}

// MatchRule returns the first rule, in definition order, that matches the
// current state and symbols.
func (m *Machine) MatchRule(symbols []string) (domain.Rule, bool) {
	for _, r := range m.rules {
		if r.Matches(m.current, symbols, m.cfg.Wildcard) {
			return r, true
		}
	}
	return domain.Rule{}, false
}

// Apply executes rule against the symbols just read: all tapes are written,
// then all heads move, then the state changes. It returns what was written.
func (m *Machine) Apply(rule domain.Rule, symbols []string) []string {
	written := make([]string, len(rule.Actions))
	for i, a := range rule.Actions {
		written[i] = a.Resolve(symbols[i], m.cfg.Wildcard)
	}
	for i, t := range m.tapes {
		t.Write(m.heads[i].Position, written[i])
	}
	for i, h := range m.heads {
		h.Move(rule.Actions[i].Move)
	}
	m.current = rule.Next
	return written
}

func (m *Machine) result(steps int, reason domain.HaltReason, executed []domain.Rule) (*domain.SimulationResult, error) {
	binary, err := encoding.EncodeRulesToBinary(m.rules)
	if err != nil {
		return nil, fmt.Errorf("encode rule set: %w", err)
	}

	mappings := map[string]map[string]string{}
	if len(executed) > 0 {
		mappings, err = encoding.DebugMappings(executed)
		if err != nil {
			return nil, fmt.Errorf("encode executed rules: %w", err)
		}
	}

	described := make([]string, len(executed))
	for i, r := range executed {
		described[i] = r.String()
	}

	return &domain.SimulationResult{
		Accepted:             reason == domain.HaltAccepted,
		Reason:               reason,
		Steps:                steps,
		FinalReturnContent:   m.tapes[m.outputTape].Stripped(),
		InitialInput:         m.tapes[m.inputTape].Input(),
		RulesExecuted:        described,
		EncodedRulesBinary:   binary,
		EncodedRulesMappings: mappings,
	}, nil
}

func (m *Machine) emitStep(e *domain.StepEvent) {
	if m.hooks.OnStep != nil {
		m.hooks.OnStep(e)
	}
}

func (m *Machine) emitHalt(e *domain.HaltEvent) {
	if m.hooks.OnHalt == nil {
		return
	}
	e.Tapes = make([]domain.TapeSnapshot, len(m.tapes))
	for i, t := range m.tapes {
		e.Tapes[i] = t.Snapshot(m.heads[i])
	}
	m.hooks.OnHalt(e)
}
