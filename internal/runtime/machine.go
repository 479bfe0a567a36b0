package runtime

import (
	"log/slog"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
)

// DefaultMaxSteps is the step budget used when callers have no better bound.
const DefaultMaxSteps = 100000

// Machine is a deterministic multi-tape Turing machine.
// It owns its tapes and heads for the duration of Run and is not safe for
// concurrent use. A Machine runs once.
type Machine struct {
	rules []domain.Rule
	tapes []*domain.Tape
	heads []*domain.Head

	current domain.State
	ran     bool

	cfg        domain.Config
	inputTape  int
	outputTape int
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithConfig sets the reserved symbols. Defaults to domain.DefaultConfig().
func WithConfig(cfg domain.Config) Option {
	return func(m *Machine) {
		m.cfg = cfg
	}
}

// WithOutputTape selects the tape reported as FinalReturnContent. Defaults to the last tape.
func WithOutputTape(index int) Option {
	return func(m *Machine) {
		m.outputTape = index
	}
}

// WithInputTape selects the tape reported as InitialInput. Defaults to the first tape.
func WithInputTape(index int) Option {
	return func(m *Machine) {
		m.inputTape = index
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

// WithLogger sets a structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Machine over rules, tapes and heads.
// The configuration is validated eagerly: mismatched arities, a rule set that
// cannot be encoded, or out-of-range tape indices yield an error wrapping
// domain.ErrInvalidMachine or domain.ErrInvalidRuleSet.
func New(rules []domain.Rule, tapes []*domain.Tape, heads []*domain.Head, opts ...Option) (*Machine, error) {
	m := &Machine{
		rules:      rules,
		tapes:      tapes,
		heads:      heads,
		cfg:        domain.DefaultConfig(),
		inputTape:  0,
		outputTape: len(tapes) - 1,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Rules returns the rule set in definition order.
func (m *Machine) Rules() []domain.Rule {
	return m.rules
}

// Tapes returns the machine's tapes. They are mutated in place by Run.
func (m *Machine) Tapes() []*domain.Tape {
	return m.tapes
}

// Heads returns the machine's heads. They are mutated in place by Run.
func (m *Machine) Heads() []*domain.Head {
	return m.heads
}

// State returns the current state.
func (m *Machine) State() domain.State {
	return m.current
}

// Config returns the machine configuration.
func (m *Machine) Config() domain.Config {
	return m.cfg
}
