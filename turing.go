package turing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/encoding"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/google/uuid"
)

// DefaultMaxSteps is used when a program does not set its own budget.
const DefaultMaxSteps = runtime.DefaultMaxSteps

// Simulator is the high-level entry point of the library.
// It runs compiled programs, records the results and encodes rule sets.
// Safe for concurrent use: every run gets its own machine and tapes.
type Simulator struct {
	store  ports.RunStore
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option defines a functional option for configuring the Simulator.
type Option func(*Simulator)

// WithLifecycleHooks registers observability hooks, invoked for every run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Simulator) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithMetrics feeds every run into the given Prometheus collectors.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Simulator) {
		s.hooks = s.hooks.Merge(m.Hooks())
	}
}

// WithStore sets where finished runs are persisted. Defaults to an in-memory store.
func WithStore(store ports.RunStore) Option {
	return func(s *Simulator) {
		s.store = store
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// New creates a Simulator.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = memory.NewStore()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Store returns the store runs are persisted to.
func (s *Simulator) Store() ports.RunStore {
	return s.store
}

// Run executes a compiled program on fresh tapes, persists the outcome and
// returns it. Extra hooks apply to this run only.
func (s *Simulator) Run(ctx context.Context, prog *definition.Program, hooks ...domain.LifecycleHooks) (*domain.RunRecord, error) {
	id := uuid.NewString()
	logger := s.logger.With("run_id", id)
	if prog.Name != "" {
		logger = logger.With("program", prog.Name)
	}

	runHooks := s.hooks
	for _, h := range hooks {
		runHooks = runHooks.Merge(h)
	}

	tapes, heads := prog.Tapes()
	m, err := runtime.New(prog.Rules, tapes, heads,
		runtime.WithConfig(prog.Config),
		runtime.WithOutputTape(prog.OutputTape),
		runtime.WithLifecycleHooks(runHooks),
		runtime.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	maxSteps := prog.MaxSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}

	result, err := m.RunContext(ctx, prog.Config.Start, maxSteps)
	if err != nil {
		return nil, err
	}

	record := &domain.RunRecord{
		ID:        id,
		Name:      prog.Name,
		CreatedAt: s.now().UTC(),
		Result:    result,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save run %s: %w", id, err)
	}
	return record, nil
}

// RunFile loads, compiles and runs the definition document at path.
func (s *Simulator) RunFile(ctx context.Context, path string) (*domain.RunRecord, error) {
	prog, err := Compile(path)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, prog)
}

// Encoding is the canonical encoding of a rule set.
type Encoding struct {
	Binary   string                       `json:"binary"`
	Mappings map[string]map[string]string `json:"mappings"`
}

// Encode returns the bitstring and integer tables of the whole rule set.
func (s *Simulator) Encode(rules []domain.Rule) (*Encoding, error) {
	binary, err := encoding.EncodeRulesToBinary(rules)
	if err != nil {
		return nil, err
	}

	mappings := map[string]map[string]string{}
	if len(rules) > 0 {
		mappings, err = encoding.DebugMappings(rules)
		if err != nil {
			return nil, err
		}
	}
	return &Encoding{Binary: binary, Mappings: mappings}, nil
}

// Runs lists stored run IDs, oldest first.
func (s *Simulator) Runs(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// LoadRun returns a stored run. Unknown IDs yield domain.ErrRunNotFound.
func (s *Simulator) LoadRun(ctx context.Context, id string) (*domain.RunRecord, error) {
	return s.store.Load(ctx, id)
}

// DeleteRun removes a stored run.
func (s *Simulator) DeleteRun(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Compile loads and compiles the definition document at path.
func Compile(path string) (*definition.Program, error) {
	doc, err := definition.Load(path)
	if err != nil {
		return nil, err
	}
	prog, err := doc.Compile()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// Validate checks that prog describes a runnable machine without running it.
func Validate(prog *definition.Program) error {
	tapes, heads := prog.Tapes()
	_, err := runtime.New(prog.Rules, tapes, heads,
		runtime.WithConfig(prog.Config),
		runtime.WithOutputTape(prog.OutputTape),
	)
	return err
}
