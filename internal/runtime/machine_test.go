package runtime_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCopyMachine(t *testing.T, input []string, opts ...runtime.Option) (*runtime.Machine, domain.Config) {
	t.Helper()

	cfg := domain.DefaultConfig()
	tapes, heads := testutils.CopyTapes(cfg, input...)
	opts = append([]runtime.Option{runtime.WithConfig(cfg), runtime.WithOutputTape(1)}, opts...)

	m, err := runtime.New(testutils.CopyRules(cfg), tapes, heads, opts...)
	require.NoError(t, err)
	return m, cfg
}

func TestMachine_CopyEndToEnd(t *testing.T) {
	m, cfg := newCopyMachine(t, testutils.CopyInput)

	res, err := m.Run(cfg.Start, 1000)
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, domain.HaltAccepted, res.Reason)
	assert.Equal(t, "101#11", res.FinalReturnContent)
	assert.Equal(t, "101#11", res.InitialInput)
	// Six data/separator symbols, then a seventh step: the blank "_" under the
	// input head matches the blank -> q_end rule. The halt check itself is not a step.
	assert.Equal(t, 7, res.Steps)
	require.Len(t, res.RulesExecuted, 7)
	assert.Equal(t, "δ(q_start, (1, *, *)) = (q_start, (1, 1, *), (Right, Right, Stay))", res.RulesExecuted[0])
	assert.Equal(t, "δ(q_start, (_, *, *)) = (q_end, (_, *, *), (Stay, Stay, Stay))", res.RulesExecuted[6])

	want, err := encoding.EncodeRulesToBinary(m.Rules())
	require.NoError(t, err)
	assert.Equal(t, want, res.EncodedRulesBinary)

	assert.Equal(t, map[string]string{"q_start": "1", "q_check": "2", "q_end": "3"}, res.EncodedRulesMappings[domain.MappingStates])
	assert.Equal(t, "3", res.EncodedRulesMappings[domain.MappingDirections]["Stay"])

	assert.Equal(t, cfg.End, m.State())
	assert.Equal(t, 6, m.Heads()[0].Position)
	assert.Equal(t, 6, m.Heads()[1].Position)
	assert.Equal(t, 0, m.Heads()[2].Position)
	assert.Equal(t, "", m.Tapes()[2].Stripped())
}

func TestMachine_DoubleSeparator(t *testing.T) {
	m, cfg := newCopyMachine(t, []string{"1", "#", "#", "0"})

	res, err := m.Run(cfg.Start, 1000)
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, 3, res.Steps)
	assert.Equal(t, "1#", res.FinalReturnContent)
	assert.Equal(t, "1##0", res.InitialInput)
}

func TestMachine_RuleNotFound(t *testing.T) {
	m, cfg := newCopyMachine(t, []string{"1", "#"})

	res, err := m.Run(cfg.Start, 1000)
	require.NoError(t, err)

	assert.False(t, res.Accepted)
	assert.Equal(t, domain.HaltRuleNotFound, res.Reason)
	assert.Equal(t, 2, res.Steps, "a failed match does not count as a step")
	assert.Len(t, res.RulesExecuted, 2)
	assert.Equal(t, "1#", res.FinalReturnContent)
	assert.Equal(t, domain.NewState("q_check"), m.State())
}

func TestMachine_DefaultOutputIsLastTape(t *testing.T) {
	cfg := domain.DefaultConfig()
	tapes, heads := testutils.CopyTapes(cfg, testutils.CopyInput...)
	m, err := runtime.New(testutils.CopyRules(cfg), tapes, heads)
	require.NoError(t, err)

	res, err := m.Run(cfg.Start, 1000)
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, "", res.FinalReturnContent)
	assert.Equal(t, "101#11", tapes[1].Stripped())
}

func TestMachine_FirstMatchWins(t *testing.T) {
	cfg := domain.DefaultConfig()
	rules := dsl.New(cfg).
		Rule(cfg.Start, cfg.End, dsl.S("x", "a")).
		Rule(cfg.Start, cfg.End, dsl.S("x", "b")).
		MustBuild()
	tape := cfg.NewTape("x")

	m, err := runtime.New(rules, []*domain.Tape{tape}, domain.NewHeads(1))
	require.NoError(t, err)

	res, err := m.Run(cfg.Start, 10)
	require.NoError(t, err)

	assert.Equal(t, "a", tape.Read(0))
	assert.Equal(t, []string{rules[0].String()}, res.RulesExecuted)
	assert.NotContains(t, res.RulesExecuted, rules[1].String())
}

func TestMachine_WildcardSemantics(t *testing.T) {
	cfg := domain.DefaultConfig()

	t.Run("Pass-through leaves the tape unchanged", func(t *testing.T) {
		rules := dsl.New(cfg).Rule(cfg.Start, cfg.End, dsl.SWild(cfg)).MustBuild()
		tape := cfg.NewTape("q", "r")

		m, err := runtime.New(rules, []*domain.Tape{tape}, domain.NewHeads(1))
		require.NoError(t, err)
		res, err := m.Run(cfg.Start, 10)
		require.NoError(t, err)

		assert.Equal(t, 1, res.Steps)
		assert.Equal(t, "qr", tape.String())
	})

	t.Run("Wildcard read with literal write always writes", func(t *testing.T) {
		rules := dsl.New(cfg).Rule(cfg.Start, cfg.End, dsl.R(cfg.Wildcard, "1")).MustBuild()
		tape := cfg.NewTape()

		m, err := runtime.New(rules, []*domain.Tape{tape}, domain.NewHeads(1))
		require.NoError(t, err)
		_, err = m.Run(cfg.Start, 10)
		require.NoError(t, err)

		assert.Equal(t, "1", tape.Stripped())
	})

	t.Run("Literal read with wildcard write keeps the observed symbol", func(t *testing.T) {
		rules := dsl.New(cfg).Rule(cfg.Start, cfg.End, dsl.S("1", cfg.Wildcard)).MustBuild()
		tape := cfg.NewTape("1")

		m, err := runtime.New(rules, []*domain.Tape{tape}, domain.NewHeads(1))
		require.NoError(t, err)
		res, err := m.Run(cfg.Start, 10)
		require.NoError(t, err)

		assert.True(t, res.Accepted)
		assert.Equal(t, "1", tape.Read(0))
	})

	t.Run("Observed wildcard matches a literal rule", func(t *testing.T) {
		rules := dsl.New(cfg).Rule(cfg.Start, cfg.End, dsl.S("1", "2")).MustBuild()
		tape := cfg.NewTape(cfg.Wildcard)

		m, err := runtime.New(rules, []*domain.Tape{tape}, domain.NewHeads(1))
		require.NoError(t, err)
		res, err := m.Run(cfg.Start, 10)
		require.NoError(t, err)

		assert.True(t, res.Accepted)
		assert.Equal(t, "2", tape.Read(0))
	})
}

func TestMachine_BudgetExhausted(t *testing.T) {
	cfg := domain.DefaultConfig()
	rules := dsl.New(cfg).Loop(cfg.Start, dsl.RWild(cfg)).MustBuild()
	heads := domain.NewHeads(1)

	m, err := runtime.New(rules, []*domain.Tape{cfg.NewTape()}, heads)
	require.NoError(t, err)

	res, err := m.Run(cfg.Start, 50)
	require.NoError(t, err)

	assert.False(t, res.Accepted)
	assert.Equal(t, domain.HaltBudgetExhausted, res.Reason)
	assert.Equal(t, 50, res.Steps)
	assert.Len(t, res.RulesExecuted, 50)
	assert.Equal(t, 50, heads[0].Position)
}

func TestMachine_AcceptedOnLastBudgetedStep(t *testing.T) {
	cfg := domain.DefaultConfig()
	rules := dsl.New(cfg).Rule(cfg.Start, cfg.End, dsl.SWild(cfg)).MustBuild()

	m, err := runtime.New(rules, []*domain.Tape{cfg.NewTape()}, domain.NewHeads(1))
	require.NoError(t, err)

	res, err := m.Run(cfg.Start, 1)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, domain.HaltAccepted, res.Reason)
	assert.Equal(t, 1, res.Steps)
}

func TestMachine_StartInEndState(t *testing.T) {
	cfg := domain.DefaultConfig()
	rules := dsl.New(cfg).Loop(cfg.End, dsl.RWild(cfg)).MustBuild()

	m, err := runtime.New(rules, []*domain.Tape{cfg.NewTape("1")}, domain.NewHeads(1))
	require.NoError(t, err)

	res, err := m.Run(cfg.End, 10)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 0, res.Steps)
	assert.Empty(t, res.RulesExecuted)
	assert.Empty(t, res.EncodedRulesMappings)
	assert.NotEmpty(t, res.EncodedRulesBinary, "the defined rule set is always encoded")
}

func TestMachine_EmptyRuleSet(t *testing.T) {
	cfg := domain.DefaultConfig()
	m, err := runtime.New(nil, []*domain.Tape{cfg.NewTape("1")}, domain.NewHeads(1))
	require.NoError(t, err)

	res, err := m.Run(cfg.Start, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.HaltRuleNotFound, res.Reason)
	assert.Equal(t, "", res.EncodedRulesBinary)
	assert.Equal(t, "1", res.FinalReturnContent)
}

func TestMachine_Determinism(t *testing.T) {
	first, cfg := newCopyMachine(t, testutils.CopyInput)
	second, _ := newCopyMachine(t, testutils.CopyInput)

	a, err := first.Run(cfg.Start, 1000)
	require.NoError(t, err)
	b, err := second.Run(cfg.Start, 1000)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestMachine_RunErrors(t *testing.T) {
	m, cfg := newCopyMachine(t, testutils.CopyInput)

	_, err := m.Run(cfg.Start, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidBudget)

	_, err = m.Run(cfg.Start, 10)
	require.NoError(t, err)

	_, err = m.Run(cfg.Start, 10)
	assert.ErrorIs(t, err, domain.ErrMachineSpent)
}

func TestMachine_Validation(t *testing.T) {
	cfg := domain.DefaultConfig()
	oneTape := dsl.New(cfg).Loop(cfg.Start, dsl.RWild(cfg)).MustBuild()

	tests := []struct {
		name  string
		rules []domain.Rule
		tapes []*domain.Tape
		heads []*domain.Head
		opts  []runtime.Option
		kind  error
	}{
		{
			name:  "No tapes",
			rules: nil,
			kind:  domain.ErrInvalidMachine,
		},
		{
			name:  "Rule arity differs from tape count",
			rules: oneTape,
			tapes: []*domain.Tape{cfg.NewTape(), cfg.NewTape()},
			heads: domain.NewHeads(2),
			kind:  domain.ErrInvalidMachine,
		},
		{
			name:  "Head count differs from tape count",
			rules: oneTape,
			tapes: []*domain.Tape{cfg.NewTape()},
			heads: domain.NewHeads(2),
			kind:  domain.ErrInvalidMachine,
		},
		{
			name:  "Nil tape",
			rules: oneTape,
			tapes: []*domain.Tape{nil},
			heads: domain.NewHeads(1),
			kind:  domain.ErrInvalidMachine,
		},
		{
			name:  "Tape with foreign blank",
			rules: oneTape,
			tapes: []*domain.Tape{domain.NewTape("#")},
			heads: domain.NewHeads(1),
			kind:  domain.ErrInvalidMachine,
		},
		{
			name:  "Output tape out of range",
			rules: oneTape,
			tapes: []*domain.Tape{cfg.NewTape()},
			heads: domain.NewHeads(1),
			opts:  []runtime.Option{runtime.WithOutputTape(3)},
			kind:  domain.ErrInvalidMachine,
		},
		{
			name:  "Wildcard equals blank",
			rules: oneTape,
			tapes: []*domain.Tape{cfg.NewTape()},
			heads: domain.NewHeads(1),
			opts:  []runtime.Option{runtime.WithConfig(domain.Config{Blank: "_", Wildcard: "_"})},
			kind:  domain.ErrInvalidMachine,
		},
		{
			name: "Two start states",
			rules: []domain.Rule{
				domain.NewRule(domain.StartState("a"), domain.StartState("b"), dsl.SWild(cfg)),
			},
			tapes: []*domain.Tape{cfg.NewTape()},
			heads: domain.NewHeads(1),
			kind:  domain.ErrInvalidRuleSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := runtime.New(tt.rules, tt.tapes, tt.heads, tt.opts...)
			assert.Nil(t, m)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestMachine_HooksAndLogging(t *testing.T) {
	var (
		steps []int
		halt  *domain.HaltEvent
		buf   bytes.Buffer
	)
	hooks := domain.LifecycleHooks{
		OnStep: func(e *domain.StepEvent) { steps = append(steps, e.Step) },
		OnHalt: func(e *domain.HaltEvent) { halt = e },
	}
	logger := logging.NewWithWriter(&buf, slog.LevelDebug, false)

	m, cfg := newCopyMachine(t, []string{"1", "0"}, runtime.WithLifecycleHooks(hooks), runtime.WithLogger(logger))
	_, err := m.Run(cfg.Start, 1000)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, steps)
	require.NotNil(t, halt)
	assert.Equal(t, domain.HaltAccepted, halt.Reason)
	assert.Equal(t, 3, halt.Steps)
	assert.Contains(t, buf.String(), "run halted")
	assert.Contains(t, buf.String(), "reason=accepted")
}

func TestMachine_RunContextCancelled(t *testing.T) {
	cfg := domain.DefaultConfig()
	rules := dsl.New(cfg).Loop(cfg.Start, dsl.RWild(cfg)).MustBuild()

	m, err := runtime.New(rules, []*domain.Tape{cfg.NewTape()}, domain.NewHeads(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := m.RunContext(ctx, cfg.Start, runtime.DefaultMaxSteps)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}
