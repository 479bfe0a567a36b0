package turing_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyProgram(t *testing.T) *definition.Program {
	t.Helper()

	doc, err := definition.Parse([]byte(testutils.CopyDefinitionYAML), definition.FormatYAML)
	require.NoError(t, err)
	prog, err := doc.Compile()
	require.NoError(t, err)
	return prog
}

func TestSimulator_RunFile(t *testing.T) {
	store := memory.NewStore()
	sim := turing.New(turing.WithStore(store))
	ctx := context.Background()

	path := testutils.WriteFile(t, "copy.yaml", testutils.CopyDefinitionYAML)
	record, err := sim.RunFile(ctx, path)
	require.NoError(t, err)

	_, err = uuid.Parse(record.ID)
	assert.NoError(t, err, "run IDs are UUIDs")
	assert.Equal(t, "copy", record.Name)
	assert.WithinDuration(t, time.Now(), record.CreatedAt, time.Minute)

	res := record.Result
	assert.True(t, res.Accepted)
	assert.Equal(t, domain.HaltAccepted, res.Reason)
	assert.Equal(t, 7, res.Steps)
	assert.Equal(t, "101#11", res.FinalReturnContent)
	assert.Equal(t, "101#11", res.InitialInput)

	assert.Same(t, store, sim.Store())
	ids, err := sim.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{record.ID}, ids)

	loaded, err := sim.LoadRun(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Result, loaded.Result)

	require.NoError(t, sim.DeleteRun(ctx, record.ID))
	_, err = sim.LoadRun(ctx, record.ID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestSimulator_ProgramIsReusable(t *testing.T) {
	sim := turing.New()
	prog := copyProgram(t)

	first, err := sim.Run(context.Background(), prog)
	require.NoError(t, err)
	second, err := sim.Run(context.Background(), prog)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Result, second.Result)
}

func TestSimulator_BudgetFromProgram(t *testing.T) {
	prog := copyProgram(t)
	prog.MaxSteps = 3

	record, err := turing.New().Run(context.Background(), prog)
	require.NoError(t, err)
	assert.Equal(t, domain.HaltBudgetExhausted, record.Result.Reason)
	assert.Equal(t, 3, record.Result.Steps)
	assert.Equal(t, "101", record.Result.FinalReturnContent)
}

func TestSimulator_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	var global, local int
	sim := turing.New(
		turing.WithMetrics(metrics),
		turing.WithLifecycleHooks(domain.LifecycleHooks{
			OnStep: func(*domain.StepEvent) { global++ },
		}),
	)

	rec := observability.NewRecorder(0)
	_, err = sim.Run(context.Background(), copyProgram(t), rec.Hooks(), domain.LifecycleHooks{
		OnHalt: func(*domain.HaltEvent) { local++ },
	})
	require.NoError(t, err)
	_, err = sim.Run(context.Background(), copyProgram(t))
	require.NoError(t, err)

	assert.Equal(t, 14, global)
	assert.Equal(t, 1, local, "per-run hooks apply to one run only")
	steps, _ := rec.Steps()
	assert.Len(t, steps, 7)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestSimulator_Cancelled(t *testing.T) {
	doc, err := definition.Decode(map[string]any{
		"tapes": []any{[]any{}},
		"rules": []any{
			map[string]any{"from": "q_start", "to": "q_start", "actions": []any{
				map[string]any{"read": "*", "write": "*", "move": "R"},
			}},
		},
	})
	require.NoError(t, err)
	prog, err := doc.Compile()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := memory.NewStore()
	_, err = turing.New(turing.WithStore(store)).Run(ctx, prog)
	assert.ErrorIs(t, err, context.Canceled)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids, "cancelled runs are not stored")
}

func TestSimulator_Encode(t *testing.T) {
	sim := turing.New()

	enc, err := sim.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "", enc.Binary)
	assert.Empty(t, enc.Mappings)

	cfg := domain.DefaultConfig()
	enc, err = sim.Encode(testutils.CopyRules(cfg))
	require.NoError(t, err)
	assert.Equal(t, "1", enc.Mappings[domain.MappingStates]["q_start"])
	assert.Equal(t, "3", enc.Mappings[domain.MappingStates]["q_end"])
	assert.Equal(t, "111", enc.Binary[:3])
}

func TestCompileAndValidate(t *testing.T) {
	_, err := turing.Compile("missing.yaml")
	assert.Error(t, err)

	path := testutils.WriteFile(t, "bad.yaml", "tapes: [[1]]\nrules:\n  - {from: a, to: b, actions: []}\n")
	_, err = turing.Compile(path)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)

	prog := copyProgram(t)
	assert.NoError(t, turing.Validate(prog))

	prog.Rules = append(prog.Rules, domain.NewRule(domain.StartState("other"), prog.Config.End, prog.Rules[0].Actions...))
	assert.ErrorIs(t, turing.Validate(prog), domain.ErrInvalidRuleSet)
}

func TestExampleMachines(t *testing.T) {
	tests := []struct {
		file   string
		steps  int
		output string
	}{
		{"copy.yaml", 7, "101#11"},
		{"increment.yaml", 8, "1100"},
	}

	sim := turing.New()
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			record, err := sim.RunFile(context.Background(), "examples/machines/"+tt.file)
			require.NoError(t, err)

			assert.Equal(t, domain.HaltAccepted, record.Result.Reason)
			assert.Equal(t, tt.steps, record.Result.Steps)
			assert.Equal(t, tt.output, record.Result.FinalReturnContent)
		})
	}
}
