package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStoreContract(t, store)
}

func TestMemoryStore_SaveIsolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	record := &domain.RunRecord{
		ID: "run-1",
		Result: &domain.SimulationResult{
			RulesExecuted: []string{"a"},
			EncodedRulesMappings: map[string]map[string]string{
				domain.MappingStates: {"q_start": "1"},
			},
		},
	}
	require.NoError(t, store.Save(ctx, record))

	record.Result.RulesExecuted[0] = "mutated"
	record.Result.EncodedRulesMappings[domain.MappingStates]["q_start"] = "9"

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, loaded.Result.RulesExecuted)
	assert.Equal(t, "1", loaded.Result.EncodedRulesMappings[domain.MappingStates]["q_start"])
}

func TestMemoryStore_Concurrency(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("run-%02d", i)
			_ = store.Save(ctx, &domain.RunRecord{ID: id, CreatedAt: now})
			_, _ = store.Load(ctx, id)
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 50)
	assert.Equal(t, "run-00", ids[0], "ties are broken by ID")
	assert.Equal(t, "run-49", ids[49])
}
