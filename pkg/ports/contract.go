package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	newRecord := func(id string, created time.Time) *domain.RunRecord {
		return &domain.RunRecord{
			ID:        id,
			Name:      "contract",
			CreatedAt: created.UTC(),
			Result: &domain.SimulationResult{
				Accepted:           true,
				Reason:             domain.HaltAccepted,
				Steps:              3,
				FinalReturnContent: "10",
				InitialInput:       "10",
				RulesExecuted:      []string{"δ(q_start, (1)) = (q_start, (1), (Right))"},
				EncodedRulesBinary: "11101001010010111",
				EncodedRulesMappings: map[string]map[string]string{
					domain.MappingStates: {"q_start": "1"},
				},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		record := newRecord(runID, time.Now())

		err := store.Save(ctx, record)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, record.ID, loaded.ID)
		assert.Equal(t, record.Name, loaded.Name)
		assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, record.Result, loaded.Result)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		loaded.Result.FinalReturnContent = "mutated"

		again, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, "10", again.Result.FinalReturnContent)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newRecord(runID, time.Now()))
		require.NoError(t, err)

		err = store.Delete(ctx, runID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")

		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := runID + "-1"
		id2 := runID + "-2"
		base := time.Now()
		_ = store.Save(ctx, newRecord(id2, base.Add(time.Second)))
		_ = store.Save(ctx, newRecord(id1, base))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		runs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, runs, id1)
		assert.Contains(t, runs, id2)

		i1, i2 := indexOf(runs, id1), indexOf(runs, id2)
		assert.Less(t, i1, i2, "List should be ordered by creation time")
	})
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
