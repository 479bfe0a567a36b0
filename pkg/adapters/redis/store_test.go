package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunStoreContract(t, store)
}

func TestRedisStore_Contract_WithTTL(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(time.Hour))
	ports.RunStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	record := &domain.RunRecord{
		ID:        "run-ttl",
		CreatedAt: time.Now(),
		Result:    &domain.SimulationResult{Reason: domain.HaltAccepted, Accepted: true},
	}

	// 1. Save
	require.NoError(t, store.Save(ctx, record))

	// 2. Verify List (immediately)
	runs, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, runs, record.ID)

	// 3. Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	// 4. Verify Load (should fail)
	_, err = store.Load(ctx, record.ID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	// 5. Verify List prunes the index
	runs, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	members, err := mr.ZMembers(redis.DefaultPrefix + "index")
	if err == nil {
		assert.Empty(t, members)
	}
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, &domain.RunRecord{ID: "my-run", CreatedAt: time.Now()})
	assert.NoError(t, err)

	// Key should be "custom:app:my-run"
	assert.True(t, mr.Exists("custom:app:my-run"), "Expected key with custom prefix to exist")
	// Index should be "custom:app:index"
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"my-run"}, list)
}

func TestRedisStore_CorruptRecord(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"broken", "{not json"))

	_, err := store.Load(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRunNotFound)
}
