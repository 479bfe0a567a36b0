package memory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.RunRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.RunRecord),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, record *domain.RunRecord) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := clone(record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = copied
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	// Copy on read so callers can't mutate the store through the pointer
	return clone(record), nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored run IDs ordered by creation time.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := slices.Collect(maps.Values(s.data))
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids, nil
}

func clone(record *domain.RunRecord) *domain.RunRecord {
	ret := *record
	if record.Result == nil {
		return &ret
	}

	res := *record.Result
	res.RulesExecuted = slices.Clone(record.Result.RulesExecuted)
	if record.Result.EncodedRulesMappings != nil {
		res.EncodedRulesMappings = make(map[string]map[string]string, len(record.Result.EncodedRulesMappings))
		for k, v := range record.Result.EncodedRulesMappings {
			res.EncodedRulesMappings[k] = maps.Clone(v)
		}
	}
	ret.Result = &res
	return &ret
}
