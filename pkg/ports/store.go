package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// RunStore persists finished simulation runs.
type RunStore interface {
	// Save persists a run record under record.ID, replacing any previous record.
	Save(ctx context.Context, record *domain.RunRecord) error

	// Load retrieves a run record by ID.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes a run record. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored runs, oldest first.
	List(ctx context.Context) ([]string, error)
}
