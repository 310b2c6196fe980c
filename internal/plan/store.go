package plan

import (
	"context"

	"github.com/google/uuid"
)

// Store provides read access to the plan catalog. Writes happen through
// seeding/migrations, not the workflow.
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}
