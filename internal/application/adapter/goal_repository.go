// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
// The derived Saved field is not persisted; it is recomputed from linked
// transactions after load.
type GoalRepository interface {
	// Create persists a new goal.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByUser retrieves all goals for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Update persists changes to an existing goal.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete removes a goal.
	Delete(ctx context.Context, id uuid.UUID) error
}
