// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByUser retrieves all categories for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// Update persists changes to an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category.
	Delete(ctx context.Context, id uuid.UUID) error
}
