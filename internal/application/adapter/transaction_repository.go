// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
//
// The ledger store follows a two-phase write discipline: the repository call
// must succeed before the in-memory collection is mutated, so a failed remote
// operation leaves the session state exactly as it was.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByUser retrieves all transactions for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// Update persists changes to an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearGoalLinks sets GoalID to null on every transaction of the user
	// that references the given goal. Used when a goal is deleted; the
	// transactions themselves are never removed.
	ClearGoalLinks(ctx context.Context, userID, goalID uuid.UUID) error
}
