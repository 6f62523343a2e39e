// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a savings goal funded by linked income transactions.
//
// Saved is a derived value: it is always recomputable as the sum of amounts
// of all transactions currently linked to the goal, and it is recalculated
// after any mutation that touches the goal's linkage and after bulk load. It
// is never accepted as trusted external input. Saved may exceed TargetAmount;
// the goal is then completed, there is no hard cap.
type Goal struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	TargetAmount        decimal.Decimal
	MonthlyContribution decimal.Decimal
	TargetDate          time.Time
	Saved               decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity with zero saved progress.
func NewGoal(
	userID uuid.UUID,
	name string,
	targetAmount decimal.Decimal,
	monthlyContribution decimal.Decimal,
	targetDate time.Time,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:                  uuid.New(),
		UserID:              userID,
		Name:                name,
		TargetAmount:        targetAmount,
		MonthlyContribution: monthlyContribution,
		TargetDate:          targetDate,
		Saved:               decimal.Zero,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
