// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents a single income or expense entry in the ledger.
// Amount is always positive; Type carries the sign semantics.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  uuid.UUID
	GoalID      *uuid.UUID // Optional link from an income transaction to a savings goal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID uuid.UUID,
	goalID *uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		GoalID:      goalID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithCategory pairs a transaction with its category, resolved by
// live lookup at read time. Category labels are never denormalized onto the
// transaction itself, so renaming a category updates historic rows too.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}
