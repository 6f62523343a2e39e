// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#4361ee"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "fa-tag"

// ReservedIncomeCategoryName is the name of the reserved income category.
// It is excluded from budget/spend aggregation views and cannot be deleted.
const ReservedIncomeCategoryName = "Income"

// Category represents a budget category in the ledger. Budget is the monthly
// spending limit; zero means no budget is tracked for the category.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Budget    decimal.Decimal
	Icon      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
// Note: Defaulting logic for color and icon should be applied in the
// application layer before calling this constructor.
func NewCategory(userID uuid.UUID, name string, budget decimal.Decimal, icon, color string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Budget:    budget,
		Icon:      icon,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsReservedIncome reports whether the category is the reserved "Income"
// category.
func (c *Category) IsReservedIncome() bool {
	return c.Name == ReservedIncomeCategoryName
}
