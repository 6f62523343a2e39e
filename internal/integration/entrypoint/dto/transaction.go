// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// TransactionRequest represents the request body for creating or updating a
// transaction.
type TransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	GoalID      *string         `json:"goal_id,omitempty" binding:"omitempty,uuid"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Type        string            `json:"type"`
	CategoryID  string            `json:"category_id"`
	GoalID      *string           `json:"goal_id,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TransactionListResponse represents the response for transaction listings.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// ToTransactionResponse converts a domain Transaction entity to a
// TransactionResponse DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	var goalID *string
	if transaction.GoalID != nil {
		id := transaction.GoalID.String()
		goalID = &id
	}

	return TransactionResponse{
		ID:          transaction.ID.String(),
		Date:        transaction.Date.Format(DateLayout),
		Description: transaction.Description,
		Amount:      transaction.Amount,
		Type:        string(transaction.Type),
		CategoryID:  transaction.CategoryID.String(),
		GoalID:      goalID,
		CreatedAt:   transaction.CreatedAt,
	}
}

// ToTransactionWithCategoryResponse converts a TransactionWithCategory pair
// to a TransactionResponse DTO with the category embedded.
func ToTransactionWithCategoryResponse(pair *entity.TransactionWithCategory) TransactionResponse {
	response := ToTransactionResponse(pair.Transaction)
	if pair.Category != nil {
		category := ToCategoryResponse(pair.Category)
		response.Category = &category
	}
	return response
}
