// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// CategoryRequest represents the request body for creating or updating a
// category. Budget zero means the category has no monthly limit.
type CategoryRequest struct {
	Name   string          `json:"name" binding:"required,min=1,max=100"`
	Budget decimal.Decimal `json:"budget"`
	Icon   string          `json:"icon" binding:"omitempty,max=50"`
	Color  string          `json:"color" binding:"omitempty,hexcolor"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Budget decimal.Decimal `json:"budget"`
	Icon   string          `json:"icon"`
	Color  string          `json:"color"`
}

// CategoryListResponse represents the response for category listings.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:     category.ID.String(),
		Name:   category.Name,
		Budget: category.Budget,
		Icon:   category.Icon,
		Color:  category.Color,
	}
}
