// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-planner/backend/internal/application/ledger"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	sessions *ledger.Manager
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(sessions *ledger.Manager) *CategoryController {
	return &CategoryController{
		sessions: sessions,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	listed := store.Categories()
	categories := make([]dto.CategoryResponse, 0, len(listed))
	for _, category := range listed {
		categories = append(categories, dto.ToCategoryResponse(category))
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryName),
		})
		return
	}

	category, err := store.AddCategory(ctx.Request.Context(), ledger.CategoryInput{
		Name:   req.Name,
		Budget: req.Budget,
		Icon:   req.Icon,
		Color:  req.Color,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryName),
		})
		return
	}

	category, err := store.UpdateCategory(ctx.Request.Context(), id, ledger.CategoryInput{
		Name:   req.Name,
		Budget: req.Budget,
		Icon:   req.Icon,
		Color:  req.Color,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// Delete handles DELETE /categories/:id requests. Deletion is strict: a
// category that still has transactions, or the reserved Income category,
// is never removed.
func (c *CategoryController) Delete(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := store.DeleteCategory(ctx.Request.Context(), id); err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCategoryError maps category domain errors to HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		statusCode := http.StatusBadRequest
		switch catErr.Code {
		case domainerror.ErrCodeCategoryNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeCategoryNameExists,
			domainerror.ErrCodeCategoryInUse,
			domainerror.ErrCodeReservedCategory:
			statusCode = http.StatusConflict
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
