// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/ledger"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	sessions *ledger.Manager
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(sessions *ledger.Manager) *TransactionController {
	return &TransactionController{
		sessions: sessions,
	}
}

// List handles GET /transactions requests. Transactions are returned newest
// first with their categories resolved by live lookup.
func (c *TransactionController) List(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	listed := store.TransactionsWithCategories()
	transactions := make([]dto.TransactionResponse, 0, len(listed))
	for _, pair := range listed {
		transactions = append(transactions, dto.ToTransactionWithCategoryResponse(pair))
	}

	ctx.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Total:        len(transactions),
	})
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	input, ok := c.bindInput(ctx)
	if !ok {
		return
	}

	transaction, err := store.AddTransaction(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	input, ok := c.bindInput(ctx)
	if !ok {
		return
	}

	transaction, err := store.UpdateTransaction(ctx.Request.Context(), id, input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := store.DeleteTransaction(ctx.Request.Context(), id); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// bindInput parses and converts the request body into a ledger input. A
// false return means the response has already been written.
func (c *TransactionController) bindInput(ctx *gin.Context) (ledger.TransactionInput, bool) {
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return ledger.TransactionInput{}, false
	}

	date, ok := parseDateField(ctx, req.Date)
	if !ok {
		return ledger.TransactionInput{}, false
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category_id",
			Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
		})
		return ledger.TransactionInput{}, false
	}

	var goalID *uuid.UUID
	if req.GoalID != nil {
		parsed, err := uuid.Parse(*req.GoalID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid goal_id",
				Code:  string(domainerror.ErrCodeTxnGoalNotFound),
			})
			return ledger.TransactionInput{}, false
		}
		goalID = &parsed
	}

	return ledger.TransactionInput{
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        entity.TransactionType(req.Type),
		CategoryID:  categoryID,
		GoalID:      goalID,
	}, true
}

// handleTransactionError maps transaction domain errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		statusCode := http.StatusBadRequest
		switch txnErr.Code {
		case domainerror.ErrCodeTransactionNotFound,
			domainerror.ErrCodeTxnCategoryNotFound,
			domainerror.ErrCodeTxnGoalNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeGoalLinkedExpense:
			statusCode = http.StatusUnprocessableEntity
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
