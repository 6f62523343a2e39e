// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-planner/backend/internal/application/goalprogress"
	"github.com/budget-planner/backend/internal/application/ledger"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/integration/entrypoint/dto"
)

// GoalController handles goal endpoints.
type GoalController struct {
	sessions *ledger.Manager
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(sessions *ledger.Manager) *GoalController {
	return &GoalController{
		sessions: sessions,
	}
}

// List handles GET /goals requests. Every goal is returned with its progress
// evaluated against the current time.
func (c *GoalController) List(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	views := store.GoalReports(time.Now().UTC())
	goals := make([]dto.GoalResponse, 0, len(views))
	for _, view := range views {
		goals = append(goals, dto.ToGoalResponse(view))
	}

	ctx.JSON(http.StatusOK, dto.GoalListResponse{
		Goals: goals,
		Total: len(goals),
	})
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	input, ok := c.bindInput(ctx)
	if !ok {
		return
	}

	goal, err := store.AddGoal(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, c.toResponse(goal))
}

// Update handles PUT /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
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

	goal, err := store.UpdateGoal(ctx.Request.Context(), id, input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, c.toResponse(goal))
}

// Delete handles DELETE /goals/:id requests. Linked transactions lose their
// goal reference but are kept.
func (c *GoalController) Delete(ctx *gin.Context) {
	store, ok := sessionFromContext(ctx, c.sessions)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := store.DeleteGoal(ctx.Request.Context(), id); err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *GoalController) bindInput(ctx *gin.Context) (ledger.GoalInput, bool) {
	var req dto.GoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return ledger.GoalInput{}, false
	}

	targetDate, ok := parseDateField(ctx, req.TargetDate)
	if !ok {
		return ledger.GoalInput{}, false
	}

	return ledger.GoalInput{
		Name:                req.Name,
		TargetAmount:        req.TargetAmount,
		MonthlyContribution: req.MonthlyContribution,
		TargetDate:          targetDate,
	}, true
}

func (c *GoalController) toResponse(goal *entity.Goal) dto.GoalResponse {
	return dto.ToGoalResponse(ledger.GoalView{
		Goal:   goal,
		Report: goalprogress.Classify(goal, time.Now().UTC()),
	})
}

// handleGoalError maps goal domain errors to HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		statusCode := http.StatusBadRequest
		if goalErr.Code == domainerror.ErrCodeGoalNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
