// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/ledger"
)

// GoalRequest represents the request body for creating or updating a goal.
// Saved is deliberately absent: it is derived from linked transactions and
// never accepted from the client.
type GoalRequest struct {
	Name                string          `json:"name" binding:"required,min=1,max=100"`
	TargetAmount        decimal.Decimal `json:"target_amount" binding:"required"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	TargetDate          string          `json:"target_date" binding:"required"`
}

// GoalResponse represents a goal with its progress report in API responses.
type GoalResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	TargetAmount          decimal.Decimal `json:"target_amount"`
	MonthlyContribution   decimal.Decimal `json:"monthly_contribution"`
	TargetDate            string          `json:"target_date"`
	Saved                 decimal.Decimal `json:"saved"`
	Percentage            float64         `json:"percentage"`
	DaysLeft              int             `json:"days_left"`
	RequiredMonthlySaving decimal.Decimal `json:"required_monthly_saving"`
	Status                string          `json:"status"`
}

// GoalListResponse represents the response for goal listings.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
	Total int            `json:"total"`
}

// ToGoalResponse converts a goal with its progress report to a GoalResponse DTO.
func ToGoalResponse(view ledger.GoalView) GoalResponse {
	return GoalResponse{
		ID:                    view.Goal.ID.String(),
		Name:                  view.Goal.Name,
		TargetAmount:          view.Goal.TargetAmount,
		MonthlyContribution:   view.Goal.MonthlyContribution,
		TargetDate:            view.Goal.TargetDate.Format(DateLayout),
		Saved:                 view.Report.Saved,
		Percentage:            view.Report.Percentage,
		DaysLeft:              view.Report.DaysLeft,
		RequiredMonthlySaving: view.Report.RequiredMonthlySaving,
		Status:                string(view.Report.Status),
	}
}
