// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/application/aggregation"
	"github.com/budget-planner/backend/internal/application/ledger"
)

// SummaryResponse represents the monthly income/expense summary.
type SummaryResponse struct {
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Balance     decimal.Decimal `json:"balance"`
	SavingsRate float64         `json:"savings_rate"`
}

// CategoryBudgetResponse represents one category's spend-versus-budget line.
type CategoryBudgetResponse struct {
	Category   CategoryResponse `json:"category"`
	Spent      decimal.Decimal  `json:"spent"`
	Percentage float64          `json:"percentage"`
	Remaining  decimal.Decimal  `json:"remaining"`
}

// TrendPointResponse represents one month's bucket on a chart. Month is the
// "YYYY-MM" bucket key.
type TrendPointResponse struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// BreakdownSliceResponse represents one category's share of the month's
// expenses.
type BreakdownSliceResponse struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Color        string          `json:"color"`
	Icon         string          `json:"icon"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
}

// DashboardResponse is the complete derived view model for one month.
type DashboardResponse struct {
	Year         int                      `json:"year"`
	Month        int                      `json:"month"`
	Summary      SummaryResponse          `json:"summary"`
	Budgets      []CategoryBudgetResponse `json:"budgets"`
	MonthlyChart []TrendPointResponse     `json:"monthly_chart"`
	TrendLine    []TrendPointResponse     `json:"trend_line"`
	TopExpenses  []TransactionResponse    `json:"top_expenses"`
	Breakdown    []BreakdownSliceResponse `json:"breakdown"`
	Goals        []GoalResponse           `json:"goals"`
}

// ToDashboardResponse converts the ledger overview view model to its API
// representation.
func ToDashboardResponse(overview ledger.OverviewViewModel) DashboardResponse {
	budgets := make([]CategoryBudgetResponse, 0, len(overview.Budgets))
	for _, b := range overview.Budgets {
		budgets = append(budgets, CategoryBudgetResponse{
			Category:   ToCategoryResponse(b.Category),
			Spent:      b.Spent,
			Percentage: b.Percentage,
			Remaining:  b.Remaining,
		})
	}

	topExpenses := make([]TransactionResponse, 0, len(overview.TopExpenses))
	for _, pair := range overview.TopExpenses {
		topExpenses = append(topExpenses, ToTransactionWithCategoryResponse(pair))
	}

	breakdown := make([]BreakdownSliceResponse, 0, len(overview.Breakdown))
	for _, s := range overview.Breakdown {
		breakdown = append(breakdown, BreakdownSliceResponse{
			CategoryID:   s.CategoryID.String(),
			CategoryName: s.CategoryName,
			Color:        s.CategoryColor,
			Icon:         s.CategoryIcon,
			Amount:       s.Amount,
			Percentage:   s.Percentage,
		})
	}

	goals := make([]GoalResponse, 0, len(overview.Goals))
	for _, view := range overview.Goals {
		goals = append(goals, ToGoalResponse(view))
	}

	return DashboardResponse{
		Year:         overview.Year,
		Month:        int(overview.Month),
		Summary: SummaryResponse{
			Income:      overview.Summary.Income,
			Expenses:    overview.Summary.Expenses,
			Balance:     overview.Summary.Balance,
			SavingsRate: overview.Summary.SavingsRate,
		},
		Budgets:      budgets,
		MonthlyChart: toTrendPointResponses(overview.MonthlyChart),
		TrendLine:    toTrendPointResponses(overview.TrendLine),
		TopExpenses:  topExpenses,
		Breakdown:    breakdown,
		Goals:        goals,
	}
}

func toTrendPointResponses(points []aggregation.TrendPoint) []TrendPointResponse {
	out := make([]TrendPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, TrendPointResponse{
			Month:    fmt.Sprintf("%04d-%02d", p.Year, int(p.Month)),
			Income:   p.Income,
			Expenses: p.Expenses,
			Balance:  p.Balance,
		})
	}
	return out
}
