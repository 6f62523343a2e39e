package aggregation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// CategoryBudget is the spend-versus-budget line for one category in one
// calendar month.
type CategoryBudget struct {
	Category   *entity.Category
	Spent      decimal.Decimal
	Percentage float64         // min(spent/budget*100, 100), 0 when budget is 0
	Remaining  decimal.Decimal // budget - spent, may be negative
}

// BudgetOverview computes per-category spending against the monthly budget
// for the given calendar month. The reserved Income category is excluded.
// Categories are returned in their stored order.
func BudgetOverview(
	transactions []*entity.Transaction,
	categories []*entity.Category,
	year int,
	month time.Month,
) []CategoryBudget {
	spentByCategory := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != entity.TransactionTypeExpense || !inMonth(t, year, month) {
			continue
		}
		spentByCategory[t.CategoryID] = spentByCategory[t.CategoryID].Add(t.Amount)
	}

	overview := make([]CategoryBudget, 0, len(categories))
	for _, c := range categories {
		if c.IsReservedIncome() {
			continue
		}

		spent := spentByCategory[c.ID]

		var percentage float64
		if c.Budget.IsPositive() {
			percentage, _ = spent.
				Mul(decimal.NewFromInt(100)).
				Div(c.Budget).
				Round(1).
				Float64()
			if percentage > 100 {
				percentage = 100
			}
		}

		overview = append(overview, CategoryBudget{
			Category:   c,
			Spent:      spent,
			Percentage: percentage,
			Remaining:  c.Budget.Sub(spent),
		})
	}

	return overview
}
