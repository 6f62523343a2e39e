package aggregation

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// UnknownCategoryName labels breakdown slices whose category can no longer
// be resolved.
const UnknownCategoryName = "Unknown"

// BreakdownSlice is one category's share of the month's expenses.
type BreakdownSlice struct {
	CategoryID    uuid.UUID
	CategoryName  string
	CategoryColor string
	CategoryIcon  string
	Amount        decimal.Decimal
	Percentage    float64 // amount/totalExpenses*100, 0 when total is 0
}

// CategoryBreakdown computes the expense distribution across categories for
// the given calendar month, sorted descending by amount. Category labels are
// resolved by live lookup. The result is empty when the month has no
// expenses.
func CategoryBreakdown(
	transactions []*entity.Transaction,
	categories []*entity.Category,
	year int,
	month time.Month,
) []BreakdownSlice {
	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	amounts := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0)
	total := decimal.Zero

	for _, t := range transactions {
		if t.Type != entity.TransactionTypeExpense || !inMonth(t, year, month) {
			continue
		}
		if cat, ok := byID[t.CategoryID]; ok && cat.IsReservedIncome() {
			continue
		}
		if _, seen := amounts[t.CategoryID]; !seen {
			order = append(order, t.CategoryID)
		}
		amounts[t.CategoryID] = amounts[t.CategoryID].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	slices := make([]BreakdownSlice, 0, len(order))
	for _, id := range order {
		slice := BreakdownSlice{
			CategoryID:    id,
			CategoryName:  UnknownCategoryName,
			CategoryColor: entity.DefaultCategoryColor,
			CategoryIcon:  entity.DefaultCategoryIcon,
			Amount:        amounts[id],
		}

		if cat, ok := byID[id]; ok {
			slice.CategoryName = cat.Name
			slice.CategoryColor = cat.Color
			slice.CategoryIcon = cat.Icon
		}

		if total.IsPositive() {
			slice.Percentage, _ = slice.Amount.
				Mul(decimal.NewFromInt(100)).
				Div(total).
				Round(2).
				Float64()
		}

		slices = append(slices, slice)
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount.GreaterThan(slices[j].Amount)
	})

	return slices
}
