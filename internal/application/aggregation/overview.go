package aggregation

import (
	"time"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/domain/entity"
)

const (
	// MonthlyChartBuckets is the number of trailing months on the bar chart.
	MonthlyChartBuckets = 6
	// TrendLineBuckets is the number of trailing months on the trend line.
	TrendLineBuckets = 12
	// TopExpenseCount is the number of entries on the top-expenses list.
	TopExpenseCount = 5
)

// Overview is the full derived view model for the current month. The
// presentation layer renders it as-is after any mutation or view switch and
// never recomputes any of it.
type Overview struct {
	Year         int
	Month        time.Month
	Summary      MonthlySummary
	Budgets      []CategoryBudget
	MonthlyChart []TrendPoint
	TrendLine    []TrendPoint
	TopExpenses  []*entity.TransactionWithCategory
	Breakdown    []BreakdownSlice
}

// BuildOverview recomputes every derived value for the calendar month
// containing now.
func BuildOverview(
	transactions []*entity.Transaction,
	categories []*entity.Category,
	now time.Time,
) Overview {
	year, month := now.Year(), now.Month()

	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	top := TopExpenses(transactions, year, month, TopExpenseCount)
	topWithCategories := make([]*entity.TransactionWithCategory, 0, len(top))
	for _, t := range top {
		topWithCategories = append(topWithCategories, &entity.TransactionWithCategory{
			Transaction: t,
			Category:    byID[t.CategoryID],
		})
	}

	return Overview{
		Year:         year,
		Month:        month,
		Summary:      Summarize(transactions, year, month),
		Budgets:      BudgetOverview(transactions, categories, year, month),
		MonthlyChart: MonthlyTrends(transactions, MonthlyChartBuckets),
		TrendLine:    MonthlyTrends(transactions, TrendLineBuckets),
		TopExpenses:  topWithCategories,
		Breakdown:    CategoryBreakdown(transactions, categories, year, month),
	}
}
