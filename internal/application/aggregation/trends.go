package aggregation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// TrendPoint is one month's bucket in the month-over-month series.
type TrendPoint struct {
	Year     int
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// MonthlyTrends groups all transactions by calendar month, sorts the buckets
// ascending by (year, month) and returns the trailing n buckets. Fewer than
// n buckets is valid; months without transactions produce no bucket.
func MonthlyTrends(transactions []*entity.Transaction, n int) []TrendPoint {
	type bucketKey struct {
		year  int
		month time.Month
	}

	buckets := make(map[bucketKey]*TrendPoint)
	for _, t := range transactions {
		key := bucketKey{year: t.Date.Year(), month: t.Date.Month()}
		point, ok := buckets[key]
		if !ok {
			point = &TrendPoint{Year: key.year, Month: key.month}
			buckets[key] = point
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			point.Income = point.Income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			point.Expenses = point.Expenses.Add(t.Amount)
		}
	}

	series := make([]TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		point.Balance = point.Income.Sub(point.Expenses)
		series = append(series, *point)
	}

	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})

	if n > 0 && len(series) > n {
		series = series[len(series)-n:]
	}

	return series
}
