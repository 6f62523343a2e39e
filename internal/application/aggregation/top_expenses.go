package aggregation

import (
	"sort"
	"time"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// TopExpenses returns the n largest expense transactions of the given
// calendar month, sorted descending by amount. Equal amounts keep their
// original insertion order; no secondary sort key is applied.
func TopExpenses(transactions []*entity.Transaction, year int, month time.Month, n int) []*entity.Transaction {
	expenses := make([]*entity.Transaction, 0)
	for _, t := range transactions {
		if t.Type == entity.TransactionTypeExpense && inMonth(t, year, month) {
			expenses = append(expenses, t)
		}
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.GreaterThan(expenses[j].Amount)
	})

	if n > 0 && len(expenses) > n {
		expenses = expenses[:n]
	}

	return expenses
}
