// Package aggregation derives display-ready summaries from the ledger
// collections. Every function here is pure: it operates on the transaction
// and category slices it is handed plus an explicit month reference, and it
// never touches the store. Divide-by-zero conditions (zero income, zero
// budget, zero total expenses) always resolve to 0, never NaN.
package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// MonthlySummary holds the income/expense totals for one calendar month.
type MonthlySummary struct {
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Balance     decimal.Decimal
	SavingsRate float64 // balance/income*100, 0 when income is 0
}

// Summarize computes the monthly summary for the given calendar month.
func Summarize(transactions []*entity.Transaction, year int, month time.Month) MonthlySummary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, t := range transactions {
		if !inMonth(t, year, month) {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}

	balance := income.Sub(expenses)

	var savingsRate float64
	if income.IsPositive() {
		savingsRate, _ = balance.
			Mul(decimal.NewFromInt(100)).
			Div(income).
			Round(1).
			Float64()
	}

	return MonthlySummary{
		Income:      income,
		Expenses:    expenses,
		Balance:     balance,
		SavingsRate: savingsRate,
	}
}

// inMonth reports whether the transaction falls in the given calendar month.
func inMonth(t *entity.Transaction, year int, month time.Month) bool {
	return t.Date.Year() == year && t.Date.Month() == month
}
