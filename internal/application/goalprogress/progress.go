// Package goalprogress computes savings goal progress and schedule status.
//
// Everything in this package is a pure function over the current goal and
// transaction collections plus an explicit reference time. Status is
// recomputed fresh on every evaluation; no transitions are stored.
package goalprogress

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// daysPerMonth is the average Gregorian month length used to convert the
// days remaining until the target date into months.
const daysPerMonth = 30.44

// Status classifies a goal's schedule at one point in time.
type Status string

const (
	// StatusCompleted means saved has reached the target. Checked first; it
	// overrides every other state regardless of date or contribution.
	StatusCompleted Status = "completed"
	// StatusOverdue means the target date has passed with the goal unmet.
	StatusOverdue Status = "overdue"
	// StatusBehindSchedule means the configured monthly contribution is too
	// small to reach the target by the target date.
	StatusBehindSchedule Status = "behind_schedule"
	// StatusNeedsContribution means no monthly contribution is configured
	// while money is still missing.
	StatusNeedsContribution Status = "needs_contribution"
	// StatusOnTrack is the default healthy state.
	StatusOnTrack Status = "on_track"
)

// Saved sums the amounts of all transactions linked to the goal. It is the
// single source of truth for a goal's saved amount; the Goal.Saved field is
// only ever a cache of this value.
func Saved(transactions []*entity.Transaction, goalID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.GoalID != nil && *t.GoalID == goalID {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Report is the display-ready progress evaluation for one goal.
type Report struct {
	GoalID                uuid.UUID
	Saved                 decimal.Decimal
	Percentage            float64 // saved/target*100, uncapped
	DaysLeft              int
	RequiredMonthlySaving decimal.Decimal // zero when completed or overdue
	Status                Status
}

// Classify evaluates the goal's schedule status against the given reference
// time, using the goal's (already recomputed) Saved value.
func Classify(goal *entity.Goal, now time.Time) Report {
	daysLeft := int(math.Ceil(math.Max(0, goal.TargetDate.Sub(now).Hours()/24)))

	// Floor monthsLeft at one month so the required saving never blows up as
	// the target date approaches.
	monthsLeft := math.Max(float64(daysLeft)/daysPerMonth, 1)

	remaining := goal.TargetAmount.Sub(goal.Saved)

	percentage, _ := goal.Saved.
		Mul(decimal.NewFromInt(100)).
		Div(goal.TargetAmount).
		Round(1).
		Float64()

	report := Report{
		GoalID:                goal.ID,
		Saved:                 goal.Saved,
		Percentage:            percentage,
		DaysLeft:              daysLeft,
		RequiredMonthlySaving: decimal.Zero,
		Status:                StatusOnTrack,
	}

	switch {
	case goal.Saved.GreaterThanOrEqual(goal.TargetAmount):
		report.Status = StatusCompleted
		return report
	case daysLeft <= 0:
		report.Status = StatusOverdue
		return report
	}

	required := remaining.Div(decimal.NewFromFloat(monthsLeft))
	report.RequiredMonthlySaving = required

	switch {
	case goal.MonthlyContribution.IsPositive() && goal.MonthlyContribution.LessThan(required):
		report.Status = StatusBehindSchedule
	case goal.MonthlyContribution.IsZero() && remaining.IsPositive():
		report.Status = StatusNeedsContribution
	}

	return report
}
