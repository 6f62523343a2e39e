package goalprogress

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-planner/backend/internal/domain/entity"
)

var (
	testUserID = uuid.New()
	testCatID  = uuid.New()
	now        = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
)

func goalWith(saved, target, contribution int64, targetDate time.Time) *entity.Goal {
	g := entity.NewGoal(
		testUserID, "Vacation",
		decimal.NewFromInt(target), decimal.NewFromInt(contribution), targetDate,
	)
	g.Saved = decimal.NewFromInt(saved)
	return g
}

func contribution(goalID uuid.UUID, amount int64) *entity.Transaction {
	return entity.NewTransaction(
		testUserID, now, "Deposit", decimal.NewFromInt(amount),
		entity.TransactionTypeIncome, testCatID, &goalID,
	)
}

func TestSaved(t *testing.T) {
	goalID := uuid.New()
	otherGoalID := uuid.New()

	transactions := []*entity.Transaction{
		contribution(goalID, 100),
		contribution(goalID, 250),
		contribution(otherGoalID, 999),
		entity.NewTransaction(
			testUserID, now, "Unlinked", decimal.NewFromInt(50),
			entity.TransactionTypeIncome, testCatID, nil,
		),
	}

	assert.True(t, Saved(transactions, goalID).Equal(decimal.NewFromInt(350)))
	assert.True(t, Saved(transactions, uuid.New()).IsZero())
}

func TestSavedMatchesSumUnderRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	goalID := uuid.New()

	transactions := make([]*entity.Transaction, 0)
	expected := decimal.Zero

	for i := 0; i < 200; i++ {
		if len(transactions) == 0 || rng.Intn(3) > 0 {
			amount := int64(rng.Intn(500) + 1)
			linked := rng.Intn(2) == 0
			var link *uuid.UUID
			if linked {
				link = &goalID
				expected = expected.Add(decimal.NewFromInt(amount))
			}
			transactions = append(transactions, entity.NewTransaction(
				testUserID, now, "Deposit", decimal.NewFromInt(amount),
				entity.TransactionTypeIncome, testCatID, link,
			))
		} else {
			index := rng.Intn(len(transactions))
			removed := transactions[index]
			if removed.GoalID != nil && *removed.GoalID == goalID {
				expected = expected.Sub(removed.Amount)
			}
			transactions = append(transactions[:index], transactions[index+1:]...)
		}

		require.True(t, Saved(transactions, goalID).Equal(expected),
			"saved diverged from the sum of linked amounts at step %d", i)
	}
}

func TestClassifyCompleted(t *testing.T) {
	// Completed wins even with the date passed and no contribution set.
	goal := goalWith(2000, 2000, 0, now.AddDate(0, -1, 0))

	report := Classify(goal, now)

	assert.Equal(t, StatusCompleted, report.Status)
	assert.InDelta(t, 100.0, report.Percentage, 0.001)
	assert.True(t, report.RequiredMonthlySaving.IsZero())
}

func TestClassifyCompletedOvershoot(t *testing.T) {
	goal := goalWith(2500, 2000, 100, now.AddDate(1, 0, 0))

	report := Classify(goal, now)

	assert.Equal(t, StatusCompleted, report.Status)
	assert.InDelta(t, 125.0, report.Percentage, 0.001, "percentage is uncapped")
}

func TestClassifyOverdue(t *testing.T) {
	goal := goalWith(500, 2000, 100, now.AddDate(0, 0, -10))

	report := Classify(goal, now)

	assert.Equal(t, StatusOverdue, report.Status)
	assert.Zero(t, report.DaysLeft)
	assert.True(t, report.RequiredMonthlySaving.IsZero())
}

func TestClassifyBehindSchedule(t *testing.T) {
	// 1000 remaining over ~5 months needs ~200/month; 100 is configured.
	targetDate := now.AddDate(0, 5, 0)
	goal := goalWith(1000, 2000, 100, targetDate)

	report := Classify(goal, now)

	assert.Equal(t, StatusBehindSchedule, report.Status)

	required, _ := report.RequiredMonthlySaving.Float64()
	assert.InDelta(t, 200.0, required, 5.0)
}

func TestClassifyNeedsContribution(t *testing.T) {
	goal := goalWith(500, 2000, 0, now.AddDate(0, 6, 0))

	report := Classify(goal, now)

	assert.Equal(t, StatusNeedsContribution, report.Status)
	assert.True(t, report.RequiredMonthlySaving.IsPositive())
}

func TestClassifyOnTrack(t *testing.T) {
	goal := goalWith(1000, 2000, 300, now.AddDate(0, 5, 0))

	report := Classify(goal, now)

	assert.Equal(t, StatusOnTrack, report.Status)
}

func TestClassifyDaysLeftRoundsUp(t *testing.T) {
	// Half a day remaining still counts as one day left.
	goal := goalWith(100, 2000, 300, now.Add(12*time.Hour))

	report := Classify(goal, now)

	assert.Equal(t, 1, report.DaysLeft)
	assert.NotEqual(t, StatusOverdue, report.Status)
}

func TestClassifyMonthsLeftFloor(t *testing.T) {
	// Three days out: monthsLeft floors at 1, so the required saving equals
	// the full remaining amount instead of blowing up.
	goal := goalWith(1900, 2000, 50, now.AddDate(0, 0, 3))

	report := Classify(goal, now)

	required, _ := report.RequiredMonthlySaving.Float64()
	assert.InDelta(t, 100.0, required, 0.001)
	assert.Equal(t, StatusBehindSchedule, report.Status)
}
