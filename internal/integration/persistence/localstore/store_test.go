package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)

	user := entity.NewUser("ana@example.com", "Ana", "hash")
	require.NoError(t, store.UserRepository().Create(ctx, user))

	category := entity.NewCategory(
		user.ID, "Groceries", decimal.NewFromInt(500),
		entity.DefaultCategoryIcon, entity.DefaultCategoryColor,
	)
	require.NoError(t, store.CategoryRepository().Create(ctx, category))

	goal := entity.NewGoal(
		user.ID, "Vacation", decimal.NewFromInt(2000), decimal.NewFromInt(200),
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, store.GoalRepository().Create(ctx, goal))

	transaction := entity.NewTransaction(
		user.ID, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		"Deposit", decimal.NewFromInt(300),
		entity.TransactionTypeIncome, category.ID, &goal.ID,
	)
	require.NoError(t, store.TransactionRepository().Create(ctx, transaction))

	// Reopen from disk and verify everything survived the encode/decode.
	reopened, err := Open(path)
	require.NoError(t, err)

	foundUser, err := reopened.UserRepository().FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, foundUser.ID)

	categories, err := reopened.CategoryRepository().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Groceries", categories[0].Name)
	assert.True(t, categories[0].Budget.Equal(decimal.NewFromInt(500)))

	goals, err := reopened.GoalRepository().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.True(t, goals[0].Saved.IsZero(), "saved is derived, not persisted")

	transactions, err := reopened.TransactionRepository().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.True(t, transactions[0].Amount.Equal(decimal.NewFromInt(300)))
	require.NotNil(t, transactions[0].GoalID)
	assert.Equal(t, goal.ID, *transactions[0].GoalID)
	assert.Equal(t, 2024, transactions[0].Date.Year())
}

func TestStoreClearGoalLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)

	user := entity.NewUser("ana@example.com", "Ana", "hash")
	require.NoError(t, store.UserRepository().Create(ctx, user))

	category := entity.NewCategory(
		user.ID, "Income", decimal.Zero,
		entity.DefaultCategoryIcon, entity.DefaultCategoryColor,
	)
	require.NoError(t, store.CategoryRepository().Create(ctx, category))

	goal := entity.NewGoal(
		user.ID, "Vacation", decimal.NewFromInt(2000), decimal.NewFromInt(200),
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, store.GoalRepository().Create(ctx, goal))

	transaction := entity.NewTransaction(
		user.ID, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		"Deposit", decimal.NewFromInt(300),
		entity.TransactionTypeIncome, category.ID, &goal.ID,
	)
	require.NoError(t, store.TransactionRepository().Create(ctx, transaction))

	require.NoError(t, store.TransactionRepository().ClearGoalLinks(ctx, user.ID, goal.ID))
	require.NoError(t, store.GoalRepository().Delete(ctx, goal.ID))

	reopened, err := Open(path)
	require.NoError(t, err)

	transactions, err := reopened.TransactionRepository().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1, "unlinking must not delete the transaction")
	assert.Nil(t, transactions[0].GoalID)

	goals, err := reopened.GoalRepository().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestStoreMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")

	store, err := Open(path)
	require.NoError(t, err)

	transactions, err := store.TransactionRepository().FindByUser(context.Background(), entity.NewUser("a@b.co", "A", "h").ID)
	require.NoError(t, err)
	assert.Empty(t, transactions)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "opening must not create the file")
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestStoreUpdateUnknownRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)

	user := entity.NewUser("ana@example.com", "Ana", "hash")

	ghostTxn := entity.NewTransaction(
		user.ID, time.Now(), "Ghost", decimal.NewFromInt(1),
		entity.TransactionTypeExpense, user.ID, nil,
	)
	assert.ErrorIs(t, store.TransactionRepository().Update(ctx, ghostTxn), domainerror.ErrTransactionNotFound)

	ghostCat := entity.NewCategory(user.ID, "Ghost", decimal.Zero, "", "")
	assert.ErrorIs(t, store.CategoryRepository().Update(ctx, ghostCat), domainerror.ErrCategoryNotFound)

	ghostGoal := entity.NewGoal(user.ID, "Ghost", decimal.NewFromInt(1), decimal.Zero, time.Now())
	assert.ErrorIs(t, store.GoalRepository().Update(ctx, ghostGoal), domainerror.ErrGoalNotFound)
}
