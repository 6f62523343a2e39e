package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.GoalModel{},
		&model.TransactionModel{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	user := entity.NewUser("ana@example.com", "Ana", "hash")
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *entity.Category {
	t.Helper()
	category := entity.NewCategory(
		userID, name, decimal.NewFromInt(500),
		entity.DefaultCategoryIcon, entity.DefaultCategoryColor,
	)
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), category))
	return category
}

func seedGoal(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *entity.Goal {
	t.Helper()
	goal := entity.NewGoal(
		userID, name, decimal.NewFromInt(2000), decimal.NewFromInt(200),
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, NewGoalRepository(db).Create(context.Background(), goal))
	return goal
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)

	t.Run("finds by id and email", func(t *testing.T) {
		byID, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, byID.Email)

		byEmail, err := repo.FindByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unknown id maps to domain error", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})
}

func TestTransactionRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)
	category := seedCategory(t, db, user.ID, "Groceries")
	goal := seedGoal(t, db, user.ID, "Vacation")

	create := func(t *testing.T, day time.Time, amount int64, goalID *uuid.UUID) *entity.Transaction {
		t.Helper()
		txn := entity.NewTransaction(
			user.ID, day, "Entry", decimal.NewFromInt(amount),
			entity.TransactionTypeIncome, category.ID, goalID,
		)
		require.NoError(t, repo.Create(ctx, txn))
		return txn
	}

	t.Run("create and find by user newest first", func(t *testing.T) {
		create(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 100, nil)
		create(t, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), 200, &goal.ID)

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, 20, found[0].Date.Day())
	})

	t.Run("update persists field changes", func(t *testing.T) {
		txn := create(t, time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), 50, nil)

		txn.Description = "Edited"
		txn.Amount = decimal.NewFromInt(75)
		require.NoError(t, repo.Update(ctx, txn))

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		for _, f := range found {
			if f.ID == txn.ID {
				assert.Equal(t, "Edited", f.Description)
				assert.True(t, f.Amount.Equal(decimal.NewFromInt(75)))
			}
		}
	})

	t.Run("update unknown transaction maps to domain error", func(t *testing.T) {
		ghost := entity.NewTransaction(
			user.ID, time.Now(), "Ghost", decimal.NewFromInt(1),
			entity.TransactionTypeExpense, category.ID, nil,
		)
		err := repo.Update(ctx, ghost)
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	})

	t.Run("clear goal links keeps the transactions", func(t *testing.T) {
		linked := create(t, time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), 300, &goal.ID)

		require.NoError(t, repo.ClearGoalLinks(ctx, user.ID, goal.ID))

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		for _, f := range found {
			assert.Nil(t, f.GoalID)
			if f.ID == linked.ID {
				assert.True(t, f.Amount.Equal(decimal.NewFromInt(300)))
			}
		}
	})

	t.Run("delete removes from listings", func(t *testing.T) {
		txn := create(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 10, nil)

		require.NoError(t, repo.Delete(ctx, txn.ID))

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		for _, f := range found {
			assert.NotEqual(t, txn.ID, f.ID)
		}

		assert.ErrorIs(t, repo.Delete(ctx, txn.ID), domainerror.ErrTransactionNotFound)
	})
}

func TestCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)

	t.Run("create and list in creation order", func(t *testing.T) {
		seedCategory(t, db, user.ID, "Groceries")
		seedCategory(t, db, user.ID, "Leisure")

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "Groceries", found[0].Name)
		assert.Equal(t, "Leisure", found[1].Name)
	})

	t.Run("update persists rename and budget", func(t *testing.T) {
		category := seedCategory(t, db, user.ID, "Transport")

		category.Name = "Commuting"
		category.Budget = decimal.NewFromInt(120)
		require.NoError(t, repo.Update(ctx, category))

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		for _, f := range found {
			if f.ID == category.ID {
				assert.Equal(t, "Commuting", f.Name)
				assert.True(t, f.Budget.Equal(decimal.NewFromInt(120)))
			}
		}
	})

	t.Run("delete removes from listings", func(t *testing.T) {
		category := seedCategory(t, db, user.ID, "Doomed")

		require.NoError(t, repo.Delete(ctx, category.ID))

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		for _, f := range found {
			assert.NotEqual(t, category.ID, f.ID)
		}
	})
}

func TestGoalRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	user := seedUser(t, db)

	t.Run("loaded goals start with zero saved", func(t *testing.T) {
		seedGoal(t, db, user.ID, "Vacation")

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.True(t, found[0].Saved.IsZero())
	})

	t.Run("update persists target changes", func(t *testing.T) {
		goal := seedGoal(t, db, user.ID, "Laptop")

		goal.TargetAmount = decimal.NewFromInt(3000)
		require.NoError(t, repo.Update(ctx, goal))

		found, err := repo.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		for _, f := range found {
			if f.ID == goal.ID {
				assert.True(t, f.TargetAmount.Equal(decimal.NewFromInt(3000)))
			}
		}
	})

	t.Run("delete unknown goal maps to domain error", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), domainerror.ErrGoalNotFound)
	})
}
