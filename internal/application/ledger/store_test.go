package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
)

// fakeTransactionRepo is an in-memory TransactionRepository with per-method
// error injection.
type fakeTransactionRepo struct {
	transactions []*entity.Transaction

	createErr     error
	findErr       error
	updateErr     error
	deleteErr     error
	clearLinksErr error

	clearLinksCalls int
}

func (r *fakeTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *t
	r.transactions = append(r.transactions, &copied)
	return nil
}

func (r *fakeTransactionRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]*entity.Transaction, 0)
	for _, t := range r.transactions {
		if t.UserID == userID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.transactions {
		if existing.ID == t.ID {
			copied := *t
			r.transactions[i] = &copied
			return nil
		}
	}
	return errors.New("transaction not found")
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, t := range r.transactions {
		if t.ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return errors.New("transaction not found")
}

func (r *fakeTransactionRepo) ClearGoalLinks(_ context.Context, userID, goalID uuid.UUID) error {
	r.clearLinksCalls++
	if r.clearLinksErr != nil {
		return r.clearLinksErr
	}
	for _, t := range r.transactions {
		if t.UserID == userID && t.GoalID != nil && *t.GoalID == goalID {
			t.GoalID = nil
		}
	}
	return nil
}

type fakeCategoryRepo struct {
	categories []*entity.Category

	createErr error
	findErr   error
	updateErr error
	deleteErr error
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *c
	r.categories = append(r.categories, &copied)
	return nil
}

func (r *fakeCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]*entity.Category, 0)
	for _, c := range r.categories {
		if c.UserID == userID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.categories {
		if existing.ID == c.ID {
			copied := *c
			r.categories[i] = &copied
			return nil
		}
	}
	return errors.New("category not found")
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return errors.New("category not found")
}

type fakeGoalRepo struct {
	goals []*entity.Goal

	createErr error
	findErr   error
	updateErr error
	deleteErr error
}

func (r *fakeGoalRepo) Create(_ context.Context, g *entity.Goal) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *g
	r.goals = append(r.goals, &copied)
	return nil
}

func (r *fakeGoalRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]*entity.Goal, 0)
	for _, g := range r.goals {
		if g.UserID == userID {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, g *entity.Goal) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, existing := range r.goals {
		if existing.ID == g.ID {
			copied := *g
			r.goals[i] = &copied
			return nil
		}
	}
	return errors.New("goal not found")
}

func (r *fakeGoalRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, g := range r.goals {
		if g.ID == id {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return errors.New("goal not found")
}

type fakeUserRepo struct {
	user    *entity.User
	findErr error
}

func (r *fakeUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.user != nil && r.user.Email == email, nil
}

type storeFixture struct {
	store           *Store
	userID          uuid.UUID
	transactionRepo *fakeTransactionRepo
	categoryRepo    *fakeCategoryRepo
	goalRepo        *fakeGoalRepo
	userRepo        *fakeUserRepo
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()

	userID := uuid.New()
	f := &storeFixture{
		userID:          userID,
		transactionRepo: &fakeTransactionRepo{},
		categoryRepo:    &fakeCategoryRepo{},
		goalRepo:        &fakeGoalRepo{},
		userRepo: &fakeUserRepo{
			user: entity.NewUser("ana@example.com", "Ana", "hash"),
		},
	}
	f.userRepo.user.ID = userID

	f.store = NewStore(userID, f.transactionRepo, f.categoryRepo, f.goalRepo, f.userRepo)
	return f
}

func (f *storeFixture) seedCategory(t *testing.T, name string, budget decimal.Decimal) *entity.Category {
	t.Helper()
	c := entity.NewCategory(f.userID, name, budget, entity.DefaultCategoryIcon, entity.DefaultCategoryColor)
	f.categoryRepo.categories = append(f.categoryRepo.categories, c)
	return c
}

func (f *storeFixture) seedGoal(t *testing.T, name string, target decimal.Decimal) *entity.Goal {
	t.Helper()
	g := entity.NewGoal(f.userID, name, target, decimal.NewFromInt(200), time.Now().AddDate(1, 0, 0))
	f.goalRepo.goals = append(f.goalRepo.goals, g)
	return g
}

func (f *storeFixture) load(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.Load(context.Background()))
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestStoreLoad(t *testing.T) {
	t.Run("loads all collections and recomputes goal progress", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Income", decimal.Zero)
		goal := f.seedGoal(t, "Vacation", decimal.NewFromInt(2000))

		contribution := entity.NewTransaction(
			f.userID, date(2024, time.March, 10), "Savings deposit",
			decimal.NewFromInt(300), entity.TransactionTypeIncome, cat.ID, &goal.ID,
		)
		f.transactionRepo.transactions = append(f.transactionRepo.transactions, contribution)

		f.load(t)

		assert.True(t, f.store.Loaded())
		require.Len(t, f.store.Goals(), 1)
		assert.True(t, f.store.Goals()[0].Saved.Equal(decimal.NewFromInt(300)))
		require.NotNil(t, f.store.User())
		assert.Equal(t, "ana@example.com", f.store.User().Email)
	})

	t.Run("aborts on any fetch failure and stays unloaded", func(t *testing.T) {
		f := newStoreFixture(t)
		f.goalRepo.findErr = errors.New("connection refused")

		err := f.store.Load(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load goals")
		assert.False(t, f.store.Loaded())
		assert.Empty(t, f.store.Transactions())
	})
}

func TestStoreAddTransaction(t *testing.T) {
	t.Run("persists then appends and updates goal progress", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Income", decimal.Zero)
		goal := f.seedGoal(t, "Emergency fund", decimal.NewFromInt(5000))
		f.load(t)

		created, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Paycheck savings",
			Amount:      decimal.NewFromInt(400),
			Type:        entity.TransactionTypeIncome,
			CategoryID:  cat.ID,
			GoalID:      &goal.ID,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Len(t, f.transactionRepo.transactions, 1)
		assert.Len(t, f.store.Transactions(), 1)
		assert.True(t, f.store.Goals()[0].Saved.Equal(decimal.NewFromInt(400)))
	})

	t.Run("rejects goal-linked expense and leaves the ledger unchanged", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		goal := f.seedGoal(t, "Vacation", decimal.NewFromInt(2000))
		f.load(t)

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Weekly shop",
			Amount:      decimal.NewFromInt(80),
			Type:        entity.TransactionTypeExpense,
			CategoryID:  cat.ID,
			GoalID:      &goal.ID,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerror.ErrGoalLinkedExpense)
		assert.Empty(t, f.transactionRepo.transactions)
		assert.Empty(t, f.store.Transactions())
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		f.load(t)

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Weekly shop",
			Amount:      decimal.NewFromInt(80),
			Type:        entity.TransactionTypeExpense,
			CategoryID:  uuid.New(),
		})

		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFoundForTransaction)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		f.load(t)

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Weekly shop",
			Amount:      decimal.Zero,
			Type:        entity.TransactionTypeExpense,
			CategoryID:  cat.ID,
		})

		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionAmount)
	})

	t.Run("repository failure leaves the session untouched", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		f.load(t)
		f.transactionRepo.createErr = errors.New("write timeout")

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Weekly shop",
			Amount:      decimal.NewFromInt(80),
			Type:        entity.TransactionTypeExpense,
			CategoryID:  cat.ID,
		})

		require.Error(t, err)
		assert.Empty(t, f.store.Transactions())
	})
}

func TestStoreUpdateTransaction(t *testing.T) {
	t.Run("moves goal progress when the link changes", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Income", decimal.Zero)
		goalA := f.seedGoal(t, "Vacation", decimal.NewFromInt(2000))
		goalB := f.seedGoal(t, "Laptop", decimal.NewFromInt(1500))
		f.load(t)

		created, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Deposit",
			Amount:      decimal.NewFromInt(250),
			Type:        entity.TransactionTypeIncome,
			CategoryID:  cat.ID,
			GoalID:      &goalA.ID,
		})
		require.NoError(t, err)

		_, err = f.store.UpdateTransaction(context.Background(), created.ID, TransactionInput{
			Date:        created.Date,
			Description: created.Description,
			Amount:      created.Amount,
			Type:        created.Type,
			CategoryID:  created.CategoryID,
			GoalID:      &goalB.ID,
		})
		require.NoError(t, err)

		goals := f.store.Goals()
		require.Len(t, goals, 2)
		for _, g := range goals {
			switch g.ID {
			case goalA.ID:
				assert.True(t, g.Saved.IsZero(), "previous goal keeps stale progress")
			case goalB.ID:
				assert.True(t, g.Saved.Equal(decimal.NewFromInt(250)))
			}
		}
	})

	t.Run("unknown transaction", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		f.load(t)

		_, err := f.store.UpdateTransaction(context.Background(), uuid.New(), TransactionInput{})

		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	})
}

func TestStoreDeleteTransaction(t *testing.T) {
	f := newStoreFixture(t)
	cat := f.seedCategory(t, "Income", decimal.Zero)
	goal := f.seedGoal(t, "Vacation", decimal.NewFromInt(2000))
	f.load(t)

	created, err := f.store.AddTransaction(context.Background(), TransactionInput{
		Date:        date(2024, time.March, 5),
		Description: "Deposit",
		Amount:      decimal.NewFromInt(150),
		Type:        entity.TransactionTypeIncome,
		CategoryID:  cat.ID,
		GoalID:      &goal.ID,
	})
	require.NoError(t, err)
	require.True(t, f.store.Goals()[0].Saved.Equal(decimal.NewFromInt(150)))

	require.NoError(t, f.store.DeleteTransaction(context.Background(), created.ID))

	assert.Empty(t, f.store.Transactions())
	assert.True(t, f.store.Goals()[0].Saved.IsZero())
	assert.Empty(t, f.transactionRepo.transactions)
}

func TestStoreCategories(t *testing.T) {
	t.Run("add applies defaults for icon and color", func(t *testing.T) {
		f := newStoreFixture(t)
		f.load(t)

		created, err := f.store.AddCategory(context.Background(), CategoryInput{
			Name:   "Groceries",
			Budget: decimal.NewFromInt(500),
		})

		require.NoError(t, err)
		assert.Equal(t, entity.DefaultCategoryIcon, created.Icon)
		assert.Equal(t, entity.DefaultCategoryColor, created.Color)
	})

	t.Run("rejects duplicate name ignoring case", func(t *testing.T) {
		f := newStoreFixture(t)
		f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		f.load(t)

		_, err := f.store.AddCategory(context.Background(), CategoryInput{
			Name:   "groceries",
			Budget: decimal.NewFromInt(300),
		})

		assert.ErrorIs(t, err, domainerror.ErrCategoryNameExists)
	})

	t.Run("delete fails while transactions reference the category", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		f.load(t)

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Weekly shop",
			Amount:      decimal.NewFromInt(80),
			Type:        entity.TransactionTypeExpense,
			CategoryID:  cat.ID,
		})
		require.NoError(t, err)

		err = f.store.DeleteCategory(context.Background(), cat.ID)

		assert.ErrorIs(t, err, domainerror.ErrCategoryInUse)
		assert.Len(t, f.store.Categories(), 1)
		assert.Len(t, f.categoryRepo.categories, 1)
	})

	t.Run("delete succeeds once the category is unreferenced", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		f.load(t)

		require.NoError(t, f.store.DeleteCategory(context.Background(), cat.ID))

		assert.Empty(t, f.store.Categories())
		assert.Empty(t, f.categoryRepo.categories)
	})

	t.Run("the reserved Income category cannot be deleted", func(t *testing.T) {
		f := newStoreFixture(t)
		income := f.seedCategory(t, entity.ReservedIncomeCategoryName, decimal.Zero)
		f.load(t)

		err := f.store.DeleteCategory(context.Background(), income.ID)

		assert.ErrorIs(t, err, domainerror.ErrReservedCategory)
		assert.Len(t, f.store.Categories(), 1)
	})

	t.Run("the reserved Income category cannot be renamed", func(t *testing.T) {
		f := newStoreFixture(t)
		income := f.seedCategory(t, entity.ReservedIncomeCategoryName, decimal.Zero)
		f.load(t)

		_, err := f.store.UpdateCategory(context.Background(), income.ID, CategoryInput{
			Name:   "Salary",
			Budget: decimal.Zero,
		})

		assert.ErrorIs(t, err, domainerror.ErrReservedCategory)
	})

	t.Run("rename is visible through live label lookup", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
		f.load(t)

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Weekly shop",
			Amount:      decimal.NewFromInt(80),
			Type:        entity.TransactionTypeExpense,
			CategoryID:  cat.ID,
		})
		require.NoError(t, err)

		_, err = f.store.UpdateCategory(context.Background(), cat.ID, CategoryInput{
			Name:   "Food",
			Budget: decimal.NewFromInt(500),
		})
		require.NoError(t, err)

		listed := f.store.TransactionsWithCategories()
		require.Len(t, listed, 1)
		require.NotNil(t, listed[0].Category)
		assert.Equal(t, "Food", listed[0].Category.Name)
	})
}

func TestStoreGoals(t *testing.T) {
	t.Run("delete clears links and keeps the transactions", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Income", decimal.Zero)
		goal := f.seedGoal(t, "Vacation", decimal.NewFromInt(2000))
		f.load(t)

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Deposit",
			Amount:      decimal.NewFromInt(250),
			Type:        entity.TransactionTypeIncome,
			CategoryID:  cat.ID,
			GoalID:      &goal.ID,
		})
		require.NoError(t, err)

		require.NoError(t, f.store.DeleteGoal(context.Background(), goal.ID))

		assert.Empty(t, f.store.Goals())
		assert.Equal(t, 1, f.transactionRepo.clearLinksCalls)

		remaining := f.store.Transactions()
		require.Len(t, remaining, 1)
		assert.Nil(t, remaining[0].GoalID)
	})

	t.Run("delete aborts locally when unlinking fails remotely", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Income", decimal.Zero)
		goal := f.seedGoal(t, "Vacation", decimal.NewFromInt(2000))
		f.load(t)

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Deposit",
			Amount:      decimal.NewFromInt(250),
			Type:        entity.TransactionTypeIncome,
			CategoryID:  cat.ID,
			GoalID:      &goal.ID,
		})
		require.NoError(t, err)
		f.transactionRepo.clearLinksErr = errors.New("write timeout")

		err = f.store.DeleteGoal(context.Background(), goal.ID)

		require.Error(t, err)
		assert.Len(t, f.store.Goals(), 1)
		remaining := f.store.Transactions()
		require.Len(t, remaining, 1)
		assert.NotNil(t, remaining[0].GoalID)
	})

	t.Run("update recomputes saved from transactions, never from input", func(t *testing.T) {
		f := newStoreFixture(t)
		cat := f.seedCategory(t, "Income", decimal.Zero)
		goal := f.seedGoal(t, "Vacation", decimal.NewFromInt(2000))
		f.load(t)

		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        date(2024, time.March, 5),
			Description: "Deposit",
			Amount:      decimal.NewFromInt(250),
			Type:        entity.TransactionTypeIncome,
			CategoryID:  cat.ID,
			GoalID:      &goal.ID,
		})
		require.NoError(t, err)

		updated, err := f.store.UpdateGoal(context.Background(), goal.ID, GoalInput{
			Name:                "Big vacation",
			TargetAmount:        decimal.NewFromInt(3000),
			MonthlyContribution: decimal.NewFromInt(300),
			TargetDate:          time.Now().AddDate(2, 0, 0),
		})
		require.NoError(t, err)

		assert.Equal(t, "Big vacation", updated.Name)
		assert.True(t, updated.Saved.Equal(decimal.NewFromInt(250)))
	})

	t.Run("rejects non-positive target amount", func(t *testing.T) {
		f := newStoreFixture(t)
		f.load(t)

		_, err := f.store.AddGoal(context.Background(), GoalInput{
			Name:                "Vacation",
			TargetAmount:        decimal.Zero,
			MonthlyContribution: decimal.NewFromInt(100),
			TargetDate:          time.Now().AddDate(1, 0, 0),
		})

		assert.ErrorIs(t, err, domainerror.ErrInvalidTargetAmount)
	})
}

func TestStoreTransactionsWithCategoriesOrder(t *testing.T) {
	f := newStoreFixture(t)
	cat := f.seedCategory(t, "Groceries", decimal.NewFromInt(500))
	f.load(t)

	for _, d := range []time.Time{
		date(2024, time.March, 3),
		date(2024, time.March, 20),
		date(2024, time.March, 11),
	} {
		_, err := f.store.AddTransaction(context.Background(), TransactionInput{
			Date:        d,
			Description: "Shop",
			Amount:      decimal.NewFromInt(10),
			Type:        entity.TransactionTypeExpense,
			CategoryID:  cat.ID,
		})
		require.NoError(t, err)
	}

	listed := f.store.TransactionsWithCategories()
	require.Len(t, listed, 3)
	assert.Equal(t, 20, listed[0].Transaction.Date.Day())
	assert.Equal(t, 11, listed[1].Transaction.Date.Day())
	assert.Equal(t, 3, listed[2].Transaction.Date.Day())
}

func TestManagerSessionLifecycle(t *testing.T) {
	f := newStoreFixture(t)
	f.seedCategory(t, "Groceries", decimal.NewFromInt(500))

	manager := NewManager(f.transactionRepo, f.categoryRepo, f.goalRepo, f.userRepo)

	first, err := manager.Session(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, first.Loaded())

	second, err := manager.Session(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Same(t, first, second)

	manager.Evict(f.userID)

	third, err := manager.Session(context.Background(), f.userID)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestManagerSessionLoadFailureNotCached(t *testing.T) {
	f := newStoreFixture(t)
	f.transactionRepo.findErr = errors.New("connection refused")

	manager := NewManager(f.transactionRepo, f.categoryRepo, f.goalRepo, f.userRepo)

	_, err := manager.Session(context.Background(), f.userID)
	require.Error(t, err)

	f.transactionRepo.findErr = nil
	store, err := manager.Session(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, store.Loaded())
}
