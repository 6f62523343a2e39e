// Package ledger owns the in-memory ledger of one authenticated session: the
// transaction, category and goal collections plus the session user. All
// mutations go through the Store, which enforces the consistency rules and
// keeps derived goal progress fresh.
//
// Writes are two-phase: the backing repository call must succeed before the
// in-memory state is touched, so a failed remote operation leaves the session
// exactly as it was. Optimistic local mutation is deliberately not the
// contract here.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/application/aggregation"
	"github.com/budget-planner/backend/internal/application/goalprogress"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
)

// Store holds the ledger collections of one user session.
type Store struct {
	mu sync.Mutex

	userID       uuid.UUID
	user         *entity.User
	transactions []*entity.Transaction
	categories   []*entity.Category
	goals        []*entity.Goal
	loaded       bool

	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	goalRepo        adapter.GoalRepository
	userRepo        adapter.UserRepository
}

// NewStore creates an empty, unloaded Store for the given user.
func NewStore(
	userID uuid.UUID,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
) *Store {
	return &Store{
		userID:          userID,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		goalRepo:        goalRepo,
		userRepo:        userRepo,
	}
}

// Load fetches all collections and the user profile in one concurrent batch.
// If any fetch fails the whole batch is aborted and the store stays empty:
// partial state is never exposed as if it were complete. Goal saved amounts
// are recomputed from the loaded transactions.
func (s *Store) Load(ctx context.Context) error {
	var (
		transactions []*entity.Transaction
		categories   []*entity.Category
		goals        []*entity.Goal
		user         *entity.User
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.FindByUser(gctx, s.userID)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.FindByUser(gctx, s.userID)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.FindByUser(gctx, s.userID)
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		user, err = s.userRepo.FindByID(gctx, s.userID)
		if err != nil {
			return fmt.Errorf("failed to load user profile: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = transactions
	s.categories = categories
	s.goals = goals
	s.user = user
	s.recalcAllGoals()
	s.loaded = true

	return nil
}

// Loaded reports whether the session collections have been loaded.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// UserID returns the session's user ID.
func (s *Store) UserID() uuid.UUID {
	return s.userID
}

// User returns the session's user profile.
func (s *Store) User() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// TransactionInput carries the fields for creating or fully updating a
// transaction.
type TransactionInput struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  uuid.UUID
	GoalID      *uuid.UUID
}

// AddTransaction validates the input, persists the new transaction and
// appends it to the session. Goal progress is recomputed when the new
// transaction carries a goal link.
func (s *Store) AddTransaction(ctx context.Context, input TransactionInput) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateTransactionInput(input); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		s.userID,
		input.Date,
		strings.TrimSpace(input.Description),
		input.Amount,
		input.Type,
		input.CategoryID,
		input.GoalID,
	)

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.transactions = append(s.transactions, transaction)
	if transaction.GoalID != nil {
		s.recalcGoalSaved(*transaction.GoalID)
	}

	return transaction, nil
}

// UpdateTransaction validates the input, persists the change and replaces
// the in-memory transaction. Goal progress is recomputed for both the
// previous and the new goal linkage.
func (s *Store) UpdateTransaction(ctx context.Context, id uuid.UUID, input TransactionInput) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.transactionIndex(id)
	if index < 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	if err := s.validateTransactionInput(input); err != nil {
		return nil, err
	}

	existing := s.transactions[index]
	previousGoalID := existing.GoalID

	updated := *existing
	updated.Date = input.Date
	updated.Description = strings.TrimSpace(input.Description)
	updated.Amount = input.Amount
	updated.Type = input.Type
	updated.CategoryID = input.CategoryID
	updated.GoalID = input.GoalID
	updated.UpdatedAt = time.Now().UTC()

	if err := s.transactionRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.transactions[index] = &updated
	if previousGoalID != nil {
		s.recalcGoalSaved(*previousGoalID)
	}
	if updated.GoalID != nil {
		s.recalcGoalSaved(*updated.GoalID)
	}

	return &updated, nil
}

// DeleteTransaction persists the deletion and removes the transaction from
// the session, recomputing progress for a linked goal.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.transactionIndex(id)
	if index < 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	goalID := s.transactions[index].GoalID

	if err := s.transactionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.transactions = append(s.transactions[:index], s.transactions[index+1:]...)
	if goalID != nil {
		s.recalcGoalSaved(*goalID)
	}

	return nil
}

// CategoryInput carries the fields for creating or updating a category.
type CategoryInput struct {
	Name   string
	Budget decimal.Decimal
	Icon   string
	Color  string
}

// AddCategory validates the input, persists the new category and appends it
// to the session. Icon and color fall back to defaults when empty.
func (s *Store) AddCategory(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if err := s.validateCategoryInput(name, input.Budget, uuid.Nil); err != nil {
		return nil, err
	}

	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}

	category := entity.NewCategory(s.userID, name, input.Budget, icon, color)

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.categories = append(s.categories, category)
	return category, nil
}

// UpdateCategory validates the input, persists the change and replaces the
// in-memory category. The reserved Income category cannot be renamed.
// Because transaction labels are resolved by live lookup, renaming a
// category immediately updates historic transactions as well.
func (s *Store) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*entity.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.categoryIndex(id)
	if index < 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	existing := s.categories[index]
	name := strings.TrimSpace(input.Name)

	if existing.IsReservedIncome() && name != entity.ReservedIncomeCategoryName {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeReservedCategory,
			"the Income category cannot be renamed",
			domainerror.ErrReservedCategory,
		)
	}

	if err := s.validateCategoryInput(name, input.Budget, id); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = name
	updated.Budget = input.Budget
	if input.Icon != "" {
		updated.Icon = input.Icon
	}
	if input.Color != "" {
		updated.Color = input.Color
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.categories[index] = &updated
	return &updated, nil
}

// DeleteCategory removes a category. Deletion is strict: it fails while any
// transaction still references the category, and the reserved Income
// category can never be deleted. Transactions are never cascaded away.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.categoryIndex(id)
	if index < 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if s.categories[index].IsReservedIncome() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeReservedCategory,
			"the Income category cannot be deleted",
			domainerror.ErrReservedCategory,
		)
	}

	for _, t := range s.transactions {
		if t.CategoryID == id {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryInUse,
				"category is referenced by transactions",
				domainerror.ErrCategoryInUse,
			)
		}
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.categories = append(s.categories[:index], s.categories[index+1:]...)
	return nil
}

// GoalInput carries the fields for creating or updating a goal.
type GoalInput struct {
	Name                string
	TargetAmount        decimal.Decimal
	MonthlyContribution decimal.Decimal
	TargetDate          time.Time
}

// AddGoal validates the input, persists the new goal and appends it to the
// session with zero saved progress.
func (s *Store) AddGoal(ctx context.Context, input GoalInput) (*entity.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(input.Name)
	if err := validateGoalInput(name, input); err != nil {
		return nil, err
	}

	goal := entity.NewGoal(s.userID, name, input.TargetAmount, input.MonthlyContribution, input.TargetDate)

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.goals = append(s.goals, goal)
	return goal, nil
}

// UpdateGoal validates the input, persists the change and replaces the
// in-memory goal. Saved is recomputed from the linked transactions; it is
// never taken from the input.
func (s *Store) UpdateGoal(ctx context.Context, id uuid.UUID, input GoalInput) (*entity.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.goalIndex(id)
	if index < 0 {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			domainerror.ErrGoalNotFound,
		)
	}

	name := strings.TrimSpace(input.Name)
	if err := validateGoalInput(name, input); err != nil {
		return nil, err
	}

	updated := *s.goals[index]
	updated.Name = name
	updated.TargetAmount = input.TargetAmount
	updated.MonthlyContribution = input.MonthlyContribution
	updated.TargetDate = input.TargetDate
	updated.UpdatedAt = time.Now().UTC()

	if err := s.goalRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.goals[index] = &updated
	s.recalcGoalSaved(id)

	return s.goals[index], nil
}

// DeleteGoal clears the goal link on every referencing transaction, then
// removes the goal. The transactions themselves are kept. Both remote writes
// must succeed before any local state changes.
func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.goalIndex(id)
	if index < 0 {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			domainerror.ErrGoalNotFound,
		)
	}

	if err := s.transactionRepo.ClearGoalLinks(ctx, s.userID, id); err != nil {
		return fmt.Errorf("failed to unlink goal transactions: %w", err)
	}
	if err := s.goalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	for _, t := range s.transactions {
		if t.GoalID != nil && *t.GoalID == id {
			t.GoalID = nil
		}
	}
	s.goals = append(s.goals[:index], s.goals[index+1:]...)

	return nil
}

// Transactions returns a copy of the transaction collection.
func (s *Store) Transactions() []*entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// TransactionsWithCategories returns all transactions with their categories
// resolved by live lookup, newest first.
func (s *Store) TransactionsWithCategories() []*entity.TransactionWithCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[uuid.UUID]*entity.Category, len(s.categories))
	for _, c := range s.categories {
		byID[c.ID] = c
	}

	out := make([]*entity.TransactionWithCategory, 0, len(s.transactions))
	for _, t := range s.transactions {
		out = append(out, &entity.TransactionWithCategory{
			Transaction: t,
			Category:    byID[t.CategoryID],
		})
	}

	sortTransactionsByDateDesc(out)
	return out
}

// Categories returns a copy of the category collection.
func (s *Store) Categories() []*entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Goals returns a copy of the goal collection.
func (s *Store) Goals() []*entity.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Goal, len(s.goals))
	copy(out, s.goals)
	return out
}

// GoalView pairs a goal with its progress report.
type GoalView struct {
	Goal   *entity.Goal
	Report goalprogress.Report
}

// GoalReports evaluates every goal's progress against the reference time.
func (s *Store) GoalReports(now time.Time) []GoalView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goalReportsLocked(now)
}

// OverviewViewModel is the complete derived state the presentation layer
// renders after any mutation or view switch.
type OverviewViewModel struct {
	aggregation.Overview
	Goals []GoalView
}

// Overview recomputes the full derived view model for the calendar month
// containing now. This is the single recompute entry point: callers never
// track which individual summaries a mutation invalidated.
func (s *Store) Overview(now time.Time) OverviewViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return OverviewViewModel{
		Overview: aggregation.BuildOverview(s.transactions, s.categories, now),
		Goals:    s.goalReportsLocked(now),
	}
}

// goalReportsLocked assumes s.mu is held.
func (s *Store) goalReportsLocked(now time.Time) []GoalView {
	views := make([]GoalView, 0, len(s.goals))
	for _, g := range s.goals {
		views = append(views, GoalView{
			Goal:   g,
			Report: goalprogress.Classify(g, now),
		})
	}
	return views
}

// validateTransactionInput enforces the transaction invariants. Expense
// transactions cannot contribute to a goal.
func (s *Store) validateTransactionInput(input TransactionInput) error {
	if input.Type != entity.TransactionTypeExpense && input.Type != entity.TransactionTypeIncome {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !input.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if strings.TrimSpace(input.Description) == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingDescription,
			"description is required",
			domainerror.ErrMissingTransactionDescription,
		)
	}

	if input.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if s.categoryIndex(input.CategoryID) < 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}

	if input.GoalID != nil {
		if input.Type == entity.TransactionTypeExpense {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeGoalLinkedExpense,
				"expense transactions cannot be linked to a goal",
				domainerror.ErrGoalLinkedExpense,
			)
		}
		if s.goalIndex(*input.GoalID) < 0 {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFoundForTransaction,
			)
		}
	}

	return nil
}

// validateCategoryInput enforces category name and budget rules. The name
// must be unique within the store, ignoring case; excludeID skips the
// category being updated.
func (s *Store) validateCategoryInput(name string, budget decimal.Decimal, excludeID uuid.UUID) error {
	if name == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryName,
			"category name is required",
			domainerror.ErrMissingCategoryName,
		)
	}

	if budget.IsNegative() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryBudget,
			"budget must not be negative",
			domainerror.ErrInvalidCategoryBudget,
		)
	}

	for _, c := range s.categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameExists,
				"a category with this name already exists",
				domainerror.ErrCategoryNameExists,
			)
		}
	}

	return nil
}

func validateGoalInput(name string, input GoalInput) error {
	if name == "" {
		return domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalName,
			"goal name is required",
			domainerror.ErrMissingGoalName,
		)
	}

	if !input.TargetAmount.IsPositive() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}

	if input.MonthlyContribution.IsNegative() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidMonthlyContribution,
			"monthly contribution must not be negative",
			domainerror.ErrInvalidMonthlyContribution,
		)
	}

	if input.TargetDate.IsZero() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeMissingTargetDate,
			"target date is required",
			domainerror.ErrMissingTargetDate,
		)
	}

	return nil
}

// recalcGoalSaved recomputes one goal's saved amount from the current
// transactions. Assumes s.mu is held.
func (s *Store) recalcGoalSaved(goalID uuid.UUID) {
	index := s.goalIndex(goalID)
	if index < 0 {
		return
	}
	s.goals[index].Saved = goalprogress.Saved(s.transactions, goalID)
}

// recalcAllGoals recomputes every goal's saved amount. Assumes s.mu is held.
func (s *Store) recalcAllGoals() {
	for _, g := range s.goals {
		g.Saved = goalprogress.Saved(s.transactions, g.ID)
	}
}

// sortTransactionsByDateDesc orders newest first; equal dates keep their
// insertion order.
func sortTransactionsByDateDesc(transactions []*entity.TransactionWithCategory) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Transaction.Date.After(transactions[j].Transaction.Date)
	})
}

func (s *Store) transactionIndex(id uuid.UUID) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) categoryIndex(id uuid.UUID) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) goalIndex(id uuid.UUID) int {
	for i, g := range s.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}
