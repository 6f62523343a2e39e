package localstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
)

// UserRepository returns the file-backed adapter.UserRepository.
func (s *Store) UserRepository() adapter.UserRepository {
	return &userRepository{store: s}
}

// TransactionRepository returns the file-backed adapter.TransactionRepository.
func (s *Store) TransactionRepository() adapter.TransactionRepository {
	return &transactionRepository{store: s}
}

// CategoryRepository returns the file-backed adapter.CategoryRepository.
func (s *Store) CategoryRepository() adapter.CategoryRepository {
	return &categoryRepository{store: s}
}

// GoalRepository returns the file-backed adapter.GoalRepository.
func (s *Store) GoalRepository() adapter.GoalRepository {
	return &goalRepository{store: s}
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Users = append(s.doc.Users, userToRecord(user))
	if err := s.flush(); err != nil {
		s.doc.Users = s.doc.Users[:len(s.doc.Users)-1]
		return err
	}
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.doc.Users {
		if u.ID == id {
			return u.toEntity(), nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.doc.Users {
		if u.Email == email {
			return u.toEntity(), nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *userRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.doc.Users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type transactionRepository struct {
	store *Store
}

func (r *transactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Transactions = append(s.doc.Transactions, transactionToRecord(transaction))
	if err := s.flush(); err != nil {
		s.doc.Transactions = s.doc.Transactions[:len(s.doc.Transactions)-1]
		return err
	}
	return nil
}

func (r *transactionRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Transaction, 0)
	for _, t := range s.doc.Transactions {
		if t.UserID == userID {
			out = append(out, t.toEntity())
		}
	}
	return out, nil
}

func (r *transactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.doc.Transactions {
		if t.ID == transaction.ID {
			previous := s.doc.Transactions[i]
			s.doc.Transactions[i] = transactionToRecord(transaction)
			if err := s.flush(); err != nil {
				s.doc.Transactions[i] = previous
				return err
			}
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

func (r *transactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.doc.Transactions {
		if t.ID == id {
			removed := s.doc.Transactions[i]
			s.doc.Transactions = append(s.doc.Transactions[:i], s.doc.Transactions[i+1:]...)
			if err := s.flush(); err != nil {
				s.doc.Transactions = append(s.doc.Transactions, removed)
				return err
			}
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

func (r *transactionRepository) ClearGoalLinks(_ context.Context, userID, goalID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := make([]int, 0)
	for i := range s.doc.Transactions {
		t := &s.doc.Transactions[i]
		if t.UserID == userID && t.GoalID != nil && *t.GoalID == goalID {
			t.GoalID = nil
			cleared = append(cleared, i)
		}
	}

	if err := s.flush(); err != nil {
		restored := goalID
		for _, i := range cleared {
			s.doc.Transactions[i].GoalID = &restored
		}
		return err
	}
	return nil
}

type categoryRepository struct {
	store *Store
}

func (r *categoryRepository) Create(_ context.Context, category *entity.Category) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Categories = append(s.doc.Categories, categoryToRecord(category))
	if err := s.flush(); err != nil {
		s.doc.Categories = s.doc.Categories[:len(s.doc.Categories)-1]
		return err
	}
	return nil
}

func (r *categoryRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Category, 0)
	for _, c := range s.doc.Categories {
		if c.UserID == userID {
			out = append(out, c.toEntity())
		}
	}
	return out, nil
}

func (r *categoryRepository) Update(_ context.Context, category *entity.Category) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.doc.Categories {
		if c.ID == category.ID {
			previous := s.doc.Categories[i]
			s.doc.Categories[i] = categoryToRecord(category)
			if err := s.flush(); err != nil {
				s.doc.Categories[i] = previous
				return err
			}
			return nil
		}
	}
	return domainerror.ErrCategoryNotFound
}

func (r *categoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.doc.Categories {
		if c.ID == id {
			removed := s.doc.Categories[i]
			s.doc.Categories = append(s.doc.Categories[:i], s.doc.Categories[i+1:]...)
			if err := s.flush(); err != nil {
				s.doc.Categories = append(s.doc.Categories, removed)
				return err
			}
			return nil
		}
	}
	return domainerror.ErrCategoryNotFound
}

type goalRepository struct {
	store *Store
}

func (r *goalRepository) Create(_ context.Context, goal *entity.Goal) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Goals = append(s.doc.Goals, goalToRecord(goal))
	if err := s.flush(); err != nil {
		s.doc.Goals = s.doc.Goals[:len(s.doc.Goals)-1]
		return err
	}
	return nil
}

func (r *goalRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Goal, 0)
	for _, g := range s.doc.Goals {
		if g.UserID == userID {
			out = append(out, g.toEntity())
		}
	}
	return out, nil
}

func (r *goalRepository) Update(_ context.Context, goal *entity.Goal) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.doc.Goals {
		if g.ID == goal.ID {
			previous := s.doc.Goals[i]
			s.doc.Goals[i] = goalToRecord(goal)
			if err := s.flush(); err != nil {
				s.doc.Goals[i] = previous
				return err
			}
			return nil
		}
	}
	return domainerror.ErrGoalNotFound
}

func (r *goalRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.doc.Goals {
		if g.ID == id {
			removed := s.doc.Goals[i]
			s.doc.Goals = append(s.doc.Goals[:i], s.doc.Goals[i+1:]...)
			if err := s.flush(); err != nil {
				s.doc.Goals = append(s.doc.Goals, removed)
				return err
			}
			return nil
		}
	}
	return domainerror.ErrGoalNotFound
}
