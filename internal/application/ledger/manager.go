package ledger

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/budget-planner/backend/internal/application/adapter"
)

// Manager maps authenticated users to their ledger sessions. A session is
// created and loaded on first access and evicted on logout or when the
// user's credentials stop being valid.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Store

	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	goalRepo        adapter.GoalRepository
	userRepo        adapter.UserRepository
}

// NewManager creates a Manager backed by the given repositories.
func NewManager(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
) *Manager {
	return &Manager{
		sessions:        make(map[uuid.UUID]*Store),
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		goalRepo:        goalRepo,
		userRepo:        userRepo,
	}
}

// Session returns the user's loaded ledger store, creating and loading it on
// first access. A store that fails to load is not cached, so the next call
// retries from scratch.
func (m *Manager) Session(ctx context.Context, userID uuid.UUID) (*Store, error) {
	m.mu.Lock()
	if store, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return store, nil
	}
	m.mu.Unlock()

	store := NewStore(userID, m.transactionRepo, m.categoryRepo, m.goalRepo, m.userRepo)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have loaded the session concurrently; keep the
	// first one so both callers share the same collections.
	if existing, ok := m.sessions[userID]; ok {
		return existing, nil
	}
	m.sessions[userID] = store
	return store, nil
}

// Evict drops the user's session. The next Session call reloads from the
// repositories.
func (m *Manager) Evict(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
