// Package localstore is the file-backed persistence variant. The whole
// ledger is one JSON document on disk, rewritten atomically on every
// mutation. It exists for single-user offline deployments where running
// Postgres is not worth it; the repository interfaces are identical, so the
// rest of the application cannot tell the two drivers apart.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// document is the on-disk shape. Dates serialize as RFC 3339 through the
// standard time.Time JSON encoding.
type document struct {
	Users        []userRecord        `json:"users"`
	Transactions []transactionRecord `json:"transactions"`
	Categories   []categoryRecord    `json:"categories"`
	Goals        []goalRecord        `json:"goals"`
}

type userRecord struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type transactionRecord struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CategoryID  uuid.UUID       `json:"category_id"`
	GoalID      *uuid.UUID      `json:"goal_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type categoryRecord struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type goalRecord struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              uuid.UUID       `json:"user_id"`
	Name                string          `json:"name"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	TargetDate          time.Time       `json:"target_date"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Store owns the JSON document and serializes all access to it.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open loads the document at path, creating an empty one when the file does
// not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file: %w", err)
	}

	return s, nil
}

// flush rewrites the document atomically: write to a temp file in the same
// directory, then rename over the target. Assumes s.mu is held.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close ledger file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}

	return nil
}

func userToRecord(u *entity.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r userRecord) toEntity() *entity.User {
	return &entity.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func transactionToRecord(t *entity.Transaction) transactionRecord {
	return transactionRecord{
		ID:          t.ID,
		UserID:      t.UserID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        string(t.Type),
		CategoryID:  t.CategoryID,
		GoalID:      t.GoalID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r transactionRecord) toEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date,
		Description: r.Description,
		Amount:      r.Amount,
		Type:        entity.TransactionType(r.Type),
		CategoryID:  r.CategoryID,
		GoalID:      r.GoalID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func categoryToRecord(c *entity.Category) categoryRecord {
	return categoryRecord{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Budget:    c.Budget,
		Icon:      c.Icon,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r categoryRecord) toEntity() *entity.Category {
	return &entity.Category{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		Budget:    r.Budget,
		Icon:      r.Icon,
		Color:     r.Color,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func goalToRecord(g *entity.Goal) goalRecord {
	return goalRecord{
		ID:                  g.ID,
		UserID:              g.UserID,
		Name:                g.Name,
		TargetAmount:        g.TargetAmount,
		MonthlyContribution: g.MonthlyContribution,
		TargetDate:          g.TargetDate,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
	}
}

func (r goalRecord) toEntity() *entity.Goal {
	return &entity.Goal{
		ID:                  r.ID,
		UserID:              r.UserID,
		Name:                r.Name,
		TargetAmount:        r.TargetAmount,
		MonthlyContribution: r.MonthlyContribution,
		TargetDate:          r.TargetDate,
		Saved:               decimal.Zero,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}
