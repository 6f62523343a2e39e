// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/budget-planner/backend/internal/application/adapter"
	"github.com/budget-planner/backend/internal/domain/entity"
	domainerror "github.com/budget-planner/backend/internal/domain/error"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUser retrieves all goals for a given user in creation order.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goalModels []model.GoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals, nil
}

// Update updates an existing goal in the database.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ?", goal.ID).
		Select("Name", "TargetAmount", "MonthlyContribution", "TargetDate", "UpdatedAt").
		Updates(goalModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// Delete soft-deletes a goal.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.GoalModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}
