// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database. The derived Saved
// amount is not a column; it is recomputed from linked transactions after
// load.
type GoalModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                string          `gorm:"type:varchar(100);not null"`
	TargetAmount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	MonthlyContribution decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TargetDate          time.Time       `gorm:"type:date;not null"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
	DeletedAt           gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity. Saved starts at
// zero; the caller recomputes it from the transaction collection.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Goal{
		ID:                  m.ID,
		UserID:              m.UserID,
		Name:                m.Name,
		TargetAmount:        m.TargetAmount,
		MonthlyContribution: m.MonthlyContribution,
		TargetDate:          m.TargetDate,
		Saved:               decimal.Zero,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	return &GoalModel{
		ID:                  goal.ID,
		UserID:              goal.UserID,
		Name:                goal.Name,
		TargetAmount:        goal.TargetAmount,
		MonthlyContribution: goal.MonthlyContribution,
		TargetDate:          goal.TargetDate,
		CreatedAt:           goal.CreatedAt,
		UpdatedAt:           goal.UpdatedAt,
		DeletedAt:           deletedAt,
	}
}
