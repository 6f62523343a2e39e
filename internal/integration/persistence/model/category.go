// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/budget-planner/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Budget    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Icon      string          `gorm:"type:varchar(50);not null"`
	Color     string          `gorm:"type:varchar(7);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Budget:    m.Budget,
		Icon:      m.Icon,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var deletedAt gorm.DeletedAt
	if category.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}

	return &CategoryModel{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		Budget:    category.Budget,
		Icon:      category.Icon,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
