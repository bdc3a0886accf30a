// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// BudgetPeriodModel represents the budget_periods table in the database.
type BudgetPeriodModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Type      string    `gorm:"type:varchar(16);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetPeriodModel.
func (BudgetPeriodModel) TableName() string {
	return "budget_periods"
}

// ToEntity converts a BudgetPeriodModel to a domain BudgetPeriod entity.
func (m *BudgetPeriodModel) ToEntity() *entity.BudgetPeriod {
	return &entity.BudgetPeriod{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Type:      entity.BudgetPeriodType(m.Type),
		StartDate: entity.DateOnly(m.StartDate),
		EndDate:   entity.DateOnly(m.EndDate),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BudgetPeriodFromEntity creates a BudgetPeriodModel from a domain BudgetPeriod entity.
func BudgetPeriodFromEntity(period *entity.BudgetPeriod) *BudgetPeriodModel {
	return &BudgetPeriodModel{
		ID:        period.ID,
		CompanyID: period.CompanyID,
		Name:      period.Name,
		Type:      string(period.Type),
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		CreatedAt: period.CreatedAt,
		UpdatedAt: period.UpdatedAt,
	}
}

// BudgetCategoryModel represents the budget_categories table in the database.
type BudgetCategoryModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name              string    `gorm:"type:varchar(50);not null"`
	Type              string    `gorm:"type:varchar(10);not null"`
	StatementCategory string    `gorm:"type:varchar(64);not null;default:''"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetCategoryModel.
func (BudgetCategoryModel) TableName() string {
	return "budget_categories"
}

// ToEntity converts a BudgetCategoryModel to a domain BudgetCategory entity.
func (m *BudgetCategoryModel) ToEntity() *entity.BudgetCategory {
	return &entity.BudgetCategory{
		ID:                m.ID,
		CompanyID:         m.CompanyID,
		Name:              m.Name,
		Type:              entity.CategoryType(m.Type),
		StatementCategory: m.StatementCategory,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// BudgetCategoryFromEntity creates a BudgetCategoryModel from a domain BudgetCategory entity.
func BudgetCategoryFromEntity(category *entity.BudgetCategory) *BudgetCategoryModel {
	return &BudgetCategoryModel{
		ID:                category.ID,
		CompanyID:         category.CompanyID,
		Name:              category.Name,
		Type:              string(category.Type),
		StatementCategory: category.StatementCategory,
		CreatedAt:         category.CreatedAt,
		UpdatedAt:         category.UpdatedAt,
	}
}

// BudgetLineModel represents the budget_lines table in the database.
// Running balances are derived on read and never stored.
type BudgetLineModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PeriodID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null"`
	Date          time.Time       `gorm:"type:date;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Notes         string          `gorm:"type:text"`
	IsApproved    bool            `gorm:"not null;default:false"`
	ApprovedAt    *time.Time      `gorm:"type:timestamp"`
	TransactionID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Period   *BudgetPeriodModel   `gorm:"foreignKey:PeriodID;references:ID"`
	Category *BudgetCategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the BudgetLineModel.
func (BudgetLineModel) TableName() string {
	return "budget_lines"
}

// ToEntity converts a BudgetLineModel to a domain BudgetLine entity.
func (m *BudgetLineModel) ToEntity() *entity.BudgetLine {
	return &entity.BudgetLine{
		ID:            m.ID,
		PeriodID:      m.PeriodID,
		CompanyID:     m.CompanyID,
		CategoryID:    m.CategoryID,
		Date:          entity.DateOnly(m.Date),
		Amount:        m.Amount,
		Notes:         m.Notes,
		IsApproved:    m.IsApproved,
		ApprovedAt:    m.ApprovedAt,
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// BudgetLineFromEntity creates a BudgetLineModel from a domain BudgetLine entity.
func BudgetLineFromEntity(line *entity.BudgetLine) *BudgetLineModel {
	return &BudgetLineModel{
		ID:            line.ID,
		PeriodID:      line.PeriodID,
		CompanyID:     line.CompanyID,
		CategoryID:    line.CategoryID,
		Date:          line.Date,
		Amount:        line.Amount,
		Notes:         line.Notes,
		IsApproved:    line.IsApproved,
		ApprovedAt:    line.ApprovedAt,
		TransactionID: line.TransactionID,
		CreatedAt:     line.CreatedAt,
		UpdatedAt:     line.UpdatedAt,
	}
}
