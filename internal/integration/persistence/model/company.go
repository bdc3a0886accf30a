// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// CompanyModel represents the companies table in the database.
type CompanyModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_companies_owner_name,priority:1"`
	Name        string          `gorm:"type:varchar(120);not null;uniqueIndex:idx_companies_owner_name,priority:2"`
	OpeningCash decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Owner *UserModel `gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName returns the table name for the CompanyModel.
func (CompanyModel) TableName() string {
	return "companies"
}

// ToEntity converts a CompanyModel to a domain Company entity.
func (m *CompanyModel) ToEntity() *entity.Company {
	return &entity.Company{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		OpeningCash: m.OpeningCash,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CompanyFromEntity creates a CompanyModel from a domain Company entity.
func CompanyFromEntity(company *entity.Company) *CompanyModel {
	return &CompanyModel{
		ID:          company.ID,
		OwnerID:     company.OwnerID,
		Name:        company.Name,
		OpeningCash: company.OpeningCash,
		CreatedAt:   company.CreatedAt,
		UpdatedAt:   company.UpdatedAt,
	}
}
