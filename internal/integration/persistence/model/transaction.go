// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_company_date,priority:1"`
	Date            time.Time       `gorm:"type:date;not null;index:idx_transactions_company_date,priority:2"`
	Type            string          `gorm:"type:varchar(32);not null;index"`
	Category        string          `gorm:"type:varchar(64);not null;default:''"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Description     string          `gorm:"type:varchar(255);not null;default:''"`
	AffectsPL       bool            `gorm:"column:affects_pl;not null;default:false"`
	AffectsCashFlow bool            `gorm:"not null;default:false"`
	AffectsBalance  bool            `gorm:"not null;default:false"`

	Direction             string     `gorm:"type:varchar(16);not null;default:''"`
	CounterpartyCompanyID *uuid.UUID `gorm:"type:uuid;index"`

	// One budget line posts one transaction; one outflow has one mirror.
	Source    string     `gorm:"type:varchar(32);not null;default:'manual';uniqueIndex:idx_transactions_source_ref,priority:1"`
	SourceRef *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_transactions_source_ref,priority:2"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Company *CompanyModel `gorm:"foreignKey:CompanyID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                    m.ID,
		CompanyID:             m.CompanyID,
		Date:                  entity.DateOnly(m.Date),
		Type:                  entity.TransactionType(m.Type),
		Category:              m.Category,
		Amount:                m.Amount,
		Description:           m.Description,
		AffectsPL:             m.AffectsPL,
		AffectsCashFlow:       m.AffectsCashFlow,
		AffectsBalance:        m.AffectsBalance,
		Direction:             entity.TransferDirection(m.Direction),
		CounterpartyCompanyID: m.CounterpartyCompanyID,
		Source:                entity.TransactionSource(m.Source),
		SourceRef:             m.SourceRef,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	source := transaction.Source
	if source == "" {
		source = entity.TransactionSourceManual
	}

	return &TransactionModel{
		ID:                    transaction.ID,
		CompanyID:             transaction.CompanyID,
		Date:                  entity.DateOnly(transaction.Date),
		Type:                  string(transaction.Type),
		Category:              transaction.Category,
		Amount:                transaction.Amount,
		Description:           transaction.Description,
		AffectsPL:             transaction.AffectsPL,
		AffectsCashFlow:       transaction.AffectsCashFlow,
		AffectsBalance:        transaction.AffectsBalance,
		Direction:             string(transaction.Direction),
		CounterpartyCompanyID: transaction.CounterpartyCompanyID,
		Source:                string(source),
		SourceRef:             transaction.SourceRef,
		CreatedAt:             transaction.CreatedAt,
		UpdatedAt:             transaction.UpdatedAt,
	}
}
