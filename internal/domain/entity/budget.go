// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriodType is the planning horizon of a budget period.
type BudgetPeriodType string

const (
	BudgetPeriodTypeBudget   BudgetPeriodType = "BUDGET"
	BudgetPeriodTypeForecast BudgetPeriodType = "FORECAST"
	BudgetPeriodTypeActuals  BudgetPeriodType = "ACTUALS"
)

// IsValid reports whether the period type is known.
func (t BudgetPeriodType) IsValid() bool {
	return t == BudgetPeriodTypeBudget || t == BudgetPeriodTypeForecast || t == BudgetPeriodTypeActuals
}

// BudgetPeriod groups planning lines of one company.
type BudgetPeriod struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Type      BudgetPeriodType
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryType represents the type of a budget category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// BudgetCategory classifies budget lines. StatementCategory is the ledger category a
// posted transaction receives (e.g. "admin", "sales_marketing").
type BudgetCategory struct {
	ID                uuid.UUID
	CompanyID         uuid.UUID
	Name              string
	Type              CategoryType
	StatementCategory string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BudgetLine is a planned amount on a date. Balance is derived, never stored as input.
type BudgetLine struct {
	ID            uuid.UUID
	PeriodID      uuid.UUID
	CompanyID     uuid.UUID
	CategoryID    uuid.UUID
	Date          time.Time
	Amount        decimal.Decimal
	Notes         string
	IsApproved    bool
	ApprovedAt    *time.Time
	TransactionID *uuid.UUID
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBudgetLine creates a new unapproved BudgetLine entity.
func NewBudgetLine(periodID, companyID, categoryID uuid.UUID, date time.Time, amount decimal.Decimal, notes string) *BudgetLine {
	now := time.Now().UTC()

	return &BudgetLine{
		ID:         uuid.New(),
		PeriodID:   periodID,
		CompanyID:  companyID,
		CategoryID: categoryID,
		Date:       DateOnly(date),
		Amount:     amount,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ActualsPosting pairs an approved line with the transaction materialized for it.
type ActualsPosting struct {
	Line        *BudgetLine
	Transaction *Transaction
	ApprovedAt  time.Time
}
