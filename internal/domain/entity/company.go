// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company is a venture owned by exactly one user. Statements are computed per company
// and consolidated across the companies of one owner.
type Company struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	OpeningCash decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCompany creates a new Company entity.
func NewCompany(ownerID uuid.UUID, name string, openingCash decimal.Decimal) *Company {
	now := time.Now().UTC()

	return &Company{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		OpeningCash: openingCash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CompanyLedger is the input of a single-entity calculation: the company's
// transactions plus its opening cash balance.
type CompanyLedger struct {
	CompanyID    uuid.UUID
	Name         string
	OpeningCash  decimal.Decimal
	Transactions []*Transaction
}
