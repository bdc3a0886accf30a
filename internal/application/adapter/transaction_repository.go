// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
}

// TransactionRepository defines the interface for ledger transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByCompany retrieves the transactions of a company matching the filter,
	// ordered by date and id.
	FindByCompany(ctx context.Context, companyID uuid.UUID, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindByCompanies retrieves every transaction of the given companies.
	FindByCompanies(ctx context.Context, companyIDs []uuid.UUID) ([]*entity.Transaction, error)

	// FindIntercompanyByCompanies retrieves the intercompany rows of the given companies.
	FindIntercompanyByCompanies(ctx context.Context, companyIDs []uuid.UUID) ([]*entity.Transaction, error)

	// UpdateTransfers rewrites type, category, amount and the structured transfer fields
	// of the given rows in a single database transaction.
	UpdateTransfers(ctx context.Context, transactions []*entity.Transaction) error

	// DeleteByIDs deletes rows of one company in a single database transaction.
	// Returns the count of deleted rows.
	DeleteByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (int64, error)

	// CreateMirrors inserts mirror inflows in a single database transaction.
	// A second mirror for the same outflow fails the whole batch.
	CreateMirrors(ctx context.Context, mirrors []*entity.Transaction) error
}
