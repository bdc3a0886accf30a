// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// CreatePeriod creates a new budget period.
	CreatePeriod(ctx context.Context, period *entity.BudgetPeriod) error

	// FindPeriodByID retrieves a budget period by its ID.
	FindPeriodByID(ctx context.Context, id uuid.UUID) (*entity.BudgetPeriod, error)

	// CreateCategory creates a new budget category.
	CreateCategory(ctx context.Context, category *entity.BudgetCategory) error

	// FindCategoryByID retrieves a budget category by its ID.
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.BudgetCategory, error)

	// FindCategoriesByCompany retrieves all budget categories of a company.
	FindCategoriesByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.BudgetCategory, error)

	// CreateLine creates a new budget line.
	CreateLine(ctx context.Context, line *entity.BudgetLine) error

	// FindLinesByPeriod retrieves all lines of a period.
	FindLinesByPeriod(ctx context.Context, periodID uuid.UUID) ([]*entity.BudgetLine, error)

	// PostActuals creates every posting transaction and approves every posting line
	// in a single database transaction. Either all postings persist or none do.
	PostActuals(ctx context.Context, postings []entity.ActualsPosting) error
}
