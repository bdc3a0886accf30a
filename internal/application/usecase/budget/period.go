// Package budget contains budget planning and actuals posting use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

// loadOwnedPeriod retrieves a budget period and verifies its company belongs to the owner.
func loadOwnedPeriod(ctx context.Context, budgetRepo adapter.BudgetRepository, companyRepo adapter.CompanyRepository, periodID, ownerID uuid.UUID) (*entity.BudgetPeriod, *entity.Company, error) {
	period, err := budgetRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetPeriodNotFound) {
			return nil, nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetPeriodNotFound,
				"budget period not found",
				domainerror.ErrBudgetPeriodNotFound,
			)
		}
		return nil, nil, fmt.Errorf("failed to fetch budget period: %w", err)
	}

	owned, err := company.LoadOwnedCompany(ctx, companyRepo, period.CompanyID, ownerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotAuthorizedToAccessCompany) {
			return nil, nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetPeriodNotFound,
				"budget period not found",
				domainerror.ErrBudgetPeriodNotFound,
			)
		}
		return nil, nil, err
	}

	return period, owned, nil
}

// BudgetLineOutput represents a budget line with its projected running balance.
type BudgetLineOutput struct {
	ID            uuid.UUID
	PeriodID      uuid.UUID
	CategoryID    uuid.UUID
	Date          time.Time
	Amount        decimal.Decimal
	Notes         string
	IsApproved    bool
	ApprovedAt    *time.Time
	TransactionID *uuid.UUID
	Balance       decimal.Decimal
}

func toBudgetLineOutput(line *entity.BudgetLine) BudgetLineOutput {
	return BudgetLineOutput{
		ID:            line.ID,
		PeriodID:      line.PeriodID,
		CategoryID:    line.CategoryID,
		Date:          line.Date,
		Amount:        line.Amount,
		Notes:         line.Notes,
		IsApproved:    line.IsApproved,
		ApprovedAt:    line.ApprovedAt,
		TransactionID: line.TransactionID,
		Balance:       line.Balance,
	}
}
