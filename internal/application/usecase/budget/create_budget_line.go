package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

// CreateBudgetLineInput represents the input for creating a budget line.
type CreateBudgetLineInput struct {
	OwnerID    uuid.UUID
	PeriodID   uuid.UUID
	CategoryID uuid.UUID
	Date       time.Time
	Amount     decimal.Decimal
	Notes      string
}

// CreateBudgetLineUseCase handles budget line creation logic.
type CreateBudgetLineUseCase struct {
	budgetRepo  adapter.BudgetRepository
	companyRepo adapter.CompanyRepository
}

// NewCreateBudgetLineUseCase creates a new CreateBudgetLineUseCase instance.
func NewCreateBudgetLineUseCase(budgetRepo adapter.BudgetRepository, companyRepo adapter.CompanyRepository) *CreateBudgetLineUseCase {
	return &CreateBudgetLineUseCase{
		budgetRepo:  budgetRepo,
		companyRepo: companyRepo,
	}
}

// Execute performs the budget line creation.
func (uc *CreateBudgetLineUseCase) Execute(ctx context.Context, input CreateBudgetLineInput) (*BudgetLineOutput, error) {
	if input.Date.IsZero() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"line date is required",
			nil,
		)
	}

	period, owned, err := loadOwnedPeriod(ctx, uc.budgetRepo, uc.companyRepo, input.PeriodID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	date := entity.DateOnly(input.Date)
	within := entity.StatementPeriod{Start: period.StartDate, End: period.EndDate}
	if !within.Contains(date) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeLineOutsidePeriod,
			fmt.Sprintf("line date must fall between %s and %s",
				period.StartDate.Format(time.DateOnly), period.EndDate.Format(time.DateOnly)),
			domainerror.ErrLineOutsidePeriod,
		)
	}

	category, err := uc.budgetRepo.FindCategoryByID(ctx, input.CategoryID)
	if err != nil && !errors.Is(err, domainerror.ErrBudgetCategoryNotFound) {
		return nil, fmt.Errorf("failed to fetch budget category: %w", err)
	}
	if category == nil || category.CompanyID != owned.ID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"budget category not found",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}

	line := entity.NewBudgetLine(period.ID, owned.ID, category.ID, date, input.Amount, strings.TrimSpace(input.Notes))
	if err := uc.budgetRepo.CreateLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to create budget line: %w", err)
	}

	output := toBudgetLineOutput(line)
	return &output, nil
}
