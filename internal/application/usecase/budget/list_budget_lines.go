package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// ListBudgetLinesInput represents the input for listing the lines of a period.
// StartingBalance defaults to the company's opening cash.
type ListBudgetLinesInput struct {
	OwnerID         uuid.UUID
	PeriodID        uuid.UUID
	StartingBalance *decimal.Decimal
}

// ListBudgetLinesOutput represents the lines of a period in date order.
type ListBudgetLinesOutput struct {
	PeriodID        uuid.UUID
	StartingBalance decimal.Decimal
	EndingBalance   decimal.Decimal
	Lines           []BudgetLineOutput
}

// ListBudgetLinesUseCase lists budget lines with their running balance.
type ListBudgetLinesUseCase struct {
	budgetRepo  adapter.BudgetRepository
	companyRepo adapter.CompanyRepository
}

// NewListBudgetLinesUseCase creates a new ListBudgetLinesUseCase instance.
func NewListBudgetLinesUseCase(budgetRepo adapter.BudgetRepository, companyRepo adapter.CompanyRepository) *ListBudgetLinesUseCase {
	return &ListBudgetLinesUseCase{
		budgetRepo:  budgetRepo,
		companyRepo: companyRepo,
	}
}

// Execute lists the lines.
func (uc *ListBudgetLinesUseCase) Execute(ctx context.Context, input ListBudgetLinesInput) (*ListBudgetLinesOutput, error) {
	period, owned, err := loadOwnedPeriod(ctx, uc.budgetRepo, uc.companyRepo, input.PeriodID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.budgetRepo.FindLinesByPeriod(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budget lines: %w", err)
	}

	start := owned.OpeningCash
	if input.StartingBalance != nil {
		start = *input.StartingBalance
	}

	projected := finance.ProjectRunningBalance(lines, start)

	output := &ListBudgetLinesOutput{
		PeriodID:        period.ID,
		StartingBalance: start,
		EndingBalance:   start,
		Lines:           make([]BudgetLineOutput, len(projected)),
	}
	for i, line := range projected {
		output.Lines[i] = toBudgetLineOutput(line)
	}
	if len(projected) > 0 {
		output.EndingBalance = projected[len(projected)-1].Balance
	}
	return output, nil
}
