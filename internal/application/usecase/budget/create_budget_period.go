package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

// CreateBudgetPeriodInput represents the input for creating a budget period.
type CreateBudgetPeriodInput struct {
	OwnerID   uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Type      entity.BudgetPeriodType
	StartDate time.Time
	EndDate   time.Time
}

// BudgetPeriodOutput represents a budget period.
type BudgetPeriodOutput struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Type      entity.BudgetPeriodType
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// CreateBudgetPeriodUseCase handles budget period creation logic.
type CreateBudgetPeriodUseCase struct {
	budgetRepo  adapter.BudgetRepository
	companyRepo adapter.CompanyRepository
}

// NewCreateBudgetPeriodUseCase creates a new CreateBudgetPeriodUseCase instance.
func NewCreateBudgetPeriodUseCase(budgetRepo adapter.BudgetRepository, companyRepo adapter.CompanyRepository) *CreateBudgetPeriodUseCase {
	return &CreateBudgetPeriodUseCase{
		budgetRepo:  budgetRepo,
		companyRepo: companyRepo,
	}
}

// Execute performs the budget period creation.
func (uc *CreateBudgetPeriodUseCase) Execute(ctx context.Context, input CreateBudgetPeriodInput) (*BudgetPeriodOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"period name is required",
			nil,
		)
	}

	periodType := entity.BudgetPeriodType(strings.ToUpper(strings.TrimSpace(string(input.Type))))
	if !periodType.IsValid() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period type must be BUDGET, FORECAST or ACTUALS",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	start, end := entity.DateOnly(input.StartDate), entity.DateOnly(input.EndDate)
	if input.StartDate.IsZero() || input.EndDate.IsZero() || end.Before(start) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period end must not be before its start",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	owned, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period := &entity.BudgetPeriod{
		ID:        uuid.New(),
		CompanyID: owned.ID,
		Name:      name,
		Type:      periodType,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.budgetRepo.CreatePeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to create budget period: %w", err)
	}

	slog.Info("Budget period created",
		"periodID", period.ID,
		"companyID", owned.ID,
		"type", period.Type,
	)

	return &BudgetPeriodOutput{
		ID:        period.ID,
		CompanyID: period.CompanyID,
		Name:      period.Name,
		Type:      period.Type,
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		CreatedAt: period.CreatedAt,
	}, nil
}
