package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// CreateBudgetCategoryInput represents the input for creating a budget category.
type CreateBudgetCategoryInput struct {
	OwnerID           uuid.UUID
	CompanyID         uuid.UUID
	Name              string
	Type              entity.CategoryType
	StatementCategory string
}

// BudgetCategoryOutput represents a budget category.
type BudgetCategoryOutput struct {
	ID                uuid.UUID
	CompanyID         uuid.UUID
	Name              string
	Type              entity.CategoryType
	StatementCategory string
	CreatedAt         time.Time
}

// CreateBudgetCategoryUseCase handles budget category creation logic.
type CreateBudgetCategoryUseCase struct {
	budgetRepo  adapter.BudgetRepository
	companyRepo adapter.CompanyRepository
}

// NewCreateBudgetCategoryUseCase creates a new CreateBudgetCategoryUseCase instance.
func NewCreateBudgetCategoryUseCase(budgetRepo adapter.BudgetRepository, companyRepo adapter.CompanyRepository) *CreateBudgetCategoryUseCase {
	return &CreateBudgetCategoryUseCase{
		budgetRepo:  budgetRepo,
		companyRepo: companyRepo,
	}
}

// Execute performs the budget category creation.
func (uc *CreateBudgetCategoryUseCase) Execute(ctx context.Context, input CreateBudgetCategoryInput) (*BudgetCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"category name is required",
			nil,
		)
	}
	if input.Type != entity.CategoryTypeIncome && input.Type != entity.CategoryTypeExpense {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"category type must be income or expense",
			nil,
		)
	}

	owned, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	category := &entity.BudgetCategory{
		ID:                uuid.New(),
		CompanyID:         owned.ID,
		Name:              name,
		Type:              input.Type,
		StatementCategory: finance.CategoryKey(input.StatementCategory),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.budgetRepo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create budget category: %w", err)
	}

	return &BudgetCategoryOutput{
		ID:                category.ID,
		CompanyID:         category.CompanyID,
		Name:              category.Name,
		Type:              category.Type,
		StatementCategory: category.StatementCategory,
		CreatedAt:         category.CreatedAt,
	}, nil
}
