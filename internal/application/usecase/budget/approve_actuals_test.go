package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureboard/backend/internal/application/adapter/mocks"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

type budgetFixture struct {
	ownerID    uuid.UUID
	company    *entity.Company
	period     *entity.BudgetPeriod
	category   *entity.BudgetCategory
	lines      []*entity.BudgetLine
	budgetRepo *mocks.BudgetRepository
	companies  *mocks.CompanyRepository
	cache      *mocks.StatementCache
}

func newBudgetFixture(periodType entity.BudgetPeriodType) *budgetFixture {
	ownerID := uuid.New()
	company := entity.NewCompany(ownerID, "Alpha", decimal.NewFromInt(1000))
	period := &entity.BudgetPeriod{
		ID:        uuid.New(),
		CompanyID: company.ID,
		Name:      "Q1",
		Type:      periodType,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	category := &entity.BudgetCategory{ID: uuid.New(), CompanyID: company.ID, Name: "Hosting", Type: entity.CategoryTypeExpense, StatementCategory: "infrastructure"}

	f := &budgetFixture{
		ownerID:  ownerID,
		company:  company,
		period:   period,
		category: category,
		lines: []*entity.BudgetLine{
			entity.NewBudgetLine(period.ID, company.ID, category.ID, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(300), ""),
			entity.NewBudgetLine(period.ID, company.ID, category.ID, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), decimal.Zero, ""),
		},
		budgetRepo: new(mocks.BudgetRepository),
		companies:  new(mocks.CompanyRepository),
		cache:      new(mocks.StatementCache),
	}
	f.budgetRepo.On("FindPeriodByID", mock.Anything, period.ID).Return(period, nil)
	f.companies.On("FindByID", mock.Anything, company.ID).Return(company, nil)
	f.budgetRepo.On("FindLinesByPeriod", mock.Anything, period.ID).Return(f.lines, nil)
	f.budgetRepo.On("FindCategoriesByCompany", mock.Anything, company.ID).Return([]*entity.BudgetCategory{category}, nil)
	return f
}

func (f *budgetFixture) useCase(enabled bool) *ApproveActualsUseCase {
	return NewApproveActualsUseCase(f.budgetRepo, f.companies, f.cache, enabled)
}

func budgetErrorCode(t *testing.T, err error) domainerror.BudgetErrorCode {
	t.Helper()
	var budgetErr *domainerror.BudgetError
	require.True(t, errors.As(err, &budgetErr), "expected a budget error, got %v", err)
	return budgetErr.Code
}

func TestApproveActualsUseCase(t *testing.T) {
	t.Run("posts every eligible line in one batch", func(t *testing.T) {
		f := newBudgetFixture(entity.BudgetPeriodTypeActuals)
		f.budgetRepo.On("PostActuals", mock.Anything, mock.MatchedBy(func(postings []entity.ActualsPosting) bool {
			return len(postings) == 1 &&
				postings[0].Line.ID == f.lines[0].ID &&
				postings[0].Transaction.Amount.Equal(decimal.NewFromInt(-300)) &&
				postings[0].Transaction.Category == "infrastructure"
		})).Return(nil)
		f.cache.On("InvalidateOwner", mock.Anything, f.ownerID).Return(nil)

		output, err := f.useCase(true).Execute(context.Background(), ApproveActualsInput{OwnerID: f.ownerID, PeriodID: f.period.ID})

		require.NoError(t, err)
		require.Len(t, output.Posted, 1)
		require.Len(t, output.Skipped, 1)
		assert.Equal(t, f.lines[1].ID, output.Skipped[0].LineID)
		f.budgetRepo.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	t.Run("feature disabled", func(t *testing.T) {
		f := newBudgetFixture(entity.BudgetPeriodTypeActuals)

		_, err := f.useCase(false).Execute(context.Background(), ApproveActualsInput{OwnerID: f.ownerID, PeriodID: f.period.ID})

		assert.Equal(t, domainerror.ErrCodeFeatureDisabled, budgetErrorCode(t, err))
		f.budgetRepo.AssertNotCalled(t, "FindPeriodByID", mock.Anything, mock.Anything)
	})

	t.Run("budget period cannot be approved", func(t *testing.T) {
		f := newBudgetFixture(entity.BudgetPeriodTypeBudget)

		_, err := f.useCase(true).Execute(context.Background(), ApproveActualsInput{OwnerID: f.ownerID, PeriodID: f.period.ID})

		assert.Equal(t, domainerror.ErrCodePeriodNotActuals, budgetErrorCode(t, err))
	})

	t.Run("unknown line id", func(t *testing.T) {
		f := newBudgetFixture(entity.BudgetPeriodTypeActuals)

		_, err := f.useCase(true).Execute(context.Background(), ApproveActualsInput{
			OwnerID:  f.ownerID,
			PeriodID: f.period.ID,
			LineIDs:  []uuid.UUID{f.lines[0].ID, uuid.New()},
		})

		assert.Equal(t, domainerror.ErrCodeBudgetLineNotFound, budgetErrorCode(t, err))
		f.budgetRepo.AssertNotCalled(t, "PostActuals", mock.Anything, mock.Anything)
	})

	t.Run("only ineligible lines requested", func(t *testing.T) {
		f := newBudgetFixture(entity.BudgetPeriodTypeActuals)

		_, err := f.useCase(true).Execute(context.Background(), ApproveActualsInput{
			OwnerID:  f.ownerID,
			PeriodID: f.period.ID,
			LineIDs:  []uuid.UUID{f.lines[1].ID},
		})

		assert.Equal(t, domainerror.ErrCodeNoEligibleLines, budgetErrorCode(t, err))
	})

	t.Run("concurrent approval rolls back the batch", func(t *testing.T) {
		f := newBudgetFixture(entity.BudgetPeriodTypeActuals)
		f.budgetRepo.On("PostActuals", mock.Anything, mock.Anything).Return(domainerror.ErrLineAlreadyApproved)

		_, err := f.useCase(true).Execute(context.Background(), ApproveActualsInput{OwnerID: f.ownerID, PeriodID: f.period.ID})

		assert.Equal(t, domainerror.ErrCodeLineAlreadyApproved, budgetErrorCode(t, err))
		f.cache.AssertNotCalled(t, "InvalidateOwner", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newBudgetFixture(entity.BudgetPeriodTypeActuals)
		f.budgetRepo.On("PostActuals", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := f.useCase(true).Execute(context.Background(), ApproveActualsInput{OwnerID: f.ownerID, PeriodID: f.period.ID})

		assert.Equal(t, domainerror.ErrCodeActualsPostingFailed, budgetErrorCode(t, err))
		assert.ErrorIs(t, err, domainerror.ErrActualsPostingFailed)
	})

	t.Run("period of another owner", func(t *testing.T) {
		f := newBudgetFixture(entity.BudgetPeriodTypeActuals)

		_, err := f.useCase(true).Execute(context.Background(), ApproveActualsInput{OwnerID: uuid.New(), PeriodID: f.period.ID})

		assert.Equal(t, domainerror.ErrCodeBudgetPeriodNotFound, budgetErrorCode(t, err))
	})
}
