package statement

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

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/adapter/mocks"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

func ledgerFor(companyID uuid.UUID) []*entity.Transaction {
	seed := entity.NewTransaction(companyID, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		entity.TransactionTypeEquity, "seed", decimal.NewFromInt(5000), "seed", entity.DefaultFlags(entity.TransactionTypeEquity))
	sale := entity.NewTransaction(companyID, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		entity.TransactionTypeRevenue, "services", decimal.NewFromInt(800), "", entity.DefaultFlags(entity.TransactionTypeRevenue))
	return []*entity.Transaction{sale, seed}
}

func TestRecalculateStatementsUseCase(t *testing.T) {
	ownerID := uuid.New()
	alpha := entity.NewCompany(ownerID, "Alpha", decimal.NewFromInt(100))

	t.Run("replaces stored statements with monthly snapshots", func(t *testing.T) {
		companyRepo := new(mocks.CompanyRepository)
		transactionRepo := new(mocks.TransactionRepository)
		statementRepo := new(mocks.StatementRepository)
		cache := new(mocks.StatementCache)
		metrics := new(mocks.MetricsRecorder)

		companyRepo.On("FindByID", mock.Anything, alpha.ID).Return(alpha, nil)
		transactionRepo.On("FindByCompany", mock.Anything, alpha.ID, adapter.TransactionFilter{}).Return(ledgerFor(alpha.ID), nil)
		statementRepo.On("ReplaceForCompany", mock.Anything, alpha.ID, (*entity.StatementPeriod)(nil), mock.MatchedBy(func(s []*entity.StatementSnapshot) bool {
			return len(s) == 2 && s[0].PeriodStart.Equal(time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
		})).Return(nil)
		cache.On("InvalidateOwner", mock.Anything, ownerID).Return(nil)
		metrics.On("ObserveRecalculation", ResultSuccess, mock.Anything).Return()

		uc := NewRecalculateStatementsUseCase(companyRepo, transactionRepo, statementRepo, cache, metrics)
		output, err := uc.Execute(context.Background(), RecalculateStatementsInput{OwnerID: ownerID, CompanyID: alpha.ID})

		require.NoError(t, err)
		require.Len(t, output.Periods, 2)
		assert.True(t, output.Periods[1].CashFlow.BeginningCash.Equal(output.Periods[0].CashFlow.EndingCash))
		assert.True(t, output.Totals.CashFlow.EndingCash.Equal(decimal.NewFromInt(5900)))
		assert.True(t, output.Totals.PL.Revenue.Equal(decimal.NewFromInt(800)))
		statementRepo.AssertExpectations(t)
		cache.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("bounded range replaces only its window", func(t *testing.T) {
		january := entity.NewTransaction(alpha.ID, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			entity.TransactionTypeRevenue, "services", decimal.NewFromInt(500), "", entity.DefaultFlags(entity.TransactionTypeRevenue))
		march := entity.NewTransaction(alpha.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			entity.TransactionTypeRevenue, "services", decimal.NewFromInt(700), "", entity.DefaultFlags(entity.TransactionTypeRevenue))
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

		companyRepo := new(mocks.CompanyRepository)
		transactionRepo := new(mocks.TransactionRepository)
		statementRepo := new(mocks.StatementRepository)
		cache := new(mocks.StatementCache)
		metrics := new(mocks.MetricsRecorder)

		companyRepo.On("FindByID", mock.Anything, alpha.ID).Return(alpha, nil)
		transactionRepo.On("FindByCompany", mock.Anything, alpha.ID, adapter.TransactionFilter{}).
			Return([]*entity.Transaction{march, january}, nil)
		statementRepo.On("ReplaceForCompany", mock.Anything, alpha.ID, &entity.StatementPeriod{Start: from, End: to},
			mock.MatchedBy(func(s []*entity.StatementSnapshot) bool {
				return len(s) == 1 && s[0].PeriodStart.Equal(from) && s[0].PeriodEnd.Equal(to)
			})).Return(nil)
		cache.On("InvalidateOwner", mock.Anything, ownerID).Return(nil)
		metrics.On("ObserveRecalculation", ResultSuccess, mock.Anything).Return()

		uc := NewRecalculateStatementsUseCase(companyRepo, transactionRepo, statementRepo, cache, metrics)
		output, err := uc.Execute(context.Background(), RecalculateStatementsInput{
			OwnerID: ownerID, CompanyID: alpha.ID, From: &from, To: &to,
		})

		require.NoError(t, err)
		statementRepo.AssertExpectations(t)

		totals := output.Totals
		require.NotNil(t, totals.Period)
		assert.True(t, totals.Period.Start.Equal(from))
		assert.True(t, totals.Period.End.Equal(to))
		assert.True(t, totals.PL.Revenue.Equal(decimal.NewFromInt(700)), "got %s", totals.PL.Revenue)
		assert.True(t, totals.CashFlow.BeginningCash.Equal(decimal.NewFromInt(600)), "got %s", totals.CashFlow.BeginningCash)
		assert.True(t, totals.CashFlow.EndingCash.Equal(decimal.NewFromInt(1300)), "got %s", totals.CashFlow.EndingCash)
		assert.True(t, totals.BalanceSheet.CashEquivalents.Equal(decimal.NewFromInt(1300)))
	})

	t.Run("replace failure surfaces as atomicity error", func(t *testing.T) {
		companyRepo := new(mocks.CompanyRepository)
		transactionRepo := new(mocks.TransactionRepository)
		statementRepo := new(mocks.StatementRepository)
		cache := new(mocks.StatementCache)
		metrics := new(mocks.MetricsRecorder)

		companyRepo.On("FindByID", mock.Anything, alpha.ID).Return(alpha, nil)
		transactionRepo.On("FindByCompany", mock.Anything, alpha.ID, adapter.TransactionFilter{}).Return(ledgerFor(alpha.ID), nil)
		statementRepo.On("ReplaceForCompany", mock.Anything, alpha.ID, mock.Anything, mock.Anything).Return(errors.New("connection reset"))
		metrics.On("ObserveRecalculation", ResultFailure, mock.Anything).Return()

		uc := NewRecalculateStatementsUseCase(companyRepo, transactionRepo, statementRepo, cache, metrics)
		_, err := uc.Execute(context.Background(), RecalculateStatementsInput{OwnerID: ownerID, CompanyID: alpha.ID})

		var stmtErr *domainerror.StatementError
		require.True(t, errors.As(err, &stmtErr))
		assert.Equal(t, domainerror.ErrCodeStatementReplaceFailed, stmtErr.Code)
		assert.ErrorIs(t, err, domainerror.ErrStatementReplaceFailed)
		cache.AssertNotCalled(t, "InvalidateOwner", mock.Anything, mock.Anything)
	})
}

func TestGetStatementsUseCase(t *testing.T) {
	ownerID := uuid.New()
	alpha := entity.NewCompany(ownerID, "Alpha", decimal.Zero)

	t.Run("no stored statements", func(t *testing.T) {
		companyRepo := new(mocks.CompanyRepository)
		statementRepo := new(mocks.StatementRepository)
		companyRepo.On("FindByID", mock.Anything, alpha.ID).Return(alpha, nil)
		statementRepo.On("FindByCompany", mock.Anything, alpha.ID).Return([]*entity.StatementSnapshot{}, nil)

		uc := NewGetStatementsUseCase(companyRepo, new(mocks.TransactionRepository), statementRepo)
		_, err := uc.Execute(context.Background(), GetStatementsInput{OwnerID: ownerID, CompanyID: alpha.ID})

		assert.ErrorIs(t, err, domainerror.ErrStatementsNotFound)
	})

	t.Run("as-of calculation reads the ledger up to the date", func(t *testing.T) {
		asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
		companyRepo := new(mocks.CompanyRepository)
		transactionRepo := new(mocks.TransactionRepository)
		companyRepo.On("FindByID", mock.Anything, alpha.ID).Return(alpha, nil)
		transactionRepo.On("FindByCompany", mock.Anything, alpha.ID, mock.MatchedBy(func(f adapter.TransactionFilter) bool {
			return f.EndDate != nil && f.EndDate.Equal(asOf)
		})).Return(ledgerFor(alpha.ID), nil)

		uc := NewGetStatementsUseCase(companyRepo, transactionRepo, new(mocks.StatementRepository))
		output, err := uc.Execute(context.Background(), GetStatementsInput{OwnerID: ownerID, CompanyID: alpha.ID, AsOf: &asOf})

		require.NoError(t, err)
		assert.Equal(t, SourceCalculated, output.Source)
		require.Len(t, output.Periods, 1)
		// the February sale is filtered out by the as-of date even if the repository returns it
		assert.True(t, output.Periods[0].PL.Revenue.IsZero())
	})
}
