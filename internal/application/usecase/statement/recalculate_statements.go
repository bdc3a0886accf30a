// Package statement contains financial statement use cases.
package statement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// Recalculation results reported to metrics.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// RecalculateStatementsInput represents the input for recalculating stored statements.
// Without From/To the range spans the company's first to last transaction and every
// stored snapshot is replaced; with either bound only the snapshots overlapping the
// range are.
type RecalculateStatementsInput struct {
	OwnerID   uuid.UUID
	CompanyID uuid.UUID
	From      *time.Time
	To        *time.Time
}

// RecalculateStatementsOutput represents the output of a recalculation.
type RecalculateStatementsOutput struct {
	CompanyID    uuid.UUID
	Periods      []entity.Statements
	Totals       entity.Statements
	CalculatedAt time.Time
}

// RecalculateStatementsUseCase folds the ledger into monthly statements and
// atomically replaces the stored copies.
type RecalculateStatementsUseCase struct {
	companyRepo     adapter.CompanyRepository
	transactionRepo adapter.TransactionRepository
	statementRepo   adapter.StatementRepository
	cache           adapter.StatementCache
	metrics         adapter.MetricsRecorder
}

// NewRecalculateStatementsUseCase creates a new RecalculateStatementsUseCase instance.
func NewRecalculateStatementsUseCase(
	companyRepo adapter.CompanyRepository,
	transactionRepo adapter.TransactionRepository,
	statementRepo adapter.StatementRepository,
	cache adapter.StatementCache,
	metrics adapter.MetricsRecorder,
) *RecalculateStatementsUseCase {
	return &RecalculateStatementsUseCase{
		companyRepo:     companyRepo,
		transactionRepo: transactionRepo,
		statementRepo:   statementRepo,
		cache:           cache,
		metrics:         metrics,
	}
}

// Execute performs the recalculation.
func (uc *RecalculateStatementsUseCase) Execute(ctx context.Context, input RecalculateStatementsInput) (*RecalculateStatementsOutput, error) {
	start := time.Now()

	owned, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByCompany(ctx, owned.ID, adapter.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	from, to := statementRange(transactions, input.From, input.To)
	if to.Before(from) {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeInvalidAsOfDate,
			"'to' must not be before 'from'",
			nil,
		)
	}

	calculatedAt := time.Now().UTC()
	periods := finance.CalculateSeries(transactions, owned.OpeningCash, finance.MonthlyPeriods(from, to))

	snapshots := make([]*entity.StatementSnapshot, len(periods))
	for i, statements := range periods {
		snapshots[i] = &entity.StatementSnapshot{
			ID:           uuid.New(),
			CompanyID:    owned.ID,
			PeriodStart:  statements.Period.Start,
			PeriodEnd:    statements.Period.End,
			Statements:   statements,
			CalculatedAt: calculatedAt,
		}
	}

	var window *entity.StatementPeriod
	if input.From != nil || input.To != nil {
		window = &entity.StatementPeriod{Start: from, End: to}
	}

	if err := uc.statementRepo.ReplaceForCompany(ctx, owned.ID, window, snapshots); err != nil {
		uc.metrics.ObserveRecalculation(ResultFailure, time.Since(start))
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementReplaceFailed,
			"failed to store recalculated statements",
			fmt.Errorf("%w: %v", domainerror.ErrStatementReplaceFailed, err),
		)
	}

	if err := uc.cache.InvalidateOwner(ctx, input.OwnerID); err != nil {
		slog.Warn("Failed to invalidate consolidation cache",
			"ownerID", input.OwnerID,
			"error", err,
		)
	}

	uc.metrics.ObserveRecalculation(ResultSuccess, time.Since(start))
	slog.Info("Statements recalculated",
		"companyID", owned.ID,
		"periods", len(periods),
		"transactions", len(transactions),
	)

	return &RecalculateStatementsOutput{
		CompanyID:    owned.ID,
		Periods:      periods,
		Totals:       finance.CalculateRange(transactions, owned.OpeningCash, from, to),
		CalculatedAt: calculatedAt,
	}, nil
}

// statementRange resolves the recalculation range from the request and the ledger.
func statementRange(transactions []*entity.Transaction, from, to *time.Time) (time.Time, time.Time) {
	today := entity.DateOnly(time.Now().UTC())
	sorted := finance.SortTransactions(transactions)

	start, end := today, today
	if len(sorted) > 0 {
		start = entity.DateOnly(sorted[0].Date)
		end = entity.DateOnly(sorted[len(sorted)-1].Date)
	}
	if from != nil {
		start = entity.DateOnly(*from)
	}
	if to != nil {
		end = entity.DateOnly(*to)
	}
	return start, end
}
