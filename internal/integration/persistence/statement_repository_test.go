package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/domain/finance"
)

func snapshotsFor(companyID uuid.UUID, ledger []*entity.Transaction) []*entity.StatementSnapshot {
	periods := finance.CalculateSeries(ledger, decimal.Zero, finance.MonthlyPeriods(day("2025-01-01"), day("2025-02-28")))
	snapshots := make([]*entity.StatementSnapshot, len(periods))
	for i, p := range periods {
		snapshots[i] = &entity.StatementSnapshot{
			ID:           uuid.New(),
			CompanyID:    companyID,
			PeriodStart:  p.Period.Start,
			PeriodEnd:    p.Period.End,
			Statements:   p,
			CalculatedAt: time.Now().UTC(),
		}
	}
	return snapshots
}

func TestStatementRepositoryReplaceForCompany(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatementRepository(db)
	ctx := context.Background()
	alpha := seedCompany(t, db, "Alpha")

	ledger := []*entity.Transaction{
		row(alpha.ID, "2025-01-05", entity.TransactionTypeEquity, "seed", 5000, "Seed"),
		row(alpha.ID, "2025-02-10", entity.TransactionTypeRevenue, "services", 800, "Feb"),
	}

	first := snapshotsFor(alpha.ID, ledger)
	require.NoError(t, repo.ReplaceForCompany(ctx, alpha.ID, nil, first))

	stored, err := repo.FindByCompany(ctx, alpha.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[1].Statements.CashFlow.EndingCash.Equal(first[1].Statements.CashFlow.EndingCash))
	assert.True(t, stored[0].PeriodStart.Equal(day("2025-01-01")))

	t.Run("failed replace keeps the previous statements", func(t *testing.T) {
		broken := snapshotsFor(alpha.ID, ledger)
		broken[1].ID = broken[0].ID

		err := repo.ReplaceForCompany(ctx, alpha.ID, nil, broken)
		require.Error(t, err)

		after, err := repo.FindByCompany(ctx, alpha.ID)
		require.NoError(t, err)
		require.Len(t, after, 2)
		assert.Equal(t, stored[0].ID, after[0].ID)
	})

	t.Run("successful replace swaps every row", func(t *testing.T) {
		next := snapshotsFor(alpha.ID, ledger)
		require.NoError(t, repo.ReplaceForCompany(ctx, alpha.ID, nil, next))

		after, err := repo.FindByCompany(ctx, alpha.ID)
		require.NoError(t, err)
		require.Len(t, after, 2)
		assert.Equal(t, next[0].ID, after[0].ID)
	})

	t.Run("windowed replace keeps periods outside the window", func(t *testing.T) {
		full := snapshotsFor(alpha.ID, ledger)
		require.NoError(t, repo.ReplaceForCompany(ctx, alpha.ID, nil, full))

		window := &entity.StatementPeriod{Start: day("2025-02-01"), End: day("2025-02-28")}
		february := snapshotsFor(alpha.ID, ledger)[1:]
		require.NoError(t, repo.ReplaceForCompany(ctx, alpha.ID, window, february))

		after, err := repo.FindByCompany(ctx, alpha.ID)
		require.NoError(t, err)
		require.Len(t, after, 2)
		assert.Equal(t, full[0].ID, after[0].ID)
		assert.Equal(t, february[0].ID, after[1].ID)
	})

	t.Run("windowed replace rejects snapshots outside the window", func(t *testing.T) {
		before, err := repo.FindByCompany(ctx, alpha.ID)
		require.NoError(t, err)

		window := &entity.StatementPeriod{Start: day("2025-02-01"), End: day("2025-02-28")}
		err = repo.ReplaceForCompany(ctx, alpha.ID, window, snapshotsFor(alpha.ID, ledger))
		require.Error(t, err)

		after, err := repo.FindByCompany(ctx, alpha.ID)
		require.NoError(t, err)
		require.Len(t, after, len(before))
		assert.Equal(t, before[0].ID, after[0].ID)
		assert.Equal(t, before[1].ID, after[1].ID)
	})
}

func TestStatementRepositoryConsolidationRuns(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatementRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	latest, err := repo.FindLatestConsolidationRun(ctx, ownerID)
	require.NoError(t, err)
	assert.Nil(t, latest)

	older := &entity.ConsolidationRun{ID: uuid.New(), OwnerID: ownerID, IsValid: true, Result: []byte(`{"isValid":true}`), CreatedAt: time.Now().Add(-time.Hour).UTC()}
	newer := &entity.ConsolidationRun{ID: uuid.New(), OwnerID: ownerID, IsValid: false, Result: []byte(`{"isValid":false}`), CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.SaveConsolidationRun(ctx, older))
	require.NoError(t, repo.SaveConsolidationRun(ctx, newer))

	latest, err = repo.FindLatestConsolidationRun(ctx, ownerID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newer.ID, latest.ID)
	assert.JSONEq(t, `{"isValid":false}`, string(latest.Result))
}
