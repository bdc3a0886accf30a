package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
	"github.com/ventureboard/backend/internal/integration/persistence/model"
)

type budgetSeed struct {
	company  *entity.Company
	period   *entity.BudgetPeriod
	category *entity.BudgetCategory
	lines    []*entity.BudgetLine
}

func seedBudget(t *testing.T, repo adapter.BudgetRepository, company *entity.Company) budgetSeed {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	period := &entity.BudgetPeriod{
		ID: uuid.New(), CompanyID: company.ID, Name: "Q1", Type: entity.BudgetPeriodTypeActuals,
		StartDate: day("2025-01-01"), EndDate: day("2025-03-31"), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.CreatePeriod(ctx, period))

	category := &entity.BudgetCategory{
		ID: uuid.New(), CompanyID: company.ID, Name: "Hosting", Type: entity.CategoryTypeExpense,
		StatementCategory: "infrastructure", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.CreateCategory(ctx, category))

	lines := []*entity.BudgetLine{
		entity.NewBudgetLine(period.ID, company.ID, category.ID, day("2025-02-01"), decimal.NewFromInt(120), "Feb"),
		entity.NewBudgetLine(period.ID, company.ID, category.ID, day("2025-01-01"), decimal.NewFromInt(100), "Jan"),
	}
	for _, line := range lines {
		require.NoError(t, repo.CreateLine(ctx, line))
	}

	return budgetSeed{company: company, period: period, category: category, lines: lines}
}

func TestBudgetRepositoryLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewBudgetRepository(db)
	ctx := context.Background()
	seed := seedBudget(t, repo, seedCompany(t, db, "Alpha"))

	period, err := repo.FindPeriodByID(ctx, seed.period.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetPeriodTypeActuals, period.Type)
	assert.True(t, period.EndDate.Equal(day("2025-03-31")))

	lines, err := repo.FindLinesByPeriod(ctx, seed.period.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Jan", lines[0].Notes, "lines come back in date order")

	categories, err := repo.FindCategoriesByCompany(ctx, seed.company.ID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "infrastructure", categories[0].StatementCategory)

	_, err = repo.FindPeriodByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrBudgetPeriodNotFound)
	_, err = repo.FindCategoryByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrBudgetCategoryNotFound)
}

func TestBudgetRepositoryPostActuals(t *testing.T) {
	db := newTestDB(t)
	repo := NewBudgetRepository(db)
	txRepo := NewTransactionRepository(db)
	ctx := context.Background()
	seed := seedBudget(t, repo, seedCompany(t, db, "Alpha"))
	categories := map[uuid.UUID]*entity.BudgetCategory{seed.category.ID: seed.category}
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	plan, err := finance.PlanActualsPosting(seed.period, seed.lines, categories, now)
	require.NoError(t, err)
	require.Len(t, plan.Postings, 2)

	t.Run("a line approved concurrently rolls back the whole batch", func(t *testing.T) {
		racing, err := finance.PlanActualsPosting(seed.period, seed.lines[1:], categories, now)
		require.NoError(t, err)
		require.NoError(t, repo.PostActuals(ctx, racing.Postings))

		err = repo.PostActuals(ctx, plan.Postings)
		require.ErrorIs(t, err, domainerror.ErrLineAlreadyApproved)

		lines, err := repo.FindLinesByPeriod(ctx, seed.period.ID)
		require.NoError(t, err)
		for _, line := range lines {
			if line.ID == seed.lines[0].ID {
				assert.False(t, line.IsApproved, "first line must stay unapproved")
				assert.Nil(t, line.TransactionID)
			}
		}

		rows, err := txRepo.FindByCompany(ctx, seed.company.ID, adapter.TransactionFilter{})
		require.NoError(t, err)
		assert.Len(t, rows, 1, "only the racing posting may exist")
	})

	t.Run("remaining line posts and links its transaction", func(t *testing.T) {
		remaining, err := finance.PlanActualsPosting(seed.period, seed.lines[:1], categories, now)
		require.NoError(t, err)
		require.NoError(t, repo.PostActuals(ctx, remaining.Postings))

		lines, err := repo.FindLinesByPeriod(ctx, seed.period.ID)
		require.NoError(t, err)
		for _, line := range lines {
			assert.True(t, line.IsApproved)
			require.NotNil(t, line.TransactionID)

			tx, err := txRepo.FindByID(ctx, *line.TransactionID)
			require.NoError(t, err)
			assert.Equal(t, entity.TransactionSourceBudgetActuals, tx.Source)
			assert.True(t, tx.Amount.Equal(line.Amount.Neg()))
			assert.Equal(t, "infrastructure", tx.Category)
		}
	})
}

func TestBudgetRepositoryPostActualsMidBatchFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewBudgetRepository(db)
	txRepo := NewTransactionRepository(db)
	ctx := context.Background()
	seed := seedBudget(t, repo, seedCompany(t, db, "Alpha"))
	categories := map[uuid.UUID]*entity.BudgetCategory{seed.category.ID: seed.category}
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	batch := make([]*entity.BudgetLine, 0, 5)
	for i, date := range []string{"2025-01-10", "2025-01-20", "2025-02-10", "2025-02-20", "2025-03-10"} {
		line := entity.NewBudgetLine(seed.period.ID, seed.company.ID, seed.category.ID, day(date), decimal.NewFromInt(int64(10*(i+1))), date)
		require.NoError(t, repo.CreateLine(ctx, line))
		batch = append(batch, line)
	}

	plan, err := finance.PlanActualsPosting(seed.period, batch, categories, now)
	require.NoError(t, err)
	require.Len(t, plan.Postings, 5)

	// another request approves the third line after the plan was built
	require.NoError(t, db.Model(&model.BudgetLineModel{}).
		Where("id = ?", batch[2].ID).
		Update("is_approved", true).Error)

	err = repo.PostActuals(ctx, plan.Postings)
	require.ErrorIs(t, err, domainerror.ErrLineAlreadyApproved)

	rows, err := txRepo.FindByCompany(ctx, seed.company.ID, adapter.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows, "no transaction of the batch may survive")

	lines, err := repo.FindLinesByPeriod(ctx, seed.period.ID)
	require.NoError(t, err)
	require.Len(t, lines, 7)
	for _, line := range lines {
		if line.ID == batch[2].ID {
			assert.True(t, line.IsApproved)
			continue
		}
		assert.False(t, line.IsApproved, "line %s must stay unapproved", line.Notes)
		assert.Nil(t, line.TransactionID)
	}
}
