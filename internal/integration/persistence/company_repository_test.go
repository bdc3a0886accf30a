package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

func TestCompanyRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	beta := seedCompany(t, db, "Beta")
	alpha := entity.NewCompany(beta.OwnerID, "Alpha", decimal.NewFromInt(250))
	require.NoError(t, repo.Create(ctx, alpha))

	companies, err := repo.FindByOwner(ctx, beta.OwnerID)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Alpha", companies[0].Name)
	assert.True(t, companies[0].OpeningCash.Equal(decimal.NewFromInt(250)))

	exists, err := repo.ExistsByOwnerAndName(ctx, beta.OwnerID, "alpha")
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(ctx, entity.NewCompany(beta.OwnerID, "Alpha", decimal.Zero))
	assert.ErrorIs(t, err, domainerror.ErrCompanyNameTaken)

	found, err := repo.FindByID(ctx, alpha.ID)
	require.NoError(t, err)
	assert.Equal(t, alpha.OwnerID, found.OwnerID)
}
