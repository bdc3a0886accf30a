package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory database with every table migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func seedCompany(t *testing.T, db *gorm.DB, name string) *entity.Company {
	t.Helper()

	owner := &entity.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Name: "Owner", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), owner))

	company := entity.NewCompany(owner.ID, name, decimal.NewFromInt(1000))
	require.NoError(t, NewCompanyRepository(db).Create(context.Background(), company))
	return company
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func row(companyID uuid.UUID, date string, transactionType entity.TransactionType, category string, amount int64, description string) *entity.Transaction {
	return entity.NewTransaction(companyID, day(date), transactionType, category, decimal.NewFromInt(amount), description, entity.DefaultFlags(transactionType))
}
