package dependency

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ventureboard/backend/config"
	"github.com/ventureboard/backend/internal/application/adapter/mocks"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/application/usecase/consolidation"
	"github.com/ventureboard/backend/internal/integration/persistence/model"
)

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

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = "injector-test-secret"
	return cfg
}

func TestNewUseCases_WiresEveryUseCase(t *testing.T) {
	useCases := NewUseCases(testConfig(), newTestDB(t), Options{Registerer: prometheus.NewRegistry()})

	assert.NotNil(t, useCases.CreateCompany)
	assert.NotNil(t, useCases.ListCompanies)
	assert.NotNil(t, useCases.CreateTransaction)
	assert.NotNil(t, useCases.ListTransactions)
	assert.NotNil(t, useCases.GetStatements)
	assert.NotNil(t, useCases.RecalculateStatements)
	assert.NotNil(t, useCases.ConsolidatePortfolio)
	assert.NotNil(t, useCases.NormalizeTransfers)
	assert.NotNil(t, useCases.DeduplicateTransfers)
	assert.NotNil(t, useCases.MirrorTransfers)
	assert.NotNil(t, useCases.MigrateTransferFields)
	assert.NotNil(t, useCases.CreateBudgetPeriod)
	assert.NotNil(t, useCases.CreateBudgetCategory)
	assert.NotNil(t, useCases.CreateBudgetLine)
	assert.NotNil(t, useCases.ListBudgetLines)
	assert.NotNil(t, useCases.ApproveActuals)
}

func TestNewUseCases_ConsolidationIsCachedInRedis(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	ownerID := uuid.New()
	useCases := NewUseCases(testConfig(), newTestDB(t), Options{
		Redis:      client,
		Registerer: prometheus.NewRegistry(),
	})

	_, err := useCases.CreateCompany.Execute(ctx, company.CreateCompanyInput{
		OwnerID:     ownerID,
		Name:        "Alpha",
		OpeningCash: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	first, err := useCases.ConsolidatePortfolio.Execute(ctx, consolidation.ConsolidatePortfolioInput{OwnerID: ownerID})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.True(t, server.Exists("ventureboard:consolidation:"+ownerID.String()))

	second, err := useCases.ConsolidatePortfolio.Execute(ctx, consolidation.ConsolidatePortfolioInput{OwnerID: ownerID})
	require.NoError(t, err)
	assert.True(t, second.Cached)
}

func TestNewStatementCache_FallsBackToNoop(t *testing.T) {
	cfg := testConfig()
	cfg.Features.StatementCache = false

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := newStatementCache(cfg, client)
	require.NoError(t, cache.SetConsolidation(context.Background(), uuid.New(), nil))
	assert.Empty(t, server.Keys())

	cfg.Features.StatementCache = true
	assert.NotNil(t, newStatementCache(cfg, nil))
}

func TestNewImbalanceNotifier(t *testing.T) {
	t.Run("disabled by feature flag", func(t *testing.T) {
		cfg := testConfig()
		cfg.Features.ImbalanceNotifications = false

		notifier, enabled := newImbalanceNotifier(cfg, new(mocks.EmailSender))
		assert.Nil(t, notifier)
		assert.False(t, enabled)
	})

	t.Run("disabled without a sender or api key", func(t *testing.T) {
		cfg := testConfig()
		cfg.Features.ImbalanceNotifications = true
		cfg.Email.ResendAPIKey = ""

		notifier, enabled := newImbalanceNotifier(cfg, nil)
		assert.Nil(t, notifier)
		assert.False(t, enabled)
	})

	t.Run("enabled with an injected sender", func(t *testing.T) {
		cfg := testConfig()
		cfg.Features.ImbalanceNotifications = true

		notifier, enabled := newImbalanceNotifier(cfg, new(mocks.EmailSender))
		assert.NotNil(t, notifier)
		assert.True(t, enabled)
	})
}

func TestNewInjector_ServesHealthAndProtectsAPI(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	injector := NewInjector(testConfig(), newTestDB(t), Options{
		Redis:      client,
		Registerer: prometheus.NewRegistry(),
	})
	engine := injector.Router.Setup("test")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cache":"connected"`)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/consolidation", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.NotNil(t, injector.RateLimiter)
}
