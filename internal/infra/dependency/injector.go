// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ventureboard/backend/config"
	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/budget"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/application/usecase/consolidation"
	"github.com/ventureboard/backend/internal/application/usecase/intercompany"
	"github.com/ventureboard/backend/internal/application/usecase/statement"
	"github.com/ventureboard/backend/internal/application/usecase/transaction"
	"github.com/ventureboard/backend/internal/infra/metrics"
	"github.com/ventureboard/backend/internal/infra/server/router"
	"github.com/ventureboard/backend/internal/integration/adapters"
	"github.com/ventureboard/backend/internal/integration/cache"
	"github.com/ventureboard/backend/internal/integration/email"
	"github.com/ventureboard/backend/internal/integration/email/templates"
	"github.com/ventureboard/backend/internal/integration/entrypoint/controller"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
	"github.com/ventureboard/backend/internal/integration/persistence"
)

const defaultRateLimitWindow = time.Minute

// UseCases holds every application use case. The HTTP router and the
// maintenance CLI are both built on it.
type UseCases struct {
	CreateCompany     *company.CreateCompanyUseCase
	ListCompanies     *company.ListCompaniesUseCase
	CreateTransaction *transaction.CreateTransactionUseCase
	ListTransactions  *transaction.ListTransactionsUseCase

	GetStatements         *statement.GetStatementsUseCase
	RecalculateStatements *statement.RecalculateStatementsUseCase
	ConsolidatePortfolio  *consolidation.ConsolidatePortfolioUseCase

	NormalizeTransfers    *intercompany.NormalizeTransfersUseCase
	DeduplicateTransfers  *intercompany.DeduplicateTransfersUseCase
	MirrorTransfers       *intercompany.MirrorTransfersUseCase
	MigrateTransferFields *intercompany.MigrateTransferFieldsUseCase

	CreateBudgetPeriod   *budget.CreateBudgetPeriodUseCase
	CreateBudgetCategory *budget.CreateBudgetCategoryUseCase
	CreateBudgetLine     *budget.CreateBudgetLineUseCase
	ListBudgetLines      *budget.ListBudgetLinesUseCase
	ApproveActuals       *budget.ApproveActualsUseCase
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	UseCases    *UseCases
	Router      *router.Router
	RateLimiter *middleware.RateLimiter
}

// Options carries the optional infrastructure an injector is built with.
type Options struct {
	// Redis backs the consolidation cache. Nil disables caching.
	Redis *redis.Client
	// Registerer receives the statement metrics. Nil uses the prometheus default.
	Registerer prometheus.Registerer
	// EmailSender overrides the Resend client, mainly for tests.
	EmailSender adapter.EmailSender
}

// NewUseCases wires repositories, adapters and use cases according to the feature set.
func NewUseCases(cfg *config.Config, db *gorm.DB, opts Options) *UseCases {
	userRepo := persistence.NewUserRepository(db)
	companyRepo := persistence.NewCompanyRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	statementRepo := persistence.NewStatementRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)

	statementCache := newStatementCache(cfg, opts.Redis)
	recorder := metrics.NewStatementMetrics(opts.Registerer)
	notifier, notifyEnabled := newImbalanceNotifier(cfg, opts.EmailSender)
	matching := cfg.MatchingConfig()

	return &UseCases{
		CreateCompany:     company.NewCreateCompanyUseCase(companyRepo),
		ListCompanies:     company.NewListCompaniesUseCase(companyRepo),
		CreateTransaction: transaction.NewCreateTransactionUseCase(transactionRepo, companyRepo, statementCache),
		ListTransactions:  transaction.NewListTransactionsUseCase(transactionRepo, companyRepo),

		GetStatements:         statement.NewGetStatementsUseCase(companyRepo, transactionRepo, statementRepo),
		RecalculateStatements: statement.NewRecalculateStatementsUseCase(companyRepo, transactionRepo, statementRepo, statementCache, recorder),
		ConsolidatePortfolio:  consolidation.NewConsolidatePortfolioUseCase(
			companyRepo,
			transactionRepo,
			statementRepo,
			userRepo,
			statementCache,
			notifier,
			recorder,
			matching,
			notifyEnabled,
		),

		NormalizeTransfers:    intercompany.NewNormalizeTransfersUseCase(companyRepo, transactionRepo, statementCache, recorder, matching),
		DeduplicateTransfers:  intercompany.NewDeduplicateTransfersUseCase(companyRepo, transactionRepo, statementCache, recorder),
		MirrorTransfers:       intercompany.NewMirrorTransfersUseCase(companyRepo, transactionRepo, statementCache, recorder, matching),
		MigrateTransferFields: intercompany.NewMigrateTransferFieldsUseCase(companyRepo, transactionRepo, statementCache, recorder, matching),

		CreateBudgetPeriod:   budget.NewCreateBudgetPeriodUseCase(budgetRepo, companyRepo),
		CreateBudgetCategory: budget.NewCreateBudgetCategoryUseCase(budgetRepo, companyRepo),
		CreateBudgetLine:     budget.NewCreateBudgetLineUseCase(budgetRepo, companyRepo),
		ListBudgetLines:      budget.NewListBudgetLinesUseCase(budgetRepo, companyRepo),
		ApproveActuals:       budget.NewApproveActualsUseCase(budgetRepo, companyRepo, statementCache, cfg.Features.BudgetActuals),
	}
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	useCases := NewUseCases(cfg, db, opts)

	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	var cacheHealthChecker controller.HealthCheck
	if opts.Redis != nil && cfg.Features.StatementCache {
		cacheHealthChecker = func(ctx context.Context) bool {
			return opts.Redis.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(func(ctx context.Context) bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.PingContext(ctx) == nil
	}, cacheHealthChecker)

	companyController := controller.NewCompanyController(useCases.CreateCompany, useCases.ListCompanies)
	transactionController := controller.NewTransactionController(useCases.CreateTransaction, useCases.ListTransactions)
	statementController := controller.NewStatementController(
		useCases.GetStatements,
		useCases.RecalculateStatements,
		useCases.ConsolidatePortfolio,
	)
	intercompanyController := controller.NewIntercompanyController(
		useCases.NormalizeTransfers,
		useCases.DeduplicateTransfers,
		useCases.MirrorTransfers,
		useCases.MigrateTransferFields,
	)
	budgetController := controller.NewBudgetController(
		useCases.CreateBudgetPeriod,
		useCases.CreateBudgetCategory,
		useCases.CreateBudgetLine,
		useCases.ListBudgetLines,
		useCases.ApproveActuals,
	)

	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var maintenanceRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		maintenanceRateLimiter = middleware.NewRateLimiterWithConfig(1000, defaultRateLimitWindow)
	} else {
		maintenanceRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		companyController,
		transactionController,
		statementController,
		intercompanyController,
		budgetController,
		maintenanceRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		UseCases:    useCases,
		Router:      r,
		RateLimiter: maintenanceRateLimiter,
	}
}

func newStatementCache(cfg *config.Config, client *redis.Client) adapter.StatementCache {
	if !cfg.Features.StatementCache || client == nil {
		return cache.NewNoopStatementCache()
	}
	return cache.NewRedisStatementCache(client, cfg.Statements.CacheTTL)
}

// newImbalanceNotifier returns the notifier and whether notifications are on.
// Notifications stay off when the feature is disabled or no sender is available.
func newImbalanceNotifier(cfg *config.Config, sender adapter.EmailSender) (adapter.ImbalanceNotifier, bool) {
	if !cfg.Features.ImbalanceNotifications {
		return nil, false
	}

	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("Imbalance notifications enabled without RESEND_API_KEY, disabling")
			return nil, false
		}
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		slog.Error("Failed to load email templates, disabling imbalance notifications", "error", err)
		return nil, false
	}

	return email.NewImbalanceNotifier(sender, renderer, cfg.Email.AppBaseURL), true
}
