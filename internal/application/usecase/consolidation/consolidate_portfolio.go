// Package consolidation contains the portfolio consolidation use case.
package consolidation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
	"github.com/ventureboard/backend/internal/domain/valueobject"
)

// ConsolidatePortfolioInput represents the input for consolidating an owner's companies.
type ConsolidatePortfolioInput struct {
	OwnerID uuid.UUID
	Refresh bool // bypass the cache
}

// ConsolidatePortfolioOutput represents the output of a consolidation.
type ConsolidatePortfolioOutput struct {
	Result finance.ConsolidationResult
	Cached bool
}

// ConsolidatePortfolioUseCase consolidates every company of one owner.
type ConsolidatePortfolioUseCase struct {
	companyRepo     adapter.CompanyRepository
	transactionRepo adapter.TransactionRepository
	statementRepo   adapter.StatementRepository
	userRepo        adapter.UserRepository
	cache           adapter.StatementCache
	notifier        adapter.ImbalanceNotifier
	metrics         adapter.MetricsRecorder
	matching        valueobject.MatchingConfig
	notifyEnabled   bool
}

// NewConsolidatePortfolioUseCase creates a new ConsolidatePortfolioUseCase instance.
func NewConsolidatePortfolioUseCase(
	companyRepo adapter.CompanyRepository,
	transactionRepo adapter.TransactionRepository,
	statementRepo adapter.StatementRepository,
	userRepo adapter.UserRepository,
	cache adapter.StatementCache,
	notifier adapter.ImbalanceNotifier,
	metrics adapter.MetricsRecorder,
	matching valueobject.MatchingConfig,
	notifyEnabled bool,
) *ConsolidatePortfolioUseCase {
	return &ConsolidatePortfolioUseCase{
		companyRepo:     companyRepo,
		transactionRepo: transactionRepo,
		statementRepo:   statementRepo,
		userRepo:        userRepo,
		cache:           cache,
		notifier:        notifier,
		metrics:         metrics,
		matching:        matching,
		notifyEnabled:   notifyEnabled,
	}
}

// Execute performs the consolidation.
func (uc *ConsolidatePortfolioUseCase) Execute(ctx context.Context, input ConsolidatePortfolioInput) (*ConsolidatePortfolioOutput, error) {
	if !input.Refresh {
		cached, err := uc.cache.GetConsolidation(ctx, input.OwnerID)
		if err != nil {
			slog.Warn("Consolidation cache read failed",
				"ownerID", input.OwnerID,
				"error", err,
			)
		}
		if cached != nil {
			return &ConsolidatePortfolioOutput{Result: *cached, Cached: true}, nil
		}
	}

	companies, err := uc.companyRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}
	if len(companies) == 0 {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeNoCompanies,
			"owner has no companies",
			domainerror.ErrNoCompaniesToConsolidate,
		)
	}

	ledgers, err := uc.loadLedgers(ctx, companies)
	if err != nil {
		return nil, err
	}

	result := finance.Consolidate(ledgers, uc.matching)
	uc.metrics.ObserveConsolidation(result.IsValid, len(result.Eliminations.Orphans))

	if err := uc.saveRun(ctx, input.OwnerID, &result); err != nil {
		return nil, err
	}

	if err := uc.cache.SetConsolidation(ctx, input.OwnerID, &result); err != nil {
		slog.Warn("Consolidation cache write failed",
			"ownerID", input.OwnerID,
			"error", err,
		)
	}

	if !result.IsValid {
		slog.Warn("Consolidation failed validation",
			"ownerID", input.OwnerID,
			"errors", result.Errors,
		)
		uc.notifyImbalance(ctx, input.OwnerID, &result)
	}

	slog.Info("Portfolio consolidated",
		"ownerID", input.OwnerID,
		"companies", len(companies),
		"eliminatedPairs", len(result.Eliminations.Pairs),
		"orphans", len(result.Eliminations.Orphans),
		"valid", result.IsValid,
	)

	return &ConsolidatePortfolioOutput{Result: result}, nil
}

func (uc *ConsolidatePortfolioUseCase) loadLedgers(ctx context.Context, companies []*entity.Company) ([]entity.CompanyLedger, error) {
	ids := make([]uuid.UUID, len(companies))
	ledgers := make([]entity.CompanyLedger, len(companies))
	index := make(map[uuid.UUID]int, len(companies))
	for i, c := range companies {
		ids[i] = c.ID
		index[c.ID] = i
		ledgers[i] = entity.CompanyLedger{
			CompanyID:   c.ID,
			Name:        c.Name,
			OpeningCash: c.OpeningCash,
		}
	}

	transactions, err := uc.transactionRepo.FindByCompanies(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	for _, tx := range transactions {
		if i, ok := index[tx.CompanyID]; ok {
			ledgers[i].Transactions = append(ledgers[i].Transactions, tx)
		}
	}
	return ledgers, nil
}

func (uc *ConsolidatePortfolioUseCase) saveRun(ctx context.Context, ownerID uuid.UUID, result *finance.ConsolidationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode consolidation result: %w", err)
	}

	run := &entity.ConsolidationRun{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		IsValid:   result.IsValid,
		Result:    payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.statementRepo.SaveConsolidationRun(ctx, run); err != nil {
		return fmt.Errorf("failed to store consolidation run: %w", err)
	}
	return nil
}

func (uc *ConsolidatePortfolioUseCase) notifyImbalance(ctx context.Context, ownerID uuid.UUID, result *finance.ConsolidationResult) {
	if !uc.notifyEnabled {
		return
	}

	owner, err := uc.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		slog.Warn("Failed to load owner for imbalance notification",
			"ownerID", ownerID,
			"error", err,
		)
		return
	}

	if err := uc.notifier.NotifyImbalance(ctx, owner, result); err != nil {
		slog.Warn("Failed to send imbalance notification",
			"ownerID", ownerID,
			"error", err,
		)
	}
}
