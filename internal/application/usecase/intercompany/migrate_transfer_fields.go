package intercompany

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/finance"
	"github.com/ventureboard/backend/internal/domain/valueobject"
)

// MigrateTransferFieldsOutput represents the output of a field migration pass.
type MigrateTransferFieldsOutput struct {
	CompanyID  uuid.UUID
	Applied    bool
	Changed    []ChangeOutput
	Unresolved []SkippedOutput
}

// MigrateTransferFieldsUseCase fills the structured direction and counterparty of
// a company's legacy intercompany rows from their descriptions. Counterparties are
// resolved against every company of the owner.
type MigrateTransferFieldsUseCase struct {
	companyRepo     adapter.CompanyRepository
	transactionRepo adapter.TransactionRepository
	cache           adapter.StatementCache
	metrics         adapter.MetricsRecorder
	matching        valueobject.MatchingConfig
}

// NewMigrateTransferFieldsUseCase creates a new MigrateTransferFieldsUseCase instance.
func NewMigrateTransferFieldsUseCase(
	companyRepo adapter.CompanyRepository,
	transactionRepo adapter.TransactionRepository,
	cache adapter.StatementCache,
	metrics adapter.MetricsRecorder,
	matching valueobject.MatchingConfig,
) *MigrateTransferFieldsUseCase {
	return &MigrateTransferFieldsUseCase{
		companyRepo:     companyRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		metrics:         metrics,
		matching:        matching,
	}
}

// Execute runs the migration pass.
func (uc *MigrateTransferFieldsUseCase) Execute(ctx context.Context, input CompanyMaintenanceInput) (*MigrateTransferFieldsOutput, error) {
	owned, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	ledgers, err := loadOwnerLedgers(ctx, uc.companyRepo, uc.transactionRepo, input.OwnerID)
	if err != nil {
		return nil, err
	}

	report := finance.MigrateTransferFields(ledgers, uc.matching)

	var changes []finance.TransferChange
	for _, c := range report.Changed {
		if c.Before.CompanyID == owned.ID {
			changes = append(changes, c)
		}
	}
	var unresolved []finance.SkippedTransfer
	for _, s := range report.Unresolved {
		if s.Transaction.CompanyID == owned.ID {
			unresolved = append(unresolved, s)
		}
	}

	output := &MigrateTransferFieldsOutput{
		CompanyID:  owned.ID,
		Changed:    toChangeOutputs(changes),
		Unresolved: toSkippedOutputs(unresolved),
	}

	if !input.Apply || len(changes) == 0 {
		return output, nil
	}

	if err := uc.transactionRepo.UpdateTransfers(ctx, changedRows(changes)); err != nil {
		return nil, maintenanceFailed(OperationMigrate, err)
	}
	output.Applied = true
	afterApply(ctx, uc.cache, uc.metrics, input.OwnerID, OperationMigrate, len(changes))

	return output, nil
}
