package intercompany

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/finance"
	"github.com/ventureboard/backend/internal/domain/valueobject"
)

// NormalizeTransfersOutput represents the output of a normalization pass.
type NormalizeTransfersOutput struct {
	CompanyID uuid.UUID
	Applied   bool
	Changed   []ChangeOutput
	Unknown   []SkippedOutput
	Unchanged int
}

// NormalizeTransfersUseCase forces sign and category of a company's intercompany
// rows to agree with their direction.
type NormalizeTransfersUseCase struct {
	companyRepo     adapter.CompanyRepository
	transactionRepo adapter.TransactionRepository
	cache           adapter.StatementCache
	metrics         adapter.MetricsRecorder
	matching        valueobject.MatchingConfig
}

// NewNormalizeTransfersUseCase creates a new NormalizeTransfersUseCase instance.
func NewNormalizeTransfersUseCase(
	companyRepo adapter.CompanyRepository,
	transactionRepo adapter.TransactionRepository,
	cache adapter.StatementCache,
	metrics adapter.MetricsRecorder,
	matching valueobject.MatchingConfig,
) *NormalizeTransfersUseCase {
	return &NormalizeTransfersUseCase{
		companyRepo:     companyRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		metrics:         metrics,
		matching:        matching,
	}
}

// Execute runs the normalization pass.
func (uc *NormalizeTransfersUseCase) Execute(ctx context.Context, input CompanyMaintenanceInput) (*NormalizeTransfersOutput, error) {
	owned, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	transfers, err := uc.transactionRepo.FindIntercompanyByCompanies(ctx, []uuid.UUID{owned.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intercompany transactions: %w", err)
	}

	report := finance.NormalizeTransfers(transfers, uc.matching)

	output := &NormalizeTransfersOutput{
		CompanyID: owned.ID,
		Changed:   toChangeOutputs(report.Changed),
		Unknown:   make([]SkippedOutput, len(report.Unknown)),
		Unchanged: report.Unchanged,
	}
	for i, tx := range report.Unknown {
		output.Unknown[i] = toSkippedOutput(tx, "transfer direction unknown")
	}

	if !input.Apply || len(report.Changed) == 0 {
		return output, nil
	}

	if err := uc.transactionRepo.UpdateTransfers(ctx, changedRows(report.Changed)); err != nil {
		return nil, maintenanceFailed(OperationNormalize, err)
	}
	output.Applied = true
	afterApply(ctx, uc.cache, uc.metrics, input.OwnerID, OperationNormalize, len(report.Changed))

	return output, nil
}
