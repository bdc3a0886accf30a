package intercompany

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// DuplicateGroupOutput is one set of rows sharing a duplicate key.
type DuplicateGroupOutput struct {
	Key          string
	KeptID       uuid.UUID
	DuplicateIDs []uuid.UUID
}

// DeduplicateTransfersOutput represents the output of a deduplication pass.
type DeduplicateTransfersOutput struct {
	CompanyID uuid.UUID
	Applied   bool
	Groups    []DuplicateGroupOutput
	Removed   int64
}

// DeduplicateTransfersUseCase removes duplicate intercompany rows of a company,
// keeping the earliest of each group.
type DeduplicateTransfersUseCase struct {
	companyRepo     adapter.CompanyRepository
	transactionRepo adapter.TransactionRepository
	cache           adapter.StatementCache
	metrics         adapter.MetricsRecorder
}

// NewDeduplicateTransfersUseCase creates a new DeduplicateTransfersUseCase instance.
func NewDeduplicateTransfersUseCase(
	companyRepo adapter.CompanyRepository,
	transactionRepo adapter.TransactionRepository,
	cache adapter.StatementCache,
	metrics adapter.MetricsRecorder,
) *DeduplicateTransfersUseCase {
	return &DeduplicateTransfersUseCase{
		companyRepo:     companyRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		metrics:         metrics,
	}
}

// Execute runs the deduplication pass.
func (uc *DeduplicateTransfersUseCase) Execute(ctx context.Context, input CompanyMaintenanceInput) (*DeduplicateTransfersOutput, error) {
	owned, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	transfers, err := uc.transactionRepo.FindIntercompanyByCompanies(ctx, []uuid.UUID{owned.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intercompany transactions: %w", err)
	}

	report := finance.FindDuplicateTransfers(transfers)

	output := &DeduplicateTransfersOutput{
		CompanyID: owned.ID,
		Groups:    make([]DuplicateGroupOutput, len(report.Groups)),
	}
	for i, group := range report.Groups {
		ids := make([]uuid.UUID, len(group.Duplicates))
		for j, dup := range group.Duplicates {
			ids[j] = dup.ID
		}
		output.Groups[i] = DuplicateGroupOutput{Key: group.Key, KeptID: group.Kept.ID, DuplicateIDs: ids}
	}

	if !input.Apply || len(report.Remove) == 0 {
		return output, nil
	}

	removed, err := uc.transactionRepo.DeleteByIDs(ctx, owned.ID, report.Remove)
	if err != nil {
		return nil, maintenanceFailed(OperationDeduplicate, err)
	}
	output.Applied = true
	output.Removed = removed
	afterApply(ctx, uc.cache, uc.metrics, input.OwnerID, OperationDeduplicate, int(removed))

	return output, nil
}
