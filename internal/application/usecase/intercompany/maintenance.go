// Package intercompany contains the operator-invoked intercompany maintenance use cases.
// Every pass is a dry run unless Apply is set.
package intercompany

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// Maintenance operations reported to metrics.
const (
	OperationNormalize   = "normalize"
	OperationDeduplicate = "deduplicate"
	OperationMirror      = "mirror"
	OperationMigrate     = "migrate"
)

// CompanyMaintenanceInput is the input of a company-scoped maintenance pass.
type CompanyMaintenanceInput struct {
	OwnerID   uuid.UUID
	CompanyID uuid.UUID
	Apply     bool
}

// ChangeOutput describes one rewritten row.
type ChangeOutput struct {
	TransactionID         uuid.UUID
	CompanyID             uuid.UUID
	Date                  time.Time
	Description           string
	Direction             entity.TransferDirection
	Signal                finance.DirectionSignal
	CategoryBefore        string
	CategoryAfter         string
	AmountBefore          decimal.Decimal
	AmountAfter           decimal.Decimal
	CounterpartyCompanyID *uuid.UUID
}

// SkippedOutput describes a row a pass could not handle.
type SkippedOutput struct {
	TransactionID uuid.UUID
	CompanyID     uuid.UUID
	Date          time.Time
	Amount        decimal.Decimal
	Description   string
	Reason        string
}

func toChangeOutputs(changes []finance.TransferChange) []ChangeOutput {
	outputs := make([]ChangeOutput, len(changes))
	for i, c := range changes {
		outputs[i] = ChangeOutput{
			TransactionID:         c.Before.ID,
			CompanyID:             c.Before.CompanyID,
			Date:                  c.Before.Date,
			Description:           c.Before.Description,
			Direction:             c.Direction,
			Signal:                c.Signal,
			CategoryBefore:        c.Before.Category,
			CategoryAfter:         c.After.Category,
			AmountBefore:          c.Before.Amount,
			AmountAfter:           c.After.Amount,
			CounterpartyCompanyID: c.After.CounterpartyCompanyID,
		}
	}
	return outputs
}

func toSkippedOutput(tx *entity.Transaction, reason string) SkippedOutput {
	return SkippedOutput{
		TransactionID: tx.ID,
		CompanyID:     tx.CompanyID,
		Date:          tx.Date,
		Amount:        tx.Amount,
		Description:   tx.Description,
		Reason:        reason,
	}
}

func toSkippedOutputs(skipped []finance.SkippedTransfer) []SkippedOutput {
	outputs := make([]SkippedOutput, len(skipped))
	for i, s := range skipped {
		outputs[i] = toSkippedOutput(s.Transaction, s.Reason)
	}
	return outputs
}

func changedRows(changes []finance.TransferChange) []*entity.Transaction {
	rows := make([]*entity.Transaction, len(changes))
	for i, c := range changes {
		rows[i] = c.After
	}
	return rows
}

// loadOwnerLedgers returns one ledger per company of the owner holding only its
// intercompany rows.
func loadOwnerLedgers(ctx context.Context, companyRepo adapter.CompanyRepository, transactionRepo adapter.TransactionRepository, ownerID uuid.UUID) ([]entity.CompanyLedger, error) {
	companies, err := companyRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}

	ids := make([]uuid.UUID, len(companies))
	ledgers := make([]entity.CompanyLedger, len(companies))
	index := make(map[uuid.UUID]int, len(companies))
	for i, c := range companies {
		ids[i] = c.ID
		index[c.ID] = i
		ledgers[i] = entity.CompanyLedger{CompanyID: c.ID, Name: c.Name, OpeningCash: c.OpeningCash}
	}
	if len(ids) == 0 {
		return ledgers, nil
	}

	transfers, err := transactionRepo.FindIntercompanyByCompanies(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intercompany transactions: %w", err)
	}
	for _, tx := range transfers {
		if i, ok := index[tx.CompanyID]; ok {
			ledgers[i].Transactions = append(ledgers[i].Transactions, tx)
		}
	}
	return ledgers, nil
}

func maintenanceFailed(operation string, err error) error {
	return domainerror.NewIntercompanyError(
		domainerror.ErrCodeMaintenanceFailed,
		operation+" batch rolled back",
		fmt.Errorf("%w: %v", domainerror.ErrMaintenanceFailed, err),
	)
}

// afterApply records the applied batch and drops cached consolidations.
func afterApply(ctx context.Context, cache adapter.StatementCache, metrics adapter.MetricsRecorder, ownerID uuid.UUID, operation string, rows int) {
	metrics.ObserveMaintenance(operation, rows)
	if err := cache.InvalidateOwner(ctx, ownerID); err != nil {
		slog.Warn("Failed to invalidate consolidation cache",
			"ownerID", ownerID,
			"error", err,
		)
	}
	slog.Info("Intercompany maintenance applied",
		"ownerID", ownerID,
		"operation", operation,
		"rows", rows,
	)
}
