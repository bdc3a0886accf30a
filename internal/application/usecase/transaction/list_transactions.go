// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	OwnerID   uuid.UUID
	CompanyID uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID                    uuid.UUID
	CompanyID             uuid.UUID
	Date                  time.Time
	Type                  entity.TransactionType
	Category              string
	Amount                decimal.Decimal
	Description           string
	AffectsPL             bool
	AffectsCashFlow       bool
	AffectsBalance        bool
	Direction             entity.TransferDirection
	CounterpartyCompanyID *uuid.UUID
	Source                entity.TransactionSource
	SourceRef             *uuid.UUID
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Total        int
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	companyRepo     adapter.CompanyRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	companyRepo adapter.CompanyRepository,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		companyRepo:     companyRepo,
	}
}

// Execute lists the transactions of a company.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if _, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID); err != nil {
		return nil, err
	}

	filter := adapter.TransactionFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if input.Type != nil {
		canonical := input.Type.Canonical()
		filter.Type = &canonical
	}

	transactions, err := uc.transactionRepo.FindByCompany(ctx, input.CompanyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(transactions)),
		Total:        len(transactions),
	}
	for i, tx := range transactions {
		output.Transactions[i] = toTransactionOutput(tx)
	}
	return output, nil
}

func toTransactionOutput(tx *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:                    tx.ID,
		CompanyID:             tx.CompanyID,
		Date:                  tx.Date,
		Type:                  tx.Type,
		Category:              tx.Category,
		Amount:                tx.Amount,
		Description:           tx.Description,
		AffectsPL:             tx.AffectsPL,
		AffectsCashFlow:       tx.AffectsCashFlow,
		AffectsBalance:        tx.AffectsBalance,
		Direction:             tx.Direction,
		CounterpartyCompanyID: tx.CounterpartyCompanyID,
		Source:                tx.Source,
		SourceRef:             tx.SourceRef,
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.UpdatedAt,
	}
}
