// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxCategoryLength is the maximum allowed length for transaction categories.
	MaxCategoryLength = 64
)

// CreateTransactionInput represents the input for transaction creation.
// Nil flags fall back to the defaults of the transaction type.
type CreateTransactionInput struct {
	OwnerID               uuid.UUID
	CompanyID             uuid.UUID
	Date                  time.Time
	Type                  entity.TransactionType
	Category              string
	Amount                decimal.Decimal
	Description           string
	AffectsPL             *bool
	AffectsCashFlow       *bool
	AffectsBalance        *bool
	Direction             entity.TransferDirection
	CounterpartyCompanyID *uuid.UUID
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	companyRepo     adapter.CompanyRepository
	cache           adapter.StatementCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	companyRepo adapter.CompanyRepository,
	cache adapter.StatementCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		companyRepo:     companyRepo,
		cache:           cache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate description length
	if len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be one of revenue, expense, asset, liability, equity, intercompany_transfer",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if input.Category == "" || len(input.Category) > MaxCategoryLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			fmt.Sprintf("category must be between 1 and %d characters", MaxCategoryLength),
			domainerror.ErrInvalidCategory,
		)
	}

	if err := validateTransferFields(input); err != nil {
		return nil, err
	}

	if _, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID); err != nil {
		return nil, err
	}

	// Counterparty must be another company of the same owner
	if input.CounterpartyCompanyID != nil {
		counterparty, err := company.LoadOwnedCompany(ctx, uc.companyRepo, *input.CounterpartyCompanyID, input.OwnerID)
		if err != nil || counterparty.ID == input.CompanyID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeCounterpartyNotOwned,
				"counterparty must be another company of the same owner",
				domainerror.ErrCounterpartyNotOwned,
			)
		}
	}

	flags := entity.DefaultFlags(input.Type)
	if input.AffectsPL != nil {
		flags.AffectsPL = *input.AffectsPL
	}
	if input.AffectsCashFlow != nil {
		flags.AffectsCashFlow = *input.AffectsCashFlow
	}
	if input.AffectsBalance != nil {
		flags.AffectsBalance = *input.AffectsBalance
	}

	transaction := entity.NewTransaction(
		input.CompanyID,
		input.Date,
		input.Type,
		input.Category,
		input.Amount,
		input.Description,
		flags,
	)
	transaction.Direction = input.Direction
	transaction.CounterpartyCompanyID = input.CounterpartyCompanyID

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// Invalidation failures never fail the write
	if err := uc.cache.InvalidateOwner(ctx, input.OwnerID); err != nil {
		slog.Warn("Failed to invalidate consolidation cache",
			"ownerID", input.OwnerID,
			"error", err,
		)
	}

	return &CreateTransactionOutput{Transaction: toTransactionOutput(transaction)}, nil
}

func validateTransferFields(input CreateTransactionInput) error {
	switch input.Direction {
	case entity.TransferDirectionUnknown, entity.TransferDirectionOutflow, entity.TransferDirectionInflow:
	default:
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransferDirection,
			"direction must be 'outflow' or 'inflow'",
			domainerror.ErrInvalidTransferDirection,
		)
	}

	if !input.Type.IsIntercompany() && (input.Direction != entity.TransferDirectionUnknown || input.CounterpartyCompanyID != nil) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransferDirection,
			"direction and counterparty are only allowed on intercompany transfers",
			domainerror.ErrInvalidTransferDirection,
		)
	}
	return nil
}
