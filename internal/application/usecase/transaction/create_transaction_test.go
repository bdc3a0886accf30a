package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureboard/backend/internal/application/adapter/mocks"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

func TestCreateTransactionUseCase(t *testing.T) {
	ownerID := uuid.New()
	alpha := entity.NewCompany(ownerID, "Alpha", decimal.Zero)
	beta := entity.NewCompany(ownerID, "Beta", decimal.Zero)
	foreign := entity.NewCompany(uuid.New(), "Gamma", decimal.Zero)
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	no := false

	tests := []struct {
		name         string
		input        CreateTransactionInput
		expectCreate func(*entity.Transaction) bool
		expectedCode domainerror.TransactionErrorCode
	}{
		{
			name: "revenue gets default flags",
			input: CreateTransactionInput{
				OwnerID: ownerID, CompanyID: alpha.ID, Date: date,
				Type: entity.TransactionTypeRevenue, Category: "subscriptions", Amount: decimal.NewFromInt(100),
			},
			expectCreate: func(tx *entity.Transaction) bool {
				return tx.AffectsPL && tx.AffectsCashFlow && !tx.AffectsBalance && tx.Source == entity.TransactionSourceManual
			},
		},
		{
			name: "explicit flag overrides default",
			input: CreateTransactionInput{
				OwnerID: ownerID, CompanyID: alpha.ID, Date: date,
				Type: entity.TransactionTypeAsset, Category: "accounts_receivable", Amount: decimal.NewFromInt(100),
				AffectsCashFlow: &no,
			},
			expectCreate: func(tx *entity.Transaction) bool {
				return !tx.AffectsCashFlow && tx.AffectsBalance
			},
		},
		{
			name: "intercompany alias with structured fields",
			input: CreateTransactionInput{
				OwnerID: ownerID, CompanyID: alpha.ID, Date: date,
				Type: entity.TransactionTypeIntercompanyAlias, Category: "transfer_out", Amount: decimal.NewFromInt(-500),
				Direction: entity.TransferDirectionOutflow, CounterpartyCompanyID: &beta.ID,
			},
			expectCreate: func(tx *entity.Transaction) bool {
				return tx.Type == entity.TransactionTypeIntercompany &&
					tx.Direction == entity.TransferDirectionOutflow &&
					*tx.CounterpartyCompanyID == beta.ID
			},
		},
		{
			name: "unknown type",
			input: CreateTransactionInput{
				OwnerID: ownerID, CompanyID: alpha.ID, Date: date, Type: "income", Category: "x",
			},
			expectedCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name: "direction on non-transfer",
			input: CreateTransactionInput{
				OwnerID: ownerID, CompanyID: alpha.ID, Date: date,
				Type: entity.TransactionTypeExpense, Category: "admin", Direction: entity.TransferDirectionOutflow,
			},
			expectedCode: domainerror.ErrCodeInvalidTransferDirection,
		},
		{
			name: "counterparty of another owner",
			input: CreateTransactionInput{
				OwnerID: ownerID, CompanyID: alpha.ID, Date: date,
				Type: entity.TransactionTypeIntercompany, Category: "transfer_out", CounterpartyCompanyID: &foreign.ID,
			},
			expectedCode: domainerror.ErrCodeCounterpartyNotOwned,
		},
		{
			name: "counterparty is the same company",
			input: CreateTransactionInput{
				OwnerID: ownerID, CompanyID: alpha.ID, Date: date,
				Type: entity.TransactionTypeIntercompany, Category: "transfer_out", CounterpartyCompanyID: &alpha.ID,
			},
			expectedCode: domainerror.ErrCodeCounterpartyNotOwned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			companyRepo := new(mocks.CompanyRepository)
			companyRepo.On("FindByID", mock.Anything, alpha.ID).Return(alpha, nil).Maybe()
			companyRepo.On("FindByID", mock.Anything, beta.ID).Return(beta, nil).Maybe()
			companyRepo.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil).Maybe()

			transactionRepo := new(mocks.TransactionRepository)
			cache := new(mocks.StatementCache)
			if tt.expectCreate != nil {
				transactionRepo.On("Create", mock.Anything, mock.MatchedBy(tt.expectCreate)).Return(nil)
				cache.On("InvalidateOwner", mock.Anything, ownerID).Return(errors.New("redis down"))
			}

			uc := NewCreateTransactionUseCase(transactionRepo, companyRepo, cache)
			output, err := uc.Execute(context.Background(), tt.input)

			if tt.expectedCode != "" {
				var txErr *domainerror.TransactionError
				require.True(t, errors.As(err, &txErr), "expected a transaction error, got %v", err)
				assert.Equal(t, tt.expectedCode, txErr.Code)
				transactionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, alpha.ID, output.Transaction.CompanyID)
			transactionRepo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
