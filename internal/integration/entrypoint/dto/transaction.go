package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amounts are pre-signed: revenue and inflows positive, expenses and outflows negative.
type CreateTransactionRequest struct {
	Date                  string          `json:"date" binding:"required"`
	Type                  string          `json:"type" binding:"required"`
	Category              string          `json:"category" binding:"max=64"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description" binding:"max=255"`
	AffectsPL             *bool           `json:"affects_pl,omitempty"`
	AffectsCashFlow       *bool           `json:"affects_cash_flow,omitempty"`
	AffectsBalance        *bool           `json:"affects_balance,omitempty"`
	Direction             string          `json:"direction,omitempty" binding:"omitempty,oneof=inflow outflow"`
	CounterpartyCompanyID *string         `json:"counterparty_company_id,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                    string    `json:"id"`
	CompanyID             string    `json:"company_id"`
	Date                  string    `json:"date"`
	Type                  string    `json:"type"`
	Category              string    `json:"category"`
	Amount                string    `json:"amount"`
	Description           string    `json:"description"`
	AffectsPL             bool      `json:"affects_pl"`
	AffectsCashFlow       bool      `json:"affects_cash_flow"`
	AffectsBalance        bool      `json:"affects_balance"`
	Direction             string    `json:"direction,omitempty"`
	CounterpartyCompanyID *string   `json:"counterparty_company_id,omitempty"`
	Source                string    `json:"source"`
	SourceRef             *string   `json:"source_ref,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:                    txn.ID.String(),
		CompanyID:             txn.CompanyID.String(),
		Date:                  txn.Date.Format(DateLayout),
		Type:                  string(txn.Type),
		Category:              txn.Category,
		Amount:                txn.Amount.String(),
		Description:           txn.Description,
		AffectsPL:             txn.AffectsPL,
		AffectsCashFlow:       txn.AffectsCashFlow,
		AffectsBalance:        txn.AffectsBalance,
		Direction:             string(txn.Direction),
		CounterpartyCompanyID: formatOptionalUUID(txn.CounterpartyCompanyID),
		Source:                string(txn.Source),
		SourceRef:             formatOptionalUUID(txn.SourceRef),
		CreatedAt:             txn.CreatedAt,
		UpdatedAt:             txn.UpdatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	response := TransactionListResponse{
		Transactions: make([]TransactionResponse, len(output.Transactions)),
		Total:        output.Total,
	}
	for i, txn := range output.Transactions {
		response.Transactions[i] = ToTransactionResponse(txn)
	}
	return response
}
