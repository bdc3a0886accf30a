// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the ledger type of a transaction.
type TransactionType string

const (
	TransactionTypeRevenue      TransactionType = "revenue"
	TransactionTypeExpense      TransactionType = "expense"
	TransactionTypeAsset        TransactionType = "asset"
	TransactionTypeLiability    TransactionType = "liability"
	TransactionTypeEquity       TransactionType = "equity"
	TransactionTypeIntercompany TransactionType = "intercompany_transfer"

	// TransactionTypeIntercompanyAlias is accepted on input and treated as TransactionTypeIntercompany.
	TransactionTypeIntercompanyAlias TransactionType = "intercompany"
)

// Canonical returns the type with aliases resolved and casing normalized.
func (t TransactionType) Canonical() TransactionType {
	normalized := TransactionType(strings.ToLower(strings.TrimSpace(string(t))))
	if normalized == TransactionTypeIntercompanyAlias {
		return TransactionTypeIntercompany
	}
	return normalized
}

// IsValid reports whether the type (after alias resolution) is a known ledger type.
func (t TransactionType) IsValid() bool {
	switch t.Canonical() {
	case TransactionTypeRevenue, TransactionTypeExpense, TransactionTypeAsset,
		TransactionTypeLiability, TransactionTypeEquity, TransactionTypeIntercompany:
		return true
	}
	return false
}

// IsIntercompany reports whether the transaction type is an intercompany transfer.
func (t TransactionType) IsIntercompany() bool {
	return t.Canonical() == TransactionTypeIntercompany
}

// TransferDirection is the direction of an intercompany transfer from the owning company's view.
type TransferDirection string

const (
	TransferDirectionUnknown TransferDirection = ""
	TransferDirectionOutflow TransferDirection = "outflow"
	TransferDirectionInflow  TransferDirection = "inflow"
)

// TransactionSource identifies what produced a transaction.
type TransactionSource string

const (
	TransactionSourceManual             TransactionSource = "manual"
	TransactionSourceBudgetActuals      TransactionSource = "budget_actuals"
	TransactionSourceIntercompanyMirror TransactionSource = "intercompany_mirror"
)

// Well-known transaction categories.
const (
	CategoryCash               = "cash"
	CategoryAccountsPayable    = "accounts_payable"
	CategoryAccountsReceivable = "accounts_receivable"
	CategoryShortTermDebt      = "short_term_debt"
	CategoryLongTermDebt       = "long_term_debt"
	CategoryEquipment          = "equipment"
	CategoryInventory          = "inventory"
	CategoryTransferIn         = "transfer_in"
	CategoryTransferOut        = "transfer_out"
)

// Transaction is a posted ledger fact. Amounts are stored pre-signed by the producer:
// revenue and inflows positive, expenses and outflows negative.
type Transaction struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Date            time.Time
	Type            TransactionType
	Category        string
	Amount          decimal.Decimal
	Description     string
	AffectsPL       bool
	AffectsCashFlow bool
	AffectsBalance  bool

	// Structured intercompany fields. When set they win over text inference.
	Direction             TransferDirection
	CounterpartyCompanyID *uuid.UUID

	Source    TransactionSource
	SourceRef *uuid.UUID // budget line id or mirrored outflow id

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransactionFlags groups the three statement-effect flags.
type TransactionFlags struct {
	AffectsPL       bool
	AffectsCashFlow bool
	AffectsBalance  bool
}

// DefaultFlags returns the statement-effect flags a transaction of the given type gets
// when the producer does not set them explicitly.
func DefaultFlags(transactionType TransactionType) TransactionFlags {
	switch transactionType.Canonical() {
	case TransactionTypeRevenue, TransactionTypeExpense:
		return TransactionFlags{AffectsPL: true, AffectsCashFlow: true}
	case TransactionTypeAsset, TransactionTypeLiability, TransactionTypeEquity, TransactionTypeIntercompany:
		return TransactionFlags{AffectsCashFlow: true, AffectsBalance: true}
	}
	return TransactionFlags{}
}

// NewTransaction creates a new manual Transaction entity with the given flags.
func NewTransaction(
	companyID uuid.UUID,
	date time.Time,
	transactionType TransactionType,
	category string,
	amount decimal.Decimal,
	description string,
	flags TransactionFlags,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Date:            DateOnly(date),
		Type:            transactionType.Canonical(),
		Category:        category,
		Amount:          amount,
		Description:     description,
		AffectsPL:       flags.AffectsPL,
		AffectsCashFlow: flags.AffectsCashFlow,
		AffectsBalance:  flags.AffectsBalance,
		Source:          TransactionSourceManual,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Flags returns the statement-effect flags of the transaction.
func (t *Transaction) Flags() TransactionFlags {
	return TransactionFlags{
		AffectsPL:       t.AffectsPL,
		AffectsCashFlow: t.AffectsCashFlow,
		AffectsBalance:  t.AffectsBalance,
	}
}

// NormalizedCategory returns the category lowercased and trimmed.
func (t *Transaction) NormalizedCategory() string {
	return strings.ToLower(strings.TrimSpace(t.Category))
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
