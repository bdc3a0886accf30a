// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitAndLoss is the derived P&L statement of one entity over a period.
// Cost lines are positive magnitudes; NetProfit = Revenue - COGS - OperatingExpenses - UnclassifiedExpenses.
type ProfitAndLoss struct {
	Revenue              decimal.Decimal            `json:"revenue"`
	RevenueByCategory    map[string]decimal.Decimal `json:"revenueByCategory"`
	DirectCosts          decimal.Decimal            `json:"directCosts"`
	InfrastructureCosts  decimal.Decimal            `json:"infrastructureCosts"`
	COGS                 decimal.Decimal            `json:"cogs"`
	GrossProfit          decimal.Decimal            `json:"grossProfit"`
	SalesMarketing       decimal.Decimal            `json:"salesMarketing"`
	ResearchDevelopment  decimal.Decimal            `json:"researchDevelopment"`
	Admin                decimal.Decimal            `json:"admin"`
	OperatingExpenses    decimal.Decimal            `json:"operatingExpenses"`
	UnclassifiedExpenses decimal.Decimal            `json:"unclassifiedExpenses"`
	NetProfit            decimal.Decimal            `json:"netProfit"`
	ProfitMargin         decimal.Decimal            `json:"profitMargin"` // percent of revenue
}

// BalanceSheet is the point-in-time snapshot of one entity.
// TotalEquity is derived as TotalAssets - TotalLiabilities.
type BalanceSheet struct {
	CashEquivalents    decimal.Decimal `json:"cashEquivalents"`
	AccountsReceivable decimal.Decimal `json:"accountsReceivable"`
	Inventory          decimal.Decimal `json:"inventory"`
	FixedAssets        decimal.Decimal `json:"fixedAssets"`
	OtherAssets        decimal.Decimal `json:"otherAssets"`
	TotalAssets        decimal.Decimal `json:"totalAssets"`

	AccountsPayable  decimal.Decimal `json:"accountsPayable"`
	ShortTermDebt    decimal.Decimal `json:"shortTermDebt"`
	LongTermDebt     decimal.Decimal `json:"longTermDebt"`
	OtherLiabilities decimal.Decimal `json:"otherLiabilities"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`

	ContributedCapital decimal.Decimal `json:"contributedCapital"`
	TotalEquity        decimal.Decimal `json:"totalEquity"`

	Balances bool `json:"balances"`
}

// CashFlow is the period movement of cash. IntercompanyCashFlow is already included in
// OperatingCashFlow; UnclassifiedCashFlow is reported but never moves EndingCash.
type CashFlow struct {
	BeginningCash        decimal.Decimal `json:"beginningCash"`
	OperatingCashFlow    decimal.Decimal `json:"operatingCashFlow"`
	InvestingCashFlow    decimal.Decimal `json:"investingCashFlow"`
	FinancingCashFlow    decimal.Decimal `json:"financingCashFlow"`
	IntercompanyCashFlow decimal.Decimal `json:"intercompanyCashFlow"`
	UnclassifiedCashFlow decimal.Decimal `json:"unclassifiedCashFlow"`
	NetCashFlow          decimal.Decimal `json:"netCashFlow"`
	EndingCash           decimal.Decimal `json:"endingCash"`
}

// StatementPeriod is an inclusive calendar-date range.
type StatementPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the date falls within the period.
func (p StatementPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.Start)) && !d.After(DateOnly(p.End))
}

// Statements is the triple produced by one calculation.
type Statements struct {
	Period       *StatementPeriod `json:"period,omitempty"`
	PL           ProfitAndLoss    `json:"pl"`
	BalanceSheet BalanceSheet     `json:"balanceSheet"`
	CashFlow     CashFlow         `json:"cashFlow"`
}

// StatementSnapshot is a stored, recomputable copy of one company's statements.
type StatementSnapshot struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Statements   Statements
	CalculatedAt time.Time
}

// ConsolidationRun is a stored consolidation result for one owner.
type ConsolidationRun struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	IsValid   bool
	Result    []byte // JSON encoded consolidation result
	CreatedAt time.Time
}
