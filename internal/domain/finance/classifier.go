// Package finance implements the statement engine: transaction classification,
// single-entity statement calculation, running balances, intercompany transfer
// maintenance and multi-entity consolidation.
//
// Everything in this package is a pure, synchronous fold over in-memory values.
// Nothing here performs I/O, so callers may run it on any goroutine.
package finance

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// PLBucket is the P&L line a transaction contributes to.
type PLBucket string

const (
	PLBucketNone                PLBucket = ""
	PLBucketRevenue             PLBucket = "revenue"
	PLBucketDirectCosts         PLBucket = "direct_costs"
	PLBucketInfrastructure      PLBucket = "infrastructure"
	PLBucketSalesMarketing      PLBucket = "sales_marketing"
	PLBucketResearchDevelopment PLBucket = "research_development"
	PLBucketAdmin               PLBucket = "admin"
	PLBucketUnclassified        PLBucket = "unclassified"
)

// CashFlowBucket is the cash flow activity a transaction contributes to.
type CashFlowBucket string

const (
	CashFlowBucketNone         CashFlowBucket = ""
	CashFlowBucketOperating    CashFlowBucket = "operating"
	CashFlowBucketInvesting    CashFlowBucket = "investing"
	CashFlowBucketFinancing    CashFlowBucket = "financing"
	CashFlowBucketUnclassified CashFlowBucket = "unclassified"
)

// BalanceLine is the balance sheet line a transaction posts to directly.
type BalanceLine string

const (
	BalanceLineNone               BalanceLine = ""
	BalanceLineAccountsReceivable BalanceLine = "accounts_receivable"
	BalanceLineInventory          BalanceLine = "inventory"
	BalanceLineFixedAssets        BalanceLine = "fixed_assets"
	BalanceLineOtherAssets        BalanceLine = "other_assets"
	BalanceLineAccountsPayable    BalanceLine = "accounts_payable"
	BalanceLineShortTermDebt      BalanceLine = "short_term_debt"
	BalanceLineLongTermDebt       BalanceLine = "long_term_debt"
	BalanceLineOtherLiabilities   BalanceLine = "other_liabilities"
	BalanceLineContributedCapital BalanceLine = "contributed_capital"
)

// Classification is the statement effect of one transaction.
//
// PLAmount is positive for revenue and a positive cost magnitude for expenses.
// CashAmount is the signed movement of cash; it equals the stored amount except
// for investing outflows, which are negated.
type Classification struct {
	PL            PLBucket
	PLCategory    string
	PLAmount      decimal.Decimal
	CashFlow      CashFlowBucket
	CashAmount    decimal.Decimal
	Intercompany  bool
	Balance       BalanceLine
	BalanceAmount decimal.Decimal
}

var expenseBuckets = map[string]PLBucket{
	"direct_costs":         PLBucketDirectCosts,
	"direct_cost":          PLBucketDirectCosts,
	"cogs":                 PLBucketDirectCosts,
	"cost_of_goods_sold":   PLBucketDirectCosts,
	"infrastructure":       PLBucketInfrastructure,
	"hosting":              PLBucketInfrastructure,
	"cloud":                PLBucketInfrastructure,
	"sales_marketing":      PLBucketSalesMarketing,
	"sales":                PLBucketSalesMarketing,
	"marketing":            PLBucketSalesMarketing,
	"research_development": PLBucketResearchDevelopment,
	"r_and_d":              PLBucketResearchDevelopment,
	"r_d":                  PLBucketResearchDevelopment,
	"rnd":                  PLBucketResearchDevelopment,
	"engineering":          PLBucketResearchDevelopment,
	"admin":                PLBucketAdmin,
	"administrative":       PLBucketAdmin,
	"general_admin":        PLBucketAdmin,
	"g_and_a":              PLBucketAdmin,
	"g_a":                  PLBucketAdmin,
}

var investingAssetCategories = map[string]bool{
	entity.CategoryEquipment: true,
	entity.CategoryInventory: true,
	"fixed_assets":           true,
	"property":               true,
}

// Classify maps a transaction onto its P&L, Cash Flow and Balance Sheet effects.
// Each mapping is applied only when the matching flag is set. Unknown categories
// under a known type land in the unclassified bucket; Classify never fails.
func Classify(tx *entity.Transaction) Classification {
	var c Classification
	if tx == nil {
		return c
	}

	transactionType := tx.Type.Canonical()
	category := CategoryKey(tx.Category)

	if tx.AffectsPL {
		c.PL, c.PLAmount = classifyPL(transactionType, category, tx.Amount)
		if c.PL == PLBucketRevenue {
			c.PLCategory = category
		}
	}

	if tx.AffectsCashFlow {
		c.CashFlow, c.CashAmount = classifyCashFlow(transactionType, category, tx.Amount)
		c.Intercompany = transactionType == entity.TransactionTypeIntercompany
	}

	if tx.AffectsBalance {
		c.Balance = classifyBalance(transactionType, category)
		if c.Balance != BalanceLineNone {
			c.BalanceAmount = tx.Amount
		}
	}

	return c
}

func classifyPL(transactionType entity.TransactionType, category string, amount decimal.Decimal) (PLBucket, decimal.Decimal) {
	switch transactionType {
	case entity.TransactionTypeRevenue:
		return PLBucketRevenue, amount
	case entity.TransactionTypeExpense:
		if bucket, ok := expenseBuckets[category]; ok {
			return bucket, amount.Neg()
		}
		return PLBucketUnclassified, amount.Neg()
	}
	return PLBucketNone, decimal.Zero
}

func classifyCashFlow(transactionType entity.TransactionType, category string, amount decimal.Decimal) (CashFlowBucket, decimal.Decimal) {
	switch transactionType {
	case entity.TransactionTypeRevenue, entity.TransactionTypeExpense, entity.TransactionTypeIntercompany:
		return CashFlowBucketOperating, amount
	case entity.TransactionTypeAsset:
		if category == entity.CategoryCash {
			return CashFlowBucketOperating, amount
		}
		if investingAssetCategories[category] {
			return CashFlowBucketInvesting, amount.Neg()
		}
	case entity.TransactionTypeEquity:
		return CashFlowBucketFinancing, amount
	case entity.TransactionTypeLiability:
		switch category {
		case entity.CategoryShortTermDebt, entity.CategoryLongTermDebt:
			return CashFlowBucketFinancing, amount
		case entity.CategoryAccountsPayable:
			return CashFlowBucketOperating, amount
		}
	}
	return CashFlowBucketUnclassified, amount
}

func classifyBalance(transactionType entity.TransactionType, category string) BalanceLine {
	switch transactionType {
	case entity.TransactionTypeAsset:
		switch category {
		case entity.CategoryCash:
			// cash is derived from the cash flow statement only
			return BalanceLineNone
		case entity.CategoryAccountsReceivable:
			return BalanceLineAccountsReceivable
		case entity.CategoryInventory:
			return BalanceLineInventory
		case entity.CategoryEquipment, "fixed_assets", "property":
			return BalanceLineFixedAssets
		}
		return BalanceLineOtherAssets
	case entity.TransactionTypeLiability:
		switch category {
		case entity.CategoryAccountsPayable:
			return BalanceLineAccountsPayable
		case entity.CategoryShortTermDebt:
			return BalanceLineShortTermDebt
		case entity.CategoryLongTermDebt:
			return BalanceLineLongTermDebt
		}
		return BalanceLineOtherLiabilities
	case entity.TransactionTypeEquity:
		return BalanceLineContributedCapital
	}
	return BalanceLineNone
}

// CategoryKey normalizes a free-form category: lowercase, with every run of
// non-alphanumeric characters collapsed to a single underscore.
// "Sales & Marketing" becomes "sales_marketing".
func CategoryKey(category string) string {
	var b strings.Builder
	pendingSeparator := false
	for _, r := range strings.ToLower(strings.TrimSpace(category)) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingSeparator = b.Len() > 0
			continue
		}
		if pendingSeparator {
			b.WriteByte('_')
			pendingSeparator = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
