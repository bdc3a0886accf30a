package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/domain/valueobject"
)

// EliminationMatch names the rule that paired two transfer legs.
type EliminationMatch string

const (
	EliminationMatchMirrorMarker EliminationMatch = "mirror_marker"
	EliminationMatchCounterparty EliminationMatch = "counterparty"
	EliminationMatchAmountDate   EliminationMatch = "amount_date"
)

// CompanyStatements holds the unadjusted statements of one consolidated company.
type CompanyStatements struct {
	CompanyID  uuid.UUID         `json:"companyId"`
	Name       string            `json:"name"`
	Statements entity.Statements `json:"statements"`
}

// EliminatedPair is an outflow and its counterpart inflow removed on consolidation.
type EliminatedPair struct {
	OutflowID     uuid.UUID        `json:"outflowId"`
	InflowID      uuid.UUID        `json:"inflowId"`
	FromCompanyID uuid.UUID        `json:"fromCompanyId"`
	ToCompanyID   uuid.UUID        `json:"toCompanyId"`
	Date          time.Time        `json:"date"`
	Amount        decimal.Decimal  `json:"amount"`
	MatchedBy     EliminationMatch `json:"matchedBy"`
}

// OrphanedTransfer is an intercompany row without a counterpart. It stays in the
// consolidated figures and is reported for review.
type OrphanedTransfer struct {
	TransactionID uuid.UUID                `json:"transactionId"`
	CompanyID     uuid.UUID                `json:"companyId"`
	Date          time.Time                `json:"date"`
	Amount        decimal.Decimal          `json:"amount"`
	Direction     entity.TransferDirection `json:"direction"`
	Description   string                   `json:"description"`
	Reason        string                   `json:"reason"`
}

// Eliminations summarizes intercompany matching.
type Eliminations struct {
	Pairs            []EliminatedPair   `json:"pairs"`
	Orphans          []OrphanedTransfer `json:"orphans"`
	EliminatedAmount decimal.Decimal    `json:"eliminatedAmount"`
	CashAdjustment   decimal.Decimal    `json:"cashAdjustment"`
}

// ConsolidationResult is the outcome of Consolidate. Imbalances are reported
// through IsValid and Errors, never as a Go error.
type ConsolidationResult struct {
	PerCompany   []CompanyStatements `json:"perCompany"`
	Consolidated entity.Statements   `json:"consolidated"`
	Eliminations Eliminations        `json:"intercompanyEliminations"`
	IsValid      bool                `json:"isValid"`
	Errors       []string            `json:"errors"`
	Warnings     []string            `json:"warnings"`
}

// Consolidate calculates every company, sums the statements and removes matched
// intercompany pairs from consolidated cash and equity. Pairs are matched by
// mirror marker first, then by resolved counterparty, then by amount and date
// alone. The result does not depend on the order of ledgers or transactions.
func Consolidate(ledgers []entity.CompanyLedger, cfg valueobject.MatchingConfig) ConsolidationResult {
	sorted := make([]entity.CompanyLedger, len(ledgers))
	copy(sorted, ledgers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompanyID.String() < sorted[j].CompanyID.String()
	})

	result := ConsolidationResult{
		PerCompany: make([]CompanyStatements, 0, len(sorted)),
		Errors:     []string{},
		Warnings:   []string{},
	}
	for _, ledger := range sorted {
		result.PerCompany = append(result.PerCompany, CompanyStatements{
			CompanyID:  ledger.CompanyID,
			Name:       ledger.Name,
			Statements: Calculate(ledger.Transactions, ledger.OpeningCash),
		})
	}

	result.Consolidated = sumStatements(result.PerCompany)
	result.Eliminations = matchTransfers(sorted, cfg)
	applyEliminations(&result.Consolidated, result.Eliminations.CashAdjustment, cfg)

	for _, company := range result.PerCompany {
		bs := company.Statements.BalanceSheet
		if !IsBalanced(bs, cfg.BalanceTolerance) {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"company %s (%s) does not balance: assets %s, liabilities %s, equity %s",
				company.Name, company.CompanyID, bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity))
		}
	}
	result.Errors = append(result.Errors, ValidateConsolidated(result.Consolidated, cfg)...)

	for _, orphan := range result.Eliminations.Orphans {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"unmatched intercompany %s %s of %s in company %s: %s",
			orphan.Direction, orphan.TransactionID, orphan.Amount, orphan.CompanyID, orphan.Reason))
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// ValidateConsolidated checks the accounting identity and cash agreement of a
// consolidated statement set and returns one message per violation.
func ValidateConsolidated(statements entity.Statements, cfg valueobject.MatchingConfig) []string {
	var errs []string
	bs := statements.BalanceSheet
	cf := statements.CashFlow

	if !IsBalanced(bs, cfg.BalanceTolerance) {
		errs = append(errs, fmt.Sprintf(
			"consolidated balance sheet does not balance: assets %s, liabilities %s, equity %s, difference %s",
			bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity, BalanceGap(bs)))
	}
	if !cfg.IsWithinTolerance(cf.EndingCash, bs.CashEquivalents) {
		errs = append(errs, fmt.Sprintf(
			"consolidated ending cash %s differs from balance sheet cash %s", cf.EndingCash, bs.CashEquivalents))
	}
	if !cfg.IsWithinTolerance(cf.BeginningCash.Add(cf.NetCashFlow), cf.EndingCash) {
		errs = append(errs, fmt.Sprintf(
			"consolidated cash flow does not roll forward: beginning %s, net %s, ending %s",
			cf.BeginningCash, cf.NetCashFlow, cf.EndingCash))
	}
	return errs
}

// sumStatements adds per-company statements line by line. Equity is summed
// rather than re-derived so validation compares independent totals.
func sumStatements(companies []CompanyStatements) entity.Statements {
	var total entity.Statements
	total.PL.RevenueByCategory = map[string]decimal.Decimal{}

	for _, company := range companies {
		pl := company.Statements.PL
		total.PL.Revenue = total.PL.Revenue.Add(pl.Revenue)
		for category, amount := range pl.RevenueByCategory {
			total.PL.RevenueByCategory[category] = total.PL.RevenueByCategory[category].Add(amount)
		}
		total.PL.DirectCosts = total.PL.DirectCosts.Add(pl.DirectCosts)
		total.PL.InfrastructureCosts = total.PL.InfrastructureCosts.Add(pl.InfrastructureCosts)
		total.PL.COGS = total.PL.COGS.Add(pl.COGS)
		total.PL.GrossProfit = total.PL.GrossProfit.Add(pl.GrossProfit)
		total.PL.SalesMarketing = total.PL.SalesMarketing.Add(pl.SalesMarketing)
		total.PL.ResearchDevelopment = total.PL.ResearchDevelopment.Add(pl.ResearchDevelopment)
		total.PL.Admin = total.PL.Admin.Add(pl.Admin)
		total.PL.OperatingExpenses = total.PL.OperatingExpenses.Add(pl.OperatingExpenses)
		total.PL.UnclassifiedExpenses = total.PL.UnclassifiedExpenses.Add(pl.UnclassifiedExpenses)
		total.PL.NetProfit = total.PL.NetProfit.Add(pl.NetProfit)

		bs := company.Statements.BalanceSheet
		total.BalanceSheet.CashEquivalents = total.BalanceSheet.CashEquivalents.Add(bs.CashEquivalents)
		total.BalanceSheet.AccountsReceivable = total.BalanceSheet.AccountsReceivable.Add(bs.AccountsReceivable)
		total.BalanceSheet.Inventory = total.BalanceSheet.Inventory.Add(bs.Inventory)
		total.BalanceSheet.FixedAssets = total.BalanceSheet.FixedAssets.Add(bs.FixedAssets)
		total.BalanceSheet.OtherAssets = total.BalanceSheet.OtherAssets.Add(bs.OtherAssets)
		total.BalanceSheet.TotalAssets = total.BalanceSheet.TotalAssets.Add(bs.TotalAssets)
		total.BalanceSheet.AccountsPayable = total.BalanceSheet.AccountsPayable.Add(bs.AccountsPayable)
		total.BalanceSheet.ShortTermDebt = total.BalanceSheet.ShortTermDebt.Add(bs.ShortTermDebt)
		total.BalanceSheet.LongTermDebt = total.BalanceSheet.LongTermDebt.Add(bs.LongTermDebt)
		total.BalanceSheet.OtherLiabilities = total.BalanceSheet.OtherLiabilities.Add(bs.OtherLiabilities)
		total.BalanceSheet.TotalLiabilities = total.BalanceSheet.TotalLiabilities.Add(bs.TotalLiabilities)
		total.BalanceSheet.ContributedCapital = total.BalanceSheet.ContributedCapital.Add(bs.ContributedCapital)
		total.BalanceSheet.TotalEquity = total.BalanceSheet.TotalEquity.Add(bs.TotalEquity)

		cf := company.Statements.CashFlow
		total.CashFlow.BeginningCash = total.CashFlow.BeginningCash.Add(cf.BeginningCash)
		total.CashFlow.OperatingCashFlow = total.CashFlow.OperatingCashFlow.Add(cf.OperatingCashFlow)
		total.CashFlow.InvestingCashFlow = total.CashFlow.InvestingCashFlow.Add(cf.InvestingCashFlow)
		total.CashFlow.FinancingCashFlow = total.CashFlow.FinancingCashFlow.Add(cf.FinancingCashFlow)
		total.CashFlow.IntercompanyCashFlow = total.CashFlow.IntercompanyCashFlow.Add(cf.IntercompanyCashFlow)
		total.CashFlow.UnclassifiedCashFlow = total.CashFlow.UnclassifiedCashFlow.Add(cf.UnclassifiedCashFlow)
		total.CashFlow.NetCashFlow = total.CashFlow.NetCashFlow.Add(cf.NetCashFlow)
		total.CashFlow.EndingCash = total.CashFlow.EndingCash.Add(cf.EndingCash)
	}

	total.PL.ProfitMargin = ProfitMargin(total.PL.NetProfit, total.PL.Revenue)
	return total
}

// applyEliminations removes the cash effect of matched pairs from operating cash
// flow, cash and equity.
func applyEliminations(statements *entity.Statements, adjustment decimal.Decimal, cfg valueobject.MatchingConfig) {
	cf := &statements.CashFlow
	cf.OperatingCashFlow = cf.OperatingCashFlow.Sub(adjustment)
	cf.IntercompanyCashFlow = cf.IntercompanyCashFlow.Sub(adjustment)
	cf.NetCashFlow = cf.NetCashFlow.Sub(adjustment)
	cf.EndingCash = cf.EndingCash.Sub(adjustment)

	bs := &statements.BalanceSheet
	bs.CashEquivalents = bs.CashEquivalents.Sub(adjustment)
	bs.TotalAssets = bs.TotalAssets.Sub(adjustment)
	bs.TotalEquity = bs.TotalEquity.Sub(adjustment)
	bs.Balances = IsBalanced(*bs, cfg.BalanceTolerance)
}

func matchTransfers(ledgers []entity.CompanyLedger, cfg valueobject.MatchingConfig) Eliminations {
	directory := newCompanyDirectory(ledgers)
	legs := collectTransferLegs(ledgers, directory, cfg)

	elims := Eliminations{
		Pairs:   []EliminatedPair{},
		Orphans: []OrphanedTransfer{},
	}
	used := map[uuid.UUID]bool{}
	matched := map[uuid.UUID]bool{}

	pair := func(out, in *transferLeg, by EliminationMatch) {
		used[in.tx.ID] = true
		matched[out.tx.ID] = true
		elims.Pairs = append(elims.Pairs, EliminatedPair{
			OutflowID:     out.tx.ID,
			InflowID:      in.tx.ID,
			FromCompanyID: out.tx.CompanyID,
			ToCompanyID:   in.tx.CompanyID,
			Date:          entity.DateOnly(out.tx.Date),
			Amount:        out.tx.Amount.Abs(),
			MatchedBy:     by,
		})
		elims.EliminatedAmount = elims.EliminatedAmount.Add(out.tx.Amount.Abs())
		elims.CashAdjustment = elims.CashAdjustment.Add(cashEffect(out.tx)).Add(cashEffect(in.tx))
	}

	byMarker := map[uuid.UUID]*transferLeg{}
	for _, in := range legs.inflows {
		if ref, ok := mirrorMarker(in.tx); ok {
			if _, taken := byMarker[ref]; !taken {
				byMarker[ref] = in
			}
		}
	}
	for _, out := range legs.outflows {
		if in, ok := byMarker[out.tx.ID]; ok && in.tx.CompanyID != out.tx.CompanyID {
			pair(out, in, EliminationMatchMirrorMarker)
		}
	}

	for _, out := range legs.outflows {
		if matched[out.tx.ID] || out.counterparty == nil {
			continue
		}
		if in := legs.findInflow(out, out.counterparty.ID, used, cfg); in != nil {
			pair(out, in, EliminationMatchCounterparty)
		}
	}

	for _, out := range legs.outflows {
		if matched[out.tx.ID] || out.counterparty != nil {
			continue
		}
		for _, ledger := range ledgers {
			if ledger.CompanyID == out.tx.CompanyID {
				continue
			}
			if in := legs.findInflow(out, ledger.CompanyID, used, cfg); in != nil {
				pair(out, in, EliminationMatchAmountDate)
				break
			}
		}
	}

	for _, out := range legs.outflows {
		if !matched[out.tx.ID] {
			elims.Orphans = append(elims.Orphans, orphanOf(out, "no matching inflow in the counterparty company"))
		}
	}
	for _, in := range legs.inflows {
		if !used[in.tx.ID] {
			elims.Orphans = append(elims.Orphans, orphanOf(in, "no matching outflow in the counterparty company"))
		}
	}
	for _, leg := range legs.unknown {
		elims.Orphans = append(elims.Orphans, orphanOf(leg, "transfer direction unknown"))
	}

	sort.SliceStable(elims.Pairs, func(i, j int) bool {
		a, b := elims.Pairs[i], elims.Pairs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.OutflowID.String() < b.OutflowID.String()
	})
	return elims
}

func cashEffect(tx *entity.Transaction) decimal.Decimal {
	if !tx.AffectsCashFlow {
		return decimal.Zero
	}
	return tx.Amount
}

func orphanOf(leg *transferLeg, reason string) OrphanedTransfer {
	return OrphanedTransfer{
		TransactionID: leg.tx.ID,
		CompanyID:     leg.tx.CompanyID,
		Date:          entity.DateOnly(leg.tx.Date),
		Amount:        leg.tx.Amount,
		Direction:     leg.direction,
		Description:   leg.tx.Description,
		Reason:        reason,
	}
}
