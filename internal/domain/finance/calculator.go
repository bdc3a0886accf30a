package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// DefaultBalanceTolerance is the largest gap between assets and liabilities plus
// equity that still counts as balanced.
var DefaultBalanceTolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Calculate folds every transaction into the three statements of one entity.
// Transactions are folded in (date, id) order, so the result does not depend on
// the order of the input slice.
func Calculate(transactions []*entity.Transaction, openingCash decimal.Decimal) entity.Statements {
	f := newStatementFold()
	for _, tx := range SortTransactions(transactions) {
		c := Classify(tx)
		f.applyFlow(c)
		f.applyPosition(c)
	}
	return f.statements(openingCash)
}

// CalculateRange calculates statements for from..to inclusive. P&L and cash flow
// cover the range only; the balance sheet and beginning cash include everything
// dated before it.
func CalculateRange(transactions []*entity.Transaction, openingCash decimal.Decimal, from, to time.Time) entity.Statements {
	period := entity.StatementPeriod{Start: entity.DateOnly(from), End: entity.DateOnly(to)}
	return CalculateSeries(transactions, openingCash, []entity.StatementPeriod{period})[0]
}

// CalculateAsOf calculates statements from the transactions dated on or before asOf.
func CalculateAsOf(transactions []*entity.Transaction, openingCash decimal.Decimal, asOf time.Time) entity.Statements {
	cutoff := entity.DateOnly(asOf)
	filtered := make([]*entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx != nil && !entity.DateOnly(tx.Date).After(cutoff) {
			filtered = append(filtered, tx)
		}
	}

	statements := Calculate(filtered, openingCash)
	statements.Period = &entity.StatementPeriod{End: cutoff}
	if len(filtered) > 0 {
		statements.Period.Start = entity.DateOnly(SortTransactions(filtered)[0].Date)
	} else {
		statements.Period.Start = cutoff
	}
	return statements
}

// CalculateSeries produces chained statements for consecutive periods.
// P&L and cash flow cover the period only; the balance sheet is cumulative through
// the period end. Transactions dated before a period (including gaps between
// periods) roll into its beginning cash, so each period begins where the previous
// one ended. Transactions after the last period are ignored.
func CalculateSeries(transactions []*entity.Transaction, openingCash decimal.Decimal, periods []entity.StatementPeriod) []entity.Statements {
	ordered := make([]entity.StatementPeriod, len(periods))
	copy(ordered, periods)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	sorted := SortTransactions(transactions)
	cumulative := newStatementFold()
	cash := openingCash
	next := 0

	result := make([]entity.Statements, 0, len(ordered))
	for _, period := range ordered {
		start := entity.DateOnly(period.Start)
		end := entity.DateOnly(period.End)

		for next < len(sorted) && entity.DateOnly(sorted[next].Date).Before(start) {
			c := Classify(sorted[next])
			cash = cash.Add(cashContribution(c))
			cumulative.applyPosition(c)
			next++
		}

		flow := newStatementFold()
		for next < len(sorted) && !entity.DateOnly(sorted[next].Date).After(end) {
			c := Classify(sorted[next])
			flow.applyFlow(c)
			cumulative.applyPosition(c)
			next++
		}

		flow.position = cumulative.position
		statements := flow.statements(cash)
		statements.Period = &entity.StatementPeriod{Start: start, End: end}
		result = append(result, statements)

		cash = statements.CashFlow.EndingCash
	}

	return result
}

// MonthlyPeriods returns calendar-month periods covering from..to inclusive.
// The first and last periods are clipped to the given dates.
func MonthlyPeriods(from, to time.Time) []entity.StatementPeriod {
	start := entity.DateOnly(from)
	end := entity.DateOnly(to)
	if end.Before(start) {
		return nil
	}

	var periods []entity.StatementPeriod
	for cursor := start; !cursor.After(end); {
		monthEnd := time.Date(cursor.Year(), cursor.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		if monthEnd.After(end) {
			monthEnd = end
		}
		periods = append(periods, entity.StatementPeriod{Start: cursor, End: monthEnd})
		cursor = monthEnd.AddDate(0, 0, 1)
	}
	return periods
}

// SortTransactions returns a copy of the transactions ordered by (date, id).
// Nil entries are dropped.
func SortTransactions(transactions []*entity.Transaction) []*entity.Transaction {
	sorted := make([]*entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx != nil {
			sorted = append(sorted, tx)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return transactionLess(sorted[i], sorted[j])
	})
	return sorted
}

func transactionLess(a, b *entity.Transaction) bool {
	da, db := entity.DateOnly(a.Date), entity.DateOnly(b.Date)
	if !da.Equal(db) {
		return da.Before(db)
	}
	return a.ID.String() < b.ID.String()
}

// IsBalanced reports whether assets equal liabilities plus equity within tolerance.
func IsBalanced(bs entity.BalanceSheet, tolerance decimal.Decimal) bool {
	return BalanceGap(bs).Abs().LessThanOrEqual(tolerance)
}

// BalanceGap returns assets minus (liabilities + equity).
func BalanceGap(bs entity.BalanceSheet) decimal.Decimal {
	return bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity))
}

// ProfitMargin returns net profit as a percentage of revenue, rounded to two
// decimal places. Zero revenue yields a zero margin.
func ProfitMargin(netProfit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return netProfit.Mul(hundred).DivRound(revenue, 2)
}

func cashContribution(c Classification) decimal.Decimal {
	switch c.CashFlow {
	case CashFlowBucketOperating, CashFlowBucketInvesting, CashFlowBucketFinancing:
		return c.CashAmount
	}
	return decimal.Zero
}

// positionLines holds the balance sheet lines fed directly by transactions.
type positionLines struct {
	accountsReceivable decimal.Decimal
	inventory          decimal.Decimal
	fixedAssets        decimal.Decimal
	otherAssets        decimal.Decimal
	accountsPayable    decimal.Decimal
	shortTermDebt      decimal.Decimal
	longTermDebt       decimal.Decimal
	otherLiabilities   decimal.Decimal
	contributedCapital decimal.Decimal
}

type statementFold struct {
	pl       entity.ProfitAndLoss
	cf       entity.CashFlow
	position positionLines
}

func newStatementFold() *statementFold {
	return &statementFold{
		pl: entity.ProfitAndLoss{RevenueByCategory: map[string]decimal.Decimal{}},
	}
}

func (f *statementFold) applyFlow(c Classification) {
	switch c.PL {
	case PLBucketRevenue:
		f.pl.Revenue = f.pl.Revenue.Add(c.PLAmount)
		key := c.PLCategory
		if key == "" {
			key = "uncategorized"
		}
		f.pl.RevenueByCategory[key] = f.pl.RevenueByCategory[key].Add(c.PLAmount)
	case PLBucketDirectCosts:
		f.pl.DirectCosts = f.pl.DirectCosts.Add(c.PLAmount)
	case PLBucketInfrastructure:
		f.pl.InfrastructureCosts = f.pl.InfrastructureCosts.Add(c.PLAmount)
	case PLBucketSalesMarketing:
		f.pl.SalesMarketing = f.pl.SalesMarketing.Add(c.PLAmount)
	case PLBucketResearchDevelopment:
		f.pl.ResearchDevelopment = f.pl.ResearchDevelopment.Add(c.PLAmount)
	case PLBucketAdmin:
		f.pl.Admin = f.pl.Admin.Add(c.PLAmount)
	case PLBucketUnclassified:
		f.pl.UnclassifiedExpenses = f.pl.UnclassifiedExpenses.Add(c.PLAmount)
	}

	switch c.CashFlow {
	case CashFlowBucketOperating:
		f.cf.OperatingCashFlow = f.cf.OperatingCashFlow.Add(c.CashAmount)
		if c.Intercompany {
			f.cf.IntercompanyCashFlow = f.cf.IntercompanyCashFlow.Add(c.CashAmount)
		}
	case CashFlowBucketInvesting:
		f.cf.InvestingCashFlow = f.cf.InvestingCashFlow.Add(c.CashAmount)
	case CashFlowBucketFinancing:
		f.cf.FinancingCashFlow = f.cf.FinancingCashFlow.Add(c.CashAmount)
	case CashFlowBucketUnclassified:
		f.cf.UnclassifiedCashFlow = f.cf.UnclassifiedCashFlow.Add(c.CashAmount)
	}
}

func (f *statementFold) applyPosition(c Classification) {
	p := &f.position
	switch c.Balance {
	case BalanceLineAccountsReceivable:
		p.accountsReceivable = p.accountsReceivable.Add(c.BalanceAmount)
	case BalanceLineInventory:
		p.inventory = p.inventory.Add(c.BalanceAmount)
	case BalanceLineFixedAssets:
		p.fixedAssets = p.fixedAssets.Add(c.BalanceAmount)
	case BalanceLineOtherAssets:
		p.otherAssets = p.otherAssets.Add(c.BalanceAmount)
	case BalanceLineAccountsPayable:
		p.accountsPayable = p.accountsPayable.Add(c.BalanceAmount)
	case BalanceLineShortTermDebt:
		p.shortTermDebt = p.shortTermDebt.Add(c.BalanceAmount)
	case BalanceLineLongTermDebt:
		p.longTermDebt = p.longTermDebt.Add(c.BalanceAmount)
	case BalanceLineOtherLiabilities:
		p.otherLiabilities = p.otherLiabilities.Add(c.BalanceAmount)
	case BalanceLineContributedCapital:
		p.contributedCapital = p.contributedCapital.Add(c.BalanceAmount)
	}
}

func (f *statementFold) statements(beginningCash decimal.Decimal) entity.Statements {
	pl := f.pl
	pl.COGS = pl.DirectCosts.Add(pl.InfrastructureCosts)
	pl.GrossProfit = pl.Revenue.Sub(pl.COGS)
	pl.OperatingExpenses = pl.SalesMarketing.Add(pl.ResearchDevelopment).Add(pl.Admin)
	pl.NetProfit = pl.GrossProfit.Sub(pl.OperatingExpenses).Sub(pl.UnclassifiedExpenses)
	pl.ProfitMargin = ProfitMargin(pl.NetProfit, pl.Revenue)

	cf := f.cf
	cf.BeginningCash = beginningCash
	cf.NetCashFlow = cf.OperatingCashFlow.Add(cf.InvestingCashFlow).Add(cf.FinancingCashFlow)
	cf.EndingCash = cf.BeginningCash.Add(cf.NetCashFlow)

	p := f.position
	bs := entity.BalanceSheet{
		CashEquivalents:    cf.EndingCash,
		AccountsReceivable: p.accountsReceivable,
		Inventory:          p.inventory,
		FixedAssets:        p.fixedAssets,
		OtherAssets:        p.otherAssets,
		AccountsPayable:    p.accountsPayable,
		ShortTermDebt:      p.shortTermDebt,
		LongTermDebt:       p.longTermDebt,
		OtherLiabilities:   p.otherLiabilities,
		ContributedCapital: p.contributedCapital,
	}
	finishBalanceSheet(&bs)

	return entity.Statements{PL: pl, BalanceSheet: bs, CashFlow: cf}
}

// finishBalanceSheet derives totals and the plug equity line.
func finishBalanceSheet(bs *entity.BalanceSheet) {
	bs.TotalAssets = bs.CashEquivalents.Add(bs.AccountsReceivable).Add(bs.Inventory).
		Add(bs.FixedAssets).Add(bs.OtherAssets)
	bs.TotalLiabilities = bs.AccountsPayable.Add(bs.ShortTermDebt).Add(bs.LongTermDebt).
		Add(bs.OtherLiabilities)
	bs.TotalEquity = bs.TotalAssets.Sub(bs.TotalLiabilities)
	bs.Balances = IsBalanced(*bs, DefaultBalanceTolerance)
}
