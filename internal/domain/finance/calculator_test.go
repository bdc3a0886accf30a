package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
)

func sampleLedger(company uuid.UUID) []*entity.Transaction {
	receivable := txn(company, "2025-01-20", entity.TransactionTypeAsset, "accounts_receivable", "1500", "")
	receivable.AffectsCashFlow = false

	return []*entity.Transaction{
		txn(company, "2025-01-01", entity.TransactionTypeEquity, "seed", "50000", "seed round"),
		txn(company, "2025-01-05", entity.TransactionTypeRevenue, "subscriptions", "12000", ""),
		txn(company, "2025-01-06", entity.TransactionTypeExpense, "direct_costs", "-2000", ""),
		txn(company, "2025-01-06", entity.TransactionTypeExpense, "hosting", "-1000", ""),
		txn(company, "2025-01-07", entity.TransactionTypeExpense, "marketing", "-3000", ""),
		txn(company, "2025-01-07", entity.TransactionTypeExpense, "engineering", "-4000", ""),
		txn(company, "2025-01-08", entity.TransactionTypeExpense, "admin", "-500", ""),
		txn(company, "2025-01-08", entity.TransactionTypeExpense, "travel", "-250", ""),
		txn(company, "2025-01-10", entity.TransactionTypeAsset, "equipment", "6000", ""),
		receivable,
		txn(company, "2025-01-25", entity.TransactionTypeLiability, "long_term_debt", "20000", ""),
		txn(company, "2025-01-28", entity.TransactionTypeLiability, "accounts_payable", "800", ""),
	}
}

func TestCalculate(t *testing.T) {
	s := Calculate(sampleLedger(uuid.New()), dec("10000"))

	t.Run("profit and loss", func(t *testing.T) {
		assertDecimal(t, "revenue", "12000", s.PL.Revenue)
		assertDecimal(t, "revenue by category", "12000", s.PL.RevenueByCategory["subscriptions"])
		assertDecimal(t, "direct costs", "2000", s.PL.DirectCosts)
		assertDecimal(t, "infrastructure", "1000", s.PL.InfrastructureCosts)
		assertDecimal(t, "cogs", "3000", s.PL.COGS)
		assertDecimal(t, "gross profit", "9000", s.PL.GrossProfit)
		assertDecimal(t, "sales and marketing", "3000", s.PL.SalesMarketing)
		assertDecimal(t, "research and development", "4000", s.PL.ResearchDevelopment)
		assertDecimal(t, "admin", "500", s.PL.Admin)
		assertDecimal(t, "operating expenses", "7500", s.PL.OperatingExpenses)
		assertDecimal(t, "unclassified", "250", s.PL.UnclassifiedExpenses)
		assertDecimal(t, "net profit", "1250", s.PL.NetProfit)
		assertDecimal(t, "profit margin", "10.42", s.PL.ProfitMargin)
	})

	t.Run("cash flow", func(t *testing.T) {
		assertDecimal(t, "beginning", "10000", s.CashFlow.BeginningCash)
		assertDecimal(t, "operating", "2050", s.CashFlow.OperatingCashFlow)
		assertDecimal(t, "investing", "-6000", s.CashFlow.InvestingCashFlow)
		assertDecimal(t, "financing", "70000", s.CashFlow.FinancingCashFlow)
		assertDecimal(t, "net", "66050", s.CashFlow.NetCashFlow)
		assertDecimal(t, "ending", "76050", s.CashFlow.EndingCash)
	})

	t.Run("balance sheet", func(t *testing.T) {
		assertDecimal(t, "cash", "76050", s.BalanceSheet.CashEquivalents)
		assertDecimal(t, "receivables", "1500", s.BalanceSheet.AccountsReceivable)
		assertDecimal(t, "fixed assets", "6000", s.BalanceSheet.FixedAssets)
		assertDecimal(t, "total assets", "83550", s.BalanceSheet.TotalAssets)
		assertDecimal(t, "total liabilities", "20800", s.BalanceSheet.TotalLiabilities)
		assertDecimal(t, "contributed capital", "50000", s.BalanceSheet.ContributedCapital)
		assertDecimal(t, "total equity", "62750", s.BalanceSheet.TotalEquity)
		if !s.BalanceSheet.Balances {
			t.Error("expected balance sheet to balance")
		}
	})

	t.Run("ending cash equals balance sheet cash", func(t *testing.T) {
		if !s.CashFlow.EndingCash.Equal(s.BalanceSheet.CashEquivalents) {
			t.Errorf("ending cash %s != cash equivalents %s", s.CashFlow.EndingCash, s.BalanceSheet.CashEquivalents)
		}
	})
}

func TestCalculateEmptyLedger(t *testing.T) {
	s := Calculate(nil, dec("2500"))

	assertDecimal(t, "ending cash", "2500", s.CashFlow.EndingCash)
	assertDecimal(t, "total equity", "2500", s.BalanceSheet.TotalEquity)
	assertDecimal(t, "profit margin", "0", s.PL.ProfitMargin)
	if !s.BalanceSheet.Balances {
		t.Error("expected empty ledger to balance")
	}
}

func TestCalculateIsOrderIndependentAndIdempotent(t *testing.T) {
	ledger := sampleLedger(uuid.New())

	first := mustJSON(t, Calculate(ledger, dec("10000")))
	again := mustJSON(t, Calculate(ledger, dec("10000")))
	shuffled := mustJSON(t, Calculate(reversed(ledger), dec("10000")))

	if first != again {
		t.Error("repeated calculation produced a different result")
	}
	if first != shuffled {
		t.Error("calculation depends on input order")
	}
}

func TestCalculateUnclassifiedCashDoesNotMoveCash(t *testing.T) {
	company := uuid.New()
	ledger := []*entity.Transaction{
		txn(company, "2025-02-01", entity.TransactionTypeAsset, "prepaid", "300", ""),
	}

	s := Calculate(ledger, decimal.Zero)

	assertDecimal(t, "unclassified", "300", s.CashFlow.UnclassifiedCashFlow)
	assertDecimal(t, "ending cash", "0", s.CashFlow.EndingCash)
	assertDecimal(t, "other assets", "300", s.BalanceSheet.OtherAssets)
	assertDecimal(t, "equity", "300", s.BalanceSheet.TotalEquity)
}

func TestCalculateAsOf(t *testing.T) {
	company := uuid.New()
	ledger := []*entity.Transaction{
		txn(company, "2025-01-05", entity.TransactionTypeRevenue, "services", "100", ""),
		txn(company, "2025-02-05", entity.TransactionTypeRevenue, "services", "200", ""),
	}

	s := CalculateAsOf(ledger, decimal.Zero, day("2025-01-31"))

	assertDecimal(t, "revenue", "100", s.PL.Revenue)
	if s.Period == nil || !s.Period.End.Equal(day("2025-01-31")) {
		t.Errorf("expected period ending 2025-01-31, got %+v", s.Period)
	}
}

func TestCalculateSeries(t *testing.T) {
	company := uuid.New()
	ledger := []*entity.Transaction{
		txn(company, "2025-01-01", entity.TransactionTypeEquity, "seed", "10000", ""),
		txn(company, "2025-01-15", entity.TransactionTypeRevenue, "services", "1000", ""),
		txn(company, "2025-02-03", entity.TransactionTypeExpense, "admin", "-400", ""),
		txn(company, "2025-02-20", entity.TransactionTypeAsset, "equipment", "2000", ""),
		txn(company, "2025-03-10", entity.TransactionTypeRevenue, "services", "1500", ""),
	}

	series := CalculateSeries(ledger, dec("500"), MonthlyPeriods(day("2025-01-01"), day("2025-03-31")))
	if len(series) != 3 {
		t.Fatalf("expected 3 periods, got %d", len(series))
	}

	t.Run("periods chain", func(t *testing.T) {
		for i := 1; i < len(series); i++ {
			if !series[i].CashFlow.BeginningCash.Equal(series[i-1].CashFlow.EndingCash) {
				t.Errorf("period %d begins at %s, previous ended at %s",
					i, series[i].CashFlow.BeginningCash, series[i-1].CashFlow.EndingCash)
			}
		}
	})

	t.Run("flows are per period", func(t *testing.T) {
		assertDecimal(t, "january revenue", "1000", series[0].PL.Revenue)
		assertDecimal(t, "february admin", "400", series[1].PL.Admin)
		assertDecimal(t, "february investing", "-2000", series[1].CashFlow.InvestingCashFlow)
		assertDecimal(t, "march revenue", "1500", series[2].PL.Revenue)
	})

	t.Run("balance sheet is cumulative", func(t *testing.T) {
		assertDecimal(t, "march fixed assets", "2000", series[2].BalanceSheet.FixedAssets)
		assertDecimal(t, "march contributed capital", "10000", series[2].BalanceSheet.ContributedCapital)

		whole := Calculate(ledger, dec("500"))
		assertDecimal(t, "march ending cash", whole.CashFlow.EndingCash.String(), series[2].CashFlow.EndingCash)
		assertDecimal(t, "march total assets", whole.BalanceSheet.TotalAssets.String(), series[2].BalanceSheet.TotalAssets)
		for i, s := range series {
			if !s.BalanceSheet.Balances {
				t.Errorf("period %d does not balance", i)
			}
		}
	})
}

func TestCalculateSeriesRollsEarlierTransactionsIntoBeginningCash(t *testing.T) {
	company := uuid.New()
	ledger := []*entity.Transaction{
		txn(company, "2024-12-20", entity.TransactionTypeEquity, "seed", "1000", ""),
		txn(company, "2025-01-10", entity.TransactionTypeRevenue, "services", "50", ""),
	}

	series := CalculateSeries(ledger, decimal.Zero, MonthlyPeriods(day("2025-01-01"), day("2025-01-31")))

	assertDecimal(t, "beginning cash", "1000", series[0].CashFlow.BeginningCash)
	assertDecimal(t, "financing", "0", series[0].CashFlow.FinancingCashFlow)
	assertDecimal(t, "contributed capital", "1000", series[0].BalanceSheet.ContributedCapital)
	assertDecimal(t, "ending cash", "1050", series[0].CashFlow.EndingCash)
}

func TestMonthlyPeriods(t *testing.T) {
	periods := MonthlyPeriods(day("2024-01-15"), day("2024-03-10"))

	expected := []entity.StatementPeriod{
		{Start: day("2024-01-15"), End: day("2024-01-31")},
		{Start: day("2024-02-01"), End: day("2024-02-29")},
		{Start: day("2024-03-01"), End: day("2024-03-10")},
	}
	if len(periods) != len(expected) {
		t.Fatalf("expected %d periods, got %d", len(expected), len(periods))
	}
	for i := range expected {
		if !periods[i].Start.Equal(expected[i].Start) || !periods[i].End.Equal(expected[i].End) {
			t.Errorf("period %d: expected %v..%v, got %v..%v",
				i, expected[i].Start, expected[i].End, periods[i].Start, periods[i].End)
		}
	}

	if got := MonthlyPeriods(day("2024-02-01"), day("2024-01-01")); got != nil {
		t.Errorf("expected no periods for reversed range, got %v", got)
	}
}

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name     string
		net      string
		revenue  string
		expected string
	}{
		{"zero revenue", "-100", "0", "0"},
		{"rounded to cents", "1", "3", "33.33"},
		{"loss", "-50", "200", "-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, "margin", tt.expected, ProfitMargin(dec(tt.net), dec(tt.revenue)))
		})
	}
}
