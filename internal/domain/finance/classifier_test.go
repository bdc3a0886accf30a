package finance

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/domain/entity"
)

func TestClassify(t *testing.T) {
	company := uuid.New()

	tests := []struct {
		name          string
		tx            *entity.Transaction
		expectedPL    PLBucket
		plAmount      string
		expectedCF    CashFlowBucket
		cashAmount    string
		intercompany  bool
		expectedLine  BalanceLine
		balanceAmount string
	}{
		{
			name:       "revenue is operating income",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeRevenue, "subscriptions", "1000", ""),
			expectedPL: PLBucketRevenue, plAmount: "1000",
			expectedCF: CashFlowBucketOperating, cashAmount: "1000",
		},
		{
			name:       "hosting is infrastructure cost",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeExpense, "hosting", "-200", ""),
			expectedPL: PLBucketInfrastructure, plAmount: "200",
			expectedCF: CashFlowBucketOperating, cashAmount: "-200",
		},
		{
			name:       "free-form sales and marketing label",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeExpense, "Sales & Marketing", "-75", ""),
			expectedPL: PLBucketSalesMarketing, plAmount: "75",
			expectedCF: CashFlowBucketOperating, cashAmount: "-75",
		},
		{
			name:       "unknown expense category is unclassified",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeExpense, "travel", "-50", ""),
			expectedPL: PLBucketUnclassified, plAmount: "50",
			expectedCF: CashFlowBucketOperating, cashAmount: "-50",
		},
		{
			name:       "equipment purchase is investing outflow",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeAsset, "equipment", "5000", ""),
			expectedCF: CashFlowBucketInvesting, cashAmount: "-5000",
			expectedLine: BalanceLineFixedAssets, balanceAmount: "5000",
		},
		{
			name:       "inventory purchase is investing outflow",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeAsset, "inventory", "700", ""),
			expectedCF: CashFlowBucketInvesting, cashAmount: "-700",
			expectedLine: BalanceLineInventory, balanceAmount: "700",
		},
		{
			name:       "cash asset moves cash only",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeAsset, "cash", "300", ""),
			expectedCF: CashFlowBucketOperating, cashAmount: "300",
			expectedLine: BalanceLineNone,
		},
		{
			name:       "receivable is unclassified cash and an asset line",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeAsset, "accounts_receivable", "400", ""),
			expectedCF: CashFlowBucketUnclassified, cashAmount: "400",
			expectedLine: BalanceLineAccountsReceivable, balanceAmount: "400",
		},
		{
			name:       "long term debt is financing",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeLiability, "long_term_debt", "10000", ""),
			expectedCF: CashFlowBucketFinancing, cashAmount: "10000",
			expectedLine: BalanceLineLongTermDebt, balanceAmount: "10000",
		},
		{
			name:       "accounts payable is operating",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeLiability, "accounts_payable", "250", ""),
			expectedCF: CashFlowBucketOperating, cashAmount: "250",
			expectedLine: BalanceLineAccountsPayable, balanceAmount: "250",
		},
		{
			name:       "unknown liability category",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeLiability, "accrued_wages", "90", ""),
			expectedCF: CashFlowBucketUnclassified, cashAmount: "90",
			expectedLine: BalanceLineOtherLiabilities, balanceAmount: "90",
		},
		{
			name:       "equity is financing and contributed capital",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeEquity, "seed", "50000", ""),
			expectedCF: CashFlowBucketFinancing, cashAmount: "50000",
			expectedLine: BalanceLineContributedCapital, balanceAmount: "50000",
		},
		{
			name:       "intercompany is operating as stored",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeIntercompany, "transfer_out", "-1000", ""),
			expectedCF: CashFlowBucketOperating, cashAmount: "-1000", intercompany: true,
			expectedLine: BalanceLineNone,
		},
		{
			name:       "intercompany alias type",
			tx:         txn(company, "2025-01-10", entity.TransactionTypeIntercompanyAlias, "transfer_in", "1000", ""),
			expectedCF: CashFlowBucketOperating, cashAmount: "1000", intercompany: true,
		},
		{
			name:       "unknown type only reaches unclassified cash",
			tx:         &entity.Transaction{Type: "misc", Category: "x", Amount: dec("12"), AffectsPL: true, AffectsCashFlow: true, AffectsBalance: true},
			expectedCF: CashFlowBucketUnclassified, cashAmount: "12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.tx)

			if c.PL != tt.expectedPL {
				t.Errorf("PL bucket: expected %q, got %q", tt.expectedPL, c.PL)
			}
			if tt.plAmount != "" {
				assertDecimal(t, "PL amount", tt.plAmount, c.PLAmount)
			}
			if c.CashFlow != tt.expectedCF {
				t.Errorf("cash flow bucket: expected %q, got %q", tt.expectedCF, c.CashFlow)
			}
			if tt.cashAmount != "" {
				assertDecimal(t, "cash amount", tt.cashAmount, c.CashAmount)
			}
			if c.Intercompany != tt.intercompany {
				t.Errorf("intercompany: expected %v, got %v", tt.intercompany, c.Intercompany)
			}
			if c.Balance != tt.expectedLine {
				t.Errorf("balance line: expected %q, got %q", tt.expectedLine, c.Balance)
			}
			if tt.balanceAmount != "" {
				assertDecimal(t, "balance amount", tt.balanceAmount, c.BalanceAmount)
			}
		})
	}
}

func TestClassifyRespectsFlags(t *testing.T) {
	tx := txn(uuid.New(), "2025-01-10", entity.TransactionTypeRevenue, "services", "100", "")
	tx.AffectsPL = false
	tx.AffectsCashFlow = false

	c := Classify(tx)
	if c.PL != PLBucketNone || c.CashFlow != CashFlowBucketNone || c.Balance != BalanceLineNone {
		t.Errorf("expected no effect with all flags off, got %+v", c)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	types := []entity.TransactionType{
		entity.TransactionTypeRevenue, entity.TransactionTypeExpense, entity.TransactionTypeAsset,
		entity.TransactionTypeLiability, entity.TransactionTypeEquity, entity.TransactionTypeIntercompany,
		entity.TransactionTypeIntercompanyAlias, "", "unknown",
	}
	categories := []string{
		"", "cash", "accounts_receivable", "accounts_payable", "short_term_debt", "long_term_debt",
		"equipment", "inventory", "transfer_in", "transfer_out", "direct_costs", "hosting", "marketing",
		"engineering", "admin", "something else", "  Weird / Label  ",
	}

	for _, transactionType := range types {
		for _, category := range categories {
			tx := &entity.Transaction{
				Type: transactionType, Category: category, Amount: dec("1"),
				AffectsPL: true, AffectsCashFlow: true, AffectsBalance: true,
			}
			c := Classify(tx)
			if c.CashFlow == CashFlowBucketNone {
				t.Errorf("type %q category %q: cash flow flag set but no bucket", transactionType, category)
			}
		}
	}

	if c := Classify(nil); c.PL != PLBucketNone {
		t.Errorf("nil transaction should classify to nothing, got %+v", c)
	}
}

func TestCategoryKey(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"admin", "admin"},
		{"  Sales & Marketing ", "sales_marketing"},
		{"R&D", "r_d"},
		{"cost-of-goods-sold", "cost_of_goods_sold"},
		{"Transfer_Out", "transfer_out"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CategoryKey(tt.in); got != tt.expected {
				t.Errorf("CategoryKey(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}
