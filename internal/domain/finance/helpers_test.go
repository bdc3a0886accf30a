package finance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// txn builds a transaction with the default flags of its type.
func txn(companyID uuid.UUID, date string, transactionType entity.TransactionType, category, amount, description string) *entity.Transaction {
	flags := entity.DefaultFlags(transactionType)
	return &entity.Transaction{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Date:            day(date),
		Type:            transactionType,
		Category:        category,
		Amount:          dec(amount),
		Description:     description,
		AffectsPL:       flags.AffectsPL,
		AffectsCashFlow: flags.AffectsCashFlow,
		AffectsBalance:  flags.AffectsBalance,
		Source:          entity.TransactionSourceManual,
	}
}

func assertDecimal(t *testing.T, field, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s: expected %s, got %s", field, want, got)
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func reversed(transactions []*entity.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, len(transactions))
	for i, tx := range transactions {
		out[len(transactions)-1-i] = tx
	}
	return out
}
