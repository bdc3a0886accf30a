package finance

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/domain/entity"
)

func TestProjectRunningBalance(t *testing.T) {
	period, company, category := uuid.New(), uuid.New(), uuid.New()
	jan1a := entity.NewBudgetLine(period, company, category, day("2025-01-01"), dec("100"), "")
	jan1b := entity.NewBudgetLine(period, company, category, day("2025-01-01"), dec("-30"), "")
	jan2 := entity.NewBudgetLine(period, company, category, day("2025-01-02"), dec("50"), "")
	jan5 := entity.NewBudgetLine(period, company, category, day("2025-01-05"), dec("-200"), "")

	tests := []struct {
		name  string
		input []*entity.BudgetLine
	}{
		{"chronological input", []*entity.BudgetLine{jan1a, jan1b, jan2, jan5}},
		{"reversed input", []*entity.BudgetLine{jan5, jan2, jan1b, jan1a}},
		{"same-day lines swapped", []*entity.BudgetLine{jan1b, jan1a, jan5, jan2}},
	}

	expected := map[uuid.UUID]string{
		jan1a.ID: "1070",
		jan1b.ID: "1070",
		jan2.ID:  "1120",
		jan5.ID:  "920",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projected := ProjectRunningBalance(tt.input, dec("1000"))

			if len(projected) != 4 {
				t.Fatalf("expected 4 lines, got %d", len(projected))
			}
			for i := 1; i < len(projected); i++ {
				if projected[i].Date.Before(projected[i-1].Date) {
					t.Errorf("line %d is out of date order", i)
				}
			}
			for _, line := range projected {
				assertDecimal(t, line.Date.Format("2006-01-02"), expected[line.ID], line.Balance)
			}
		})
	}

	if !jan1a.Balance.IsZero() {
		t.Error("input lines must not be modified")
	}
}

func TestProjectRunningBalanceEmpty(t *testing.T) {
	if got := ProjectRunningBalance(nil, dec("10")); len(got) != 0 {
		t.Errorf("expected no lines, got %d", len(got))
	}
}
