package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// ProjectRunningBalance annotates budget lines with the cumulative balance
// starting from start. Lines are grouped by calendar date: every line on the
// same date carries the balance after the whole date, so same-day lines never
// show an intermediate value that depends on their order.
//
// The result is a sorted copy; input lines are not modified.
func ProjectRunningBalance(lines []*entity.BudgetLine, start decimal.Decimal) []*entity.BudgetLine {
	projected := make([]*entity.BudgetLine, 0, len(lines))
	for _, line := range lines {
		if line == nil {
			continue
		}
		copied := *line
		copied.Date = entity.DateOnly(line.Date)
		projected = append(projected, &copied)
	}

	sort.SliceStable(projected, func(i, j int) bool {
		return projected[i].Date.Before(projected[j].Date)
	})

	balance := start
	for i := 0; i < len(projected); {
		j := i
		for j < len(projected) && projected[j].Date.Equal(projected[i].Date) {
			balance = balance.Add(projected[j].Amount)
			j++
		}
		for k := i; k < j; k++ {
			projected[k].Balance = balance
		}
		i = j
	}

	return projected
}
