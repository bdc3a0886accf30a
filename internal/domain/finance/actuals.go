package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

// Reasons a budget line is left out of an actuals posting.
const (
	SkipReasonAlreadyApproved = "already approved"
	SkipReasonZeroAmount      = "zero amount"
)

// SkippedLine is a requested line that will not be posted.
type SkippedLine struct {
	LineID uuid.UUID `json:"lineId"`
	Reason string    `json:"reason"`
}

// ActualsPlan is the set of transactions to create and lines to approve in one
// all-or-nothing batch.
type ActualsPlan struct {
	Postings []entity.ActualsPosting
	Skipped  []SkippedLine
}

// PlanActualsPosting turns the unapproved, non-zero lines of an ACTUALS period into
// ledger transactions. Income categories post revenue with a positive amount;
// everything else posts an expense with a negative amount. Each posting carries
// the approved copy of its line; the inputs are not modified.
func PlanActualsPosting(
	period *entity.BudgetPeriod,
	lines []*entity.BudgetLine,
	categories map[uuid.UUID]*entity.BudgetCategory,
	now time.Time,
) (*ActualsPlan, error) {
	if period == nil {
		return nil, domainerror.ErrBudgetPeriodNotFound
	}
	if period.Type != entity.BudgetPeriodTypeActuals {
		return nil, domainerror.ErrPeriodNotActuals
	}

	plan := &ActualsPlan{}
	for _, line := range lines {
		if line == nil {
			continue
		}
		if line.PeriodID != period.ID {
			return nil, fmt.Errorf("line %s: %w", line.ID, domainerror.ErrBudgetLineNotFound)
		}
		if line.IsApproved {
			plan.Skipped = append(plan.Skipped, SkippedLine{LineID: line.ID, Reason: SkipReasonAlreadyApproved})
			continue
		}
		if line.Amount.IsZero() {
			plan.Skipped = append(plan.Skipped, SkippedLine{LineID: line.ID, Reason: SkipReasonZeroAmount})
			continue
		}

		category, ok := categories[line.CategoryID]
		if !ok || category == nil {
			return nil, fmt.Errorf("line %s: %w", line.ID, domainerror.ErrBudgetCategoryNotFound)
		}

		tx := actualsTransaction(period, line, category, now)
		approved := *line
		approvedAt := now
		transactionID := tx.ID
		approved.IsApproved = true
		approved.ApprovedAt = &approvedAt
		approved.TransactionID = &transactionID
		approved.UpdatedAt = now

		plan.Postings = append(plan.Postings, entity.ActualsPosting{
			Line:        &approved,
			Transaction: tx,
			ApprovedAt:  now,
		})
	}

	return plan, nil
}

func actualsTransaction(period *entity.BudgetPeriod, line *entity.BudgetLine, category *entity.BudgetCategory, now time.Time) *entity.Transaction {
	transactionType := entity.TransactionTypeExpense
	amount := line.Amount.Abs().Neg()
	if category.Type == entity.CategoryTypeIncome {
		transactionType = entity.TransactionTypeRevenue
		amount = line.Amount.Abs()
	}

	statementCategory := CategoryKey(category.StatementCategory)
	if statementCategory == "" {
		statementCategory = CategoryKey(category.Name)
	}

	description := "Actuals: " + category.Name
	if notes := strings.TrimSpace(line.Notes); notes != "" {
		description += " - " + notes
	}

	flags := entity.DefaultFlags(transactionType)
	sourceRef := line.ID

	return &entity.Transaction{
		ID:              uuid.New(),
		CompanyID:       period.CompanyID,
		Date:            entity.DateOnly(line.Date),
		Type:            transactionType,
		Category:        statementCategory,
		Amount:          amount,
		Description:     description,
		AffectsPL:       flags.AffectsPL,
		AffectsCashFlow: flags.AffectsCashFlow,
		AffectsBalance:  flags.AffectsBalance,
		Source:          entity.TransactionSourceBudgetActuals,
		SourceRef:       &sourceRef,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
