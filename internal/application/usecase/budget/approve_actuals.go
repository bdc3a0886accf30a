package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// ApproveActualsInput represents the input for posting an ACTUALS period to the ledger.
// An empty LineIDs approves every eligible line of the period.
type ApproveActualsInput struct {
	OwnerID  uuid.UUID
	PeriodID uuid.UUID
	LineIDs  []uuid.UUID
}

// PostedLineOutput pairs an approved line with the transaction created for it.
type PostedLineOutput struct {
	LineID        uuid.UUID
	TransactionID uuid.UUID
	ApprovedAt    time.Time
}

// ApproveActualsOutput represents the output of an actuals posting.
type ApproveActualsOutput struct {
	PeriodID uuid.UUID
	Posted   []PostedLineOutput
	Skipped  []finance.SkippedLine
}

// ApproveActualsUseCase turns the approved lines of an ACTUALS period into ledger
// transactions in one all-or-nothing batch.
type ApproveActualsUseCase struct {
	budgetRepo  adapter.BudgetRepository
	companyRepo adapter.CompanyRepository
	cache       adapter.StatementCache
	enabled     bool
}

// NewApproveActualsUseCase creates a new ApproveActualsUseCase instance.
func NewApproveActualsUseCase(
	budgetRepo adapter.BudgetRepository,
	companyRepo adapter.CompanyRepository,
	cache adapter.StatementCache,
	enabled bool,
) *ApproveActualsUseCase {
	return &ApproveActualsUseCase{
		budgetRepo:  budgetRepo,
		companyRepo: companyRepo,
		cache:       cache,
		enabled:     enabled,
	}
}

// Execute performs the posting.
func (uc *ApproveActualsUseCase) Execute(ctx context.Context, input ApproveActualsInput) (*ApproveActualsOutput, error) {
	if !uc.enabled {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeFeatureDisabled,
			"budget actuals posting is disabled",
			domainerror.ErrFeatureDisabled,
		)
	}

	period, owned, err := loadOwnedPeriod(ctx, uc.budgetRepo, uc.companyRepo, input.PeriodID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.budgetRepo.FindLinesByPeriod(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budget lines: %w", err)
	}
	selected, err := selectLines(lines, input.LineIDs)
	if err != nil {
		return nil, err
	}

	categories, err := uc.budgetRepo.FindCategoriesByCompany(ctx, owned.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budget categories: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.BudgetCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	plan, err := finance.PlanActualsPosting(period, selected, byID, time.Now().UTC())
	if err != nil {
		return nil, planError(err)
	}
	if len(plan.Postings) == 0 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNoEligibleLines,
			"no unapproved non-zero lines to post",
			domainerror.ErrNoEligibleLines,
		)
	}

	if err := uc.budgetRepo.PostActuals(ctx, plan.Postings); err != nil {
		if errors.Is(err, domainerror.ErrLineAlreadyApproved) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeLineAlreadyApproved,
				"a line was approved concurrently; nothing was posted",
				err,
			)
		}
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeActualsPostingFailed,
			"actuals posting rolled back",
			fmt.Errorf("%w: %v", domainerror.ErrActualsPostingFailed, err),
		)
	}

	if err := uc.cache.InvalidateOwner(ctx, input.OwnerID); err != nil {
		slog.Warn("Failed to invalidate consolidation cache",
			"ownerID", input.OwnerID,
			"error", err,
		)
	}

	output := &ApproveActualsOutput{
		PeriodID: period.ID,
		Posted:   make([]PostedLineOutput, len(plan.Postings)),
		Skipped:  plan.Skipped,
	}
	for i, posting := range plan.Postings {
		output.Posted[i] = PostedLineOutput{
			LineID:        posting.Line.ID,
			TransactionID: posting.Transaction.ID,
			ApprovedAt:    posting.ApprovedAt,
		}
	}

	slog.Info("Actuals posted",
		"periodID", period.ID,
		"companyID", owned.ID,
		"posted", len(plan.Postings),
		"skipped", len(plan.Skipped),
	)

	return output, nil
}

// selectLines picks the requested lines of the period. Every requested id must exist.
func selectLines(lines []*entity.BudgetLine, ids []uuid.UUID) ([]*entity.BudgetLine, error) {
	if len(ids) == 0 {
		return lines, nil
	}

	byID := make(map[uuid.UUID]*entity.BudgetLine, len(lines))
	for _, line := range lines {
		byID[line.ID] = line
	}

	selected := make([]*entity.BudgetLine, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		line, ok := byID[id]
		if !ok {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetLineNotFound,
				fmt.Sprintf("budget line %s not found in period", id),
				domainerror.ErrBudgetLineNotFound,
			)
		}
		selected = append(selected, line)
	}
	return selected, nil
}

func planError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrPeriodNotActuals):
		return domainerror.NewBudgetError(domainerror.ErrCodePeriodNotActuals, "only ACTUALS periods can be approved", err)
	case errors.Is(err, domainerror.ErrBudgetCategoryNotFound):
		return domainerror.NewBudgetError(domainerror.ErrCodeBudgetCategoryNotFound, "budget category not found", err)
	case errors.Is(err, domainerror.ErrBudgetLineNotFound):
		return domainerror.NewBudgetError(domainerror.ErrCodeBudgetLineNotFound, "budget line not found", err)
	case errors.Is(err, domainerror.ErrBudgetPeriodNotFound):
		return domainerror.NewBudgetError(domainerror.ErrCodeBudgetPeriodNotFound, "budget period not found", err)
	}
	return err
}
