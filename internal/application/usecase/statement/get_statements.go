// Package statement contains financial statement use cases.
package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// Statement sources.
const (
	SourceStored     = "stored"
	SourceCalculated = "calculated"
)

// GetStatementsInput represents the input for reading statements.
// With AsOf set the statements are calculated on the fly from the ledger.
type GetStatementsInput struct {
	OwnerID   uuid.UUID
	CompanyID uuid.UUID
	AsOf      *time.Time
}

// GetStatementsOutput represents the output of reading statements.
type GetStatementsOutput struct {
	CompanyID    uuid.UUID
	Source       string
	Periods      []entity.Statements
	CalculatedAt time.Time
}

// GetStatementsUseCase returns stored statements or an as-of calculation.
type GetStatementsUseCase struct {
	companyRepo     adapter.CompanyRepository
	transactionRepo adapter.TransactionRepository
	statementRepo   adapter.StatementRepository
}

// NewGetStatementsUseCase creates a new GetStatementsUseCase instance.
func NewGetStatementsUseCase(
	companyRepo adapter.CompanyRepository,
	transactionRepo adapter.TransactionRepository,
	statementRepo adapter.StatementRepository,
) *GetStatementsUseCase {
	return &GetStatementsUseCase{
		companyRepo:     companyRepo,
		transactionRepo: transactionRepo,
		statementRepo:   statementRepo,
	}
}

// Execute reads the statements.
func (uc *GetStatementsUseCase) Execute(ctx context.Context, input GetStatementsInput) (*GetStatementsOutput, error) {
	owned, err := company.LoadOwnedCompany(ctx, uc.companyRepo, input.CompanyID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.AsOf != nil {
		asOf := entity.DateOnly(*input.AsOf)
		transactions, err := uc.transactionRepo.FindByCompany(ctx, owned.ID, adapter.TransactionFilter{EndDate: &asOf})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch transactions: %w", err)
		}
		return &GetStatementsOutput{
			CompanyID:    owned.ID,
			Source:       SourceCalculated,
			Periods:      []entity.Statements{finance.CalculateAsOf(transactions, owned.OpeningCash, asOf)},
			CalculatedAt: time.Now().UTC(),
		}, nil
	}

	snapshots, err := uc.statementRepo.FindByCompany(ctx, owned.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statements: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementsNotFound,
			"no statements stored; recalculate first",
			domainerror.ErrStatementsNotFound,
		)
	}

	output := &GetStatementsOutput{
		CompanyID: owned.ID,
		Source:    SourceStored,
		Periods:   make([]entity.Statements, len(snapshots)),
	}
	for i, snapshot := range snapshots {
		output.Periods[i] = snapshot.Statements
		if snapshot.CalculatedAt.After(output.CalculatedAt) {
			output.CalculatedAt = snapshot.CalculatedAt
		}
	}
	return output, nil
}
