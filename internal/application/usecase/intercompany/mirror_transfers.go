package intercompany

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
	"github.com/ventureboard/backend/internal/domain/valueobject"
)

// MirrorTransfersInput represents the input of a mirroring pass over all companies of an owner.
type MirrorTransfersInput struct {
	OwnerID uuid.UUID
	Apply   bool
}

// MirrorOutput is one proposed or created mirror inflow.
type MirrorOutput struct {
	OutflowID     uuid.UUID
	MirrorID      uuid.UUID
	FromCompanyID uuid.UUID
	ToCompanyID   uuid.UUID
	Date          time.Time
	Amount        decimal.Decimal
	Description   string
}

// MirrorTransfersOutput represents the output of a mirroring pass.
type MirrorTransfersOutput struct {
	Applied         bool
	Mirrors         []MirrorOutput
	AlreadyMirrored int
	Unresolved      []SkippedOutput
}

// MirrorTransfersUseCase creates the missing counterpart inflow of every outflow.
type MirrorTransfersUseCase struct {
	companyRepo     adapter.CompanyRepository
	transactionRepo adapter.TransactionRepository
	cache           adapter.StatementCache
	metrics         adapter.MetricsRecorder
	matching        valueobject.MatchingConfig
}

// NewMirrorTransfersUseCase creates a new MirrorTransfersUseCase instance.
func NewMirrorTransfersUseCase(
	companyRepo adapter.CompanyRepository,
	transactionRepo adapter.TransactionRepository,
	cache adapter.StatementCache,
	metrics adapter.MetricsRecorder,
	matching valueobject.MatchingConfig,
) *MirrorTransfersUseCase {
	return &MirrorTransfersUseCase{
		companyRepo:     companyRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		metrics:         metrics,
		matching:        matching,
	}
}

// Execute runs the mirroring pass.
func (uc *MirrorTransfersUseCase) Execute(ctx context.Context, input MirrorTransfersInput) (*MirrorTransfersOutput, error) {
	ledgers, err := loadOwnerLedgers(ctx, uc.companyRepo, uc.transactionRepo, input.OwnerID)
	if err != nil {
		return nil, err
	}

	plan := finance.PlanMirrors(ledgers, uc.matching, time.Now().UTC())

	output := &MirrorTransfersOutput{
		Mirrors:         make([]MirrorOutput, len(plan.Mirrors)),
		AlreadyMirrored: len(plan.AlreadyMirrored),
		Unresolved:      toSkippedOutputs(plan.Unresolved),
	}
	for i, m := range plan.Mirrors {
		output.Mirrors[i] = MirrorOutput{
			OutflowID:     m.Outflow.ID,
			MirrorID:      m.Mirror.ID,
			FromCompanyID: m.From.ID,
			ToCompanyID:   m.To.ID,
			Date:          m.Mirror.Date,
			Amount:        m.Mirror.Amount,
			Description:   m.Mirror.Description,
		}
	}

	if !input.Apply || len(plan.Mirrors) == 0 {
		return output, nil
	}

	mirrors := make([]*entity.Transaction, len(plan.Mirrors))
	for i, m := range plan.Mirrors {
		mirrors[i] = m.Mirror
	}
	if err := uc.transactionRepo.CreateMirrors(ctx, mirrors); err != nil {
		if errors.Is(err, domainerror.ErrMirrorAlreadyExists) {
			return nil, domainerror.NewIntercompanyError(
				domainerror.ErrCodeMirrorAlreadyExists,
				"a mirror was created concurrently; rerun the pass",
				err,
			)
		}
		return nil, maintenanceFailed(OperationMirror, err)
	}
	output.Applied = true
	afterApply(ctx, uc.cache, uc.metrics, input.OwnerID, OperationMirror, len(mirrors))

	return output, nil
}
