// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// StatementRepository defines the interface for stored statement operations.
type StatementRepository interface {
	// ReplaceForCompany deletes the stored snapshots of the company that overlap window,
	// or all of them when window is nil, and inserts the given ones in a single
	// database transaction. Readers never observe a partial set.
	ReplaceForCompany(ctx context.Context, companyID uuid.UUID, window *entity.StatementPeriod, snapshots []*entity.StatementSnapshot) error

	// FindByCompany retrieves the stored snapshots of a company ordered by period start.
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.StatementSnapshot, error)

	// SaveConsolidationRun stores a consolidation result.
	SaveConsolidationRun(ctx context.Context, run *entity.ConsolidationRun) error

	// FindLatestConsolidationRun retrieves the most recent consolidation of an owner.
	FindLatestConsolidationRun(ctx context.Context, ownerID uuid.UUID) (*entity.ConsolidationRun, error)
}
