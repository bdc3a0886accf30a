// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/domain/finance"
)

// StatementCache caches consolidation results per owner.
type StatementCache interface {
	// GetConsolidation returns the cached result, or nil on a miss.
	GetConsolidation(ctx context.Context, ownerID uuid.UUID) (*finance.ConsolidationResult, error)

	// SetConsolidation stores a result for the configured TTL.
	SetConsolidation(ctx context.Context, ownerID uuid.UUID, result *finance.ConsolidationResult) error

	// InvalidateOwner drops every cached result of the owner.
	InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error
}
