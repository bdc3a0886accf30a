// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// ImbalanceNotifier alerts an owner that a consolidation failed validation.
type ImbalanceNotifier interface {
	NotifyImbalance(ctx context.Context, owner *entity.User, result *finance.ConsolidationResult) error
}
