// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/integration/persistence/model"
)

// statementRepository implements the adapter.StatementRepository interface.
type statementRepository struct {
	db *gorm.DB
}

// NewStatementRepository creates a new statement repository instance.
func NewStatementRepository(db *gorm.DB) adapter.StatementRepository {
	return &statementRepository{
		db: db,
	}
}

// ReplaceForCompany deletes the stored statements of a company that overlap window
// (all of them for a nil window) and recreates them from the snapshots in one
// database transaction. Snapshots outside the window are kept.
func (r *statementRepository) ReplaceForCompany(ctx context.Context, companyID uuid.UUID, window *entity.StatementPeriod, snapshots []*entity.StatementSnapshot) error {
	models := make([]*model.StatementSnapshotModel, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if snapshot.CompanyID != companyID {
			return fmt.Errorf("snapshot %s belongs to company %s", snapshot.ID, snapshot.CompanyID)
		}
		if window != nil && (snapshot.PeriodStart.Before(window.Start) || snapshot.PeriodEnd.After(window.End)) {
			return fmt.Errorf("snapshot %s lies outside the replaced range", snapshot.ID)
		}
		m, err := model.StatementSnapshotFromEntity(snapshot)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot %s: %w", snapshot.ID, err)
		}
		models = append(models, m)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scope := tx.Where("company_id = ?", companyID)
		if window != nil {
			scope = scope.Where("period_start <= ? AND period_end >= ?", window.End, window.Start)
		}
		if err := scope.Delete(&model.StatementSnapshotModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, 100).Error
	})
}

// FindByCompany retrieves the stored statements of a company ordered by period.
func (r *statementRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.StatementSnapshot, error) {
	var snapshotModels []model.StatementSnapshotModel
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("period_start ASC").
		Find(&snapshotModels)
	if result.Error != nil {
		return nil, result.Error
	}

	snapshots := make([]*entity.StatementSnapshot, len(snapshotModels))
	for i := range snapshotModels {
		snapshot, err := snapshotModels[i].ToEntity()
		if err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", snapshotModels[i].ID, err)
		}
		snapshots[i] = snapshot
	}
	return snapshots, nil
}

// SaveConsolidationRun stores a consolidation result.
func (r *statementRepository) SaveConsolidationRun(ctx context.Context, run *entity.ConsolidationRun) error {
	return r.db.WithContext(ctx).Create(model.ConsolidationRunFromEntity(run)).Error
}

// FindLatestConsolidationRun retrieves the most recent consolidation of an owner.
// Returns nil when the owner has never consolidated.
func (r *statementRepository) FindLatestConsolidationRun(ctx context.Context, ownerID uuid.UUID) (*entity.ConsolidationRun, error) {
	var runModel model.ConsolidationRunModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		First(&runModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return runModel.ToEntity(), nil
}
