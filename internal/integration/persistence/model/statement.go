// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// StatementSnapshotModel represents the statement_snapshots table in the database.
type StatementSnapshotModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_statement_snapshots_company_period,priority:1"`
	PeriodStart  time.Time      `gorm:"type:date;not null;index:idx_statement_snapshots_company_period,priority:2"`
	PeriodEnd    time.Time      `gorm:"type:date;not null"`
	Statements   datatypes.JSON `gorm:"not null"`
	CalculatedAt time.Time      `gorm:"not null"`
}

// TableName returns the table name for the StatementSnapshotModel.
func (StatementSnapshotModel) TableName() string {
	return "statement_snapshots"
}

// ToEntity converts a StatementSnapshotModel to a domain StatementSnapshot entity.
func (m *StatementSnapshotModel) ToEntity() (*entity.StatementSnapshot, error) {
	snapshot := &entity.StatementSnapshot{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		PeriodStart:  entity.DateOnly(m.PeriodStart),
		PeriodEnd:    entity.DateOnly(m.PeriodEnd),
		CalculatedAt: m.CalculatedAt,
	}
	if err := json.Unmarshal(m.Statements, &snapshot.Statements); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// StatementSnapshotFromEntity creates a StatementSnapshotModel from a domain StatementSnapshot entity.
func StatementSnapshotFromEntity(snapshot *entity.StatementSnapshot) (*StatementSnapshotModel, error) {
	payload, err := json.Marshal(snapshot.Statements)
	if err != nil {
		return nil, err
	}
	return &StatementSnapshotModel{
		ID:           snapshot.ID,
		CompanyID:    snapshot.CompanyID,
		PeriodStart:  snapshot.PeriodStart,
		PeriodEnd:    snapshot.PeriodEnd,
		Statements:   datatypes.JSON(payload),
		CalculatedAt: snapshot.CalculatedAt,
	}, nil
}

// ConsolidationRunModel represents the consolidation_runs table in the database.
type ConsolidationRunModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	IsValid   bool           `gorm:"not null"`
	Result    datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for the ConsolidationRunModel.
func (ConsolidationRunModel) TableName() string {
	return "consolidation_runs"
}

// ToEntity converts a ConsolidationRunModel to a domain ConsolidationRun entity.
func (m *ConsolidationRunModel) ToEntity() *entity.ConsolidationRun {
	return &entity.ConsolidationRun{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		IsValid:   m.IsValid,
		Result:    []byte(m.Result),
		CreatedAt: m.CreatedAt,
	}
}

// ConsolidationRunFromEntity creates a ConsolidationRunModel from a domain ConsolidationRun entity.
func ConsolidationRunFromEntity(run *entity.ConsolidationRun) *ConsolidationRunModel {
	return &ConsolidationRunModel{
		ID:        run.ID,
		OwnerID:   run.OwnerID,
		IsValid:   run.IsValid,
		Result:    datatypes.JSON(run.Result),
		CreatedAt: run.CreatedAt,
	}
}

// AllModels lists every model managed by AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&CompanyModel{},
		&TransactionModel{},
		&BudgetPeriodModel{},
		&BudgetCategoryModel{},
		&BudgetLineModel{},
		&StatementSnapshotModel{},
		&ConsolidationRunModel{},
	}
}
