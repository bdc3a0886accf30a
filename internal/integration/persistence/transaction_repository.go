// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/integration/persistence/model"
)

// intercompanyTypes are the stored type values treated as intercompany transfers.
var intercompanyTypes = []string{
	string(entity.TransactionTypeIntercompany),
	string(entity.TransactionTypeIntercompanyAlias),
}

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByCompany retrieves the transactions of a company matching the filter.
func (r *transactionRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", entity.DateOnly(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", entity.DateOnly(*filter.EndDate))
	}
	if filter.Type != nil {
		if filter.Type.IsIntercompany() {
			query = query.Where("LOWER(type) IN ?", intercompanyTypes)
		} else {
			query = query.Where("LOWER(type) = ?", string(filter.Type.Canonical()))
		}
	}

	return r.find(query)
}

// FindByCompanies retrieves every transaction of the given companies.
func (r *transactionRepository) FindByCompanies(ctx context.Context, companyIDs []uuid.UUID) ([]*entity.Transaction, error) {
	if len(companyIDs) == 0 {
		return []*entity.Transaction{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("company_id IN ?", companyIDs))
}

// FindIntercompanyByCompanies retrieves the intercompany rows of the given companies.
func (r *transactionRepository) FindIntercompanyByCompanies(ctx context.Context, companyIDs []uuid.UUID) ([]*entity.Transaction, error) {
	if len(companyIDs) == 0 {
		return []*entity.Transaction{}, nil
	}
	return r.find(r.db.WithContext(ctx).
		Where("company_id IN ?", companyIDs).
		Where("LOWER(type) IN ?", intercompanyTypes))
}

func (r *transactionRepository) find(query *gorm.DB) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := query.Order("date ASC, id ASC").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// UpdateTransfers rewrites the transfer fields of the given rows in one database transaction.
func (r *transactionRepository) UpdateTransfers(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, t := range transactions {
			result := tx.Model(&model.TransactionModel{}).
				Where("id = ?", t.ID).
				Where("company_id = ?", t.CompanyID).
				Updates(map[string]interface{}{
					"type":                    string(t.Type),
					"category":                t.Category,
					"amount":                  t.Amount,
					"direction":               string(t.Direction),
					"counterparty_company_id": t.CounterpartyCompanyID,
					"updated_at":              now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected != 1 {
				return fmt.Errorf("transaction %s: %w", t.ID, domainerror.ErrTransactionNotFound)
			}
		}
		return nil
	})
}

// DeleteByIDs deletes rows of one company in one database transaction.
func (r *transactionRepository) DeleteByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deletedCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ? AND company_id = ?", ids, companyID).Delete(&model.TransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("deleted %d of %d rows: %w", result.RowsAffected, len(ids), domainerror.ErrTransactionNotFound)
		}
		deletedCount = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedCount, nil
}

// CreateMirrors inserts mirror inflows in one database transaction.
func (r *transactionRepository) CreateMirrors(ctx context.Context, mirrors []*entity.Transaction) error {
	if len(mirrors) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, mirror := range mirrors {
			if mirror.SourceRef == nil {
				return fmt.Errorf("mirror %s has no source outflow", mirror.ID)
			}

			var existing int64
			if err := tx.Model(&model.TransactionModel{}).
				Where("source = ? AND source_ref = ?", string(entity.TransactionSourceIntercompanyMirror), *mirror.SourceRef).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return fmt.Errorf("outflow %s: %w", *mirror.SourceRef, domainerror.ErrMirrorAlreadyExists)
			}

			if err := tx.Create(model.TransactionFromEntity(mirror)).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("outflow %s: %w", *mirror.SourceRef, domainerror.ErrMirrorAlreadyExists)
				}
				return err
			}
		}
		return nil
	})
}
