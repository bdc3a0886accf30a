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
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// CreatePeriod creates a new budget period.
func (r *budgetRepository) CreatePeriod(ctx context.Context, period *entity.BudgetPeriod) error {
	return r.db.WithContext(ctx).Create(model.BudgetPeriodFromEntity(period)).Error
}

// FindPeriodByID retrieves a budget period by its ID.
func (r *budgetRepository) FindPeriodByID(ctx context.Context, id uuid.UUID) (*entity.BudgetPeriod, error) {
	var periodModel model.BudgetPeriodModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&periodModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetPeriodNotFound
		}
		return nil, result.Error
	}
	return periodModel.ToEntity(), nil
}

// CreateCategory creates a new budget category.
func (r *budgetRepository) CreateCategory(ctx context.Context, category *entity.BudgetCategory) error {
	return r.db.WithContext(ctx).Create(model.BudgetCategoryFromEntity(category)).Error
}

// FindCategoryByID retrieves a budget category by its ID.
func (r *budgetRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.BudgetCategory, error) {
	var categoryModel model.BudgetCategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindCategoriesByCompany retrieves all budget categories of a company.
func (r *budgetRepository) FindCategoriesByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.BudgetCategory, error) {
	var categoryModels []model.BudgetCategoryModel
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.BudgetCategory, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// CreateLine creates a new budget line.
func (r *budgetRepository) CreateLine(ctx context.Context, line *entity.BudgetLine) error {
	return r.db.WithContext(ctx).Create(model.BudgetLineFromEntity(line)).Error
}

// FindLinesByPeriod retrieves all lines of a period in date order.
func (r *budgetRepository) FindLinesByPeriod(ctx context.Context, periodID uuid.UUID) ([]*entity.BudgetLine, error) {
	var lineModels []model.BudgetLineModel
	result := r.db.WithContext(ctx).
		Where("period_id = ?", periodID).
		Order("date ASC, created_at ASC, id ASC").
		Find(&lineModels)
	if result.Error != nil {
		return nil, result.Error
	}

	lines := make([]*entity.BudgetLine, len(lineModels))
	for i := range lineModels {
		lines[i] = lineModels[i].ToEntity()
	}
	return lines, nil
}

// PostActuals creates every posting transaction and approves every posting line in one
// database transaction. A line approved by someone else in the meantime rolls the
// whole batch back.
func (r *budgetRepository) PostActuals(ctx context.Context, postings []entity.ActualsPosting) error {
	if len(postings) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, posting := range postings {
			if err := tx.Create(model.TransactionFromEntity(posting.Transaction)).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("line %s: %w", posting.Line.ID, domainerror.ErrLineAlreadyApproved)
				}
				return err
			}

			result := tx.Model(&model.BudgetLineModel{}).
				Where("id = ?", posting.Line.ID).
				Where("is_approved = ?", false).
				Updates(map[string]interface{}{
					"is_approved":    true,
					"approved_at":    posting.ApprovedAt,
					"transaction_id": posting.Transaction.ID,
					"updated_at":     posting.ApprovedAt,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected != 1 {
				return fmt.Errorf("line %s: %w", posting.Line.ID, domainerror.ErrLineAlreadyApproved)
			}
		}
		return nil
	})
}
