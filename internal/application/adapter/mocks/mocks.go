// Package mocks provides testify doubles of the application adapters for use-case tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// CompanyRepository is a mock of adapter.CompanyRepository.
type CompanyRepository struct {
	mock.Mock
}

func (m *CompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *CompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

func (m *CompanyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Company, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Company), args.Error(1)
}

func (m *CompanyRepository) ExistsByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

// TransactionRepository is a mock of adapter.TransactionRepository.
type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return m.Called(ctx, transaction).Error(0)
}

func (m *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *TransactionRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *TransactionRepository) FindByCompanies(ctx context.Context, companyIDs []uuid.UUID) ([]*entity.Transaction, error) {
	args := m.Called(ctx, companyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *TransactionRepository) FindIntercompanyByCompanies(ctx context.Context, companyIDs []uuid.UUID) ([]*entity.Transaction, error) {
	args := m.Called(ctx, companyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *TransactionRepository) UpdateTransfers(ctx context.Context, transactions []*entity.Transaction) error {
	return m.Called(ctx, transactions).Error(0)
}

func (m *TransactionRepository) DeleteByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TransactionRepository) CreateMirrors(ctx context.Context, mirrors []*entity.Transaction) error {
	return m.Called(ctx, mirrors).Error(0)
}

// UserRepository is a mock of adapter.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// StatementRepository is a mock of adapter.StatementRepository.
type StatementRepository struct {
	mock.Mock
}

func (m *StatementRepository) ReplaceForCompany(ctx context.Context, companyID uuid.UUID, window *entity.StatementPeriod, snapshots []*entity.StatementSnapshot) error {
	return m.Called(ctx, companyID, window, snapshots).Error(0)
}

func (m *StatementRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.StatementSnapshot, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.StatementSnapshot), args.Error(1)
}

func (m *StatementRepository) SaveConsolidationRun(ctx context.Context, run *entity.ConsolidationRun) error {
	return m.Called(ctx, run).Error(0)
}

func (m *StatementRepository) FindLatestConsolidationRun(ctx context.Context, ownerID uuid.UUID) (*entity.ConsolidationRun, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ConsolidationRun), args.Error(1)
}

// BudgetRepository is a mock of adapter.BudgetRepository.
type BudgetRepository struct {
	mock.Mock
}

func (m *BudgetRepository) CreatePeriod(ctx context.Context, period *entity.BudgetPeriod) error {
	return m.Called(ctx, period).Error(0)
}

func (m *BudgetRepository) FindPeriodByID(ctx context.Context, id uuid.UUID) (*entity.BudgetPeriod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BudgetPeriod), args.Error(1)
}

func (m *BudgetRepository) CreateCategory(ctx context.Context, category *entity.BudgetCategory) error {
	return m.Called(ctx, category).Error(0)
}

func (m *BudgetRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.BudgetCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BudgetCategory), args.Error(1)
}

func (m *BudgetRepository) FindCategoriesByCompany(ctx context.Context, companyID uuid.UUID) ([]*entity.BudgetCategory, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BudgetCategory), args.Error(1)
}

func (m *BudgetRepository) CreateLine(ctx context.Context, line *entity.BudgetLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *BudgetRepository) FindLinesByPeriod(ctx context.Context, periodID uuid.UUID) ([]*entity.BudgetLine, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BudgetLine), args.Error(1)
}

func (m *BudgetRepository) PostActuals(ctx context.Context, postings []entity.ActualsPosting) error {
	return m.Called(ctx, postings).Error(0)
}

// StatementCache is a mock of adapter.StatementCache.
type StatementCache struct {
	mock.Mock
}

func (m *StatementCache) GetConsolidation(ctx context.Context, ownerID uuid.UUID) (*finance.ConsolidationResult, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ConsolidationResult), args.Error(1)
}

func (m *StatementCache) SetConsolidation(ctx context.Context, ownerID uuid.UUID, result *finance.ConsolidationResult) error {
	return m.Called(ctx, ownerID, result).Error(0)
}

func (m *StatementCache) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error {
	return m.Called(ctx, ownerID).Error(0)
}

// MetricsRecorder is a mock of adapter.MetricsRecorder.
type MetricsRecorder struct {
	mock.Mock
}

func (m *MetricsRecorder) ObserveRecalculation(result string, duration time.Duration) {
	m.Called(result, duration)
}

func (m *MetricsRecorder) ObserveConsolidation(valid bool, orphans int) {
	m.Called(valid, orphans)
}

func (m *MetricsRecorder) ObserveMaintenance(operation string, rows int) {
	m.Called(operation, rows)
}

// ImbalanceNotifier is a mock of adapter.ImbalanceNotifier.
type ImbalanceNotifier struct {
	mock.Mock
}

func (m *ImbalanceNotifier) NotifyImbalance(ctx context.Context, owner *entity.User, result *finance.ConsolidationResult) error {
	return m.Called(ctx, owner, result).Error(0)
}

// EmailSender is a mock of adapter.EmailSender.
type EmailSender struct {
	mock.Mock
}

func (m *EmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*adapter.SendEmailResult), args.Error(1)
}

var (
	_ adapter.CompanyRepository     = (*CompanyRepository)(nil)
	_ adapter.TransactionRepository = (*TransactionRepository)(nil)
	_ adapter.UserRepository        = (*UserRepository)(nil)
	_ adapter.StatementRepository   = (*StatementRepository)(nil)
	_ adapter.BudgetRepository      = (*BudgetRepository)(nil)
	_ adapter.StatementCache        = (*StatementCache)(nil)
	_ adapter.MetricsRecorder       = (*MetricsRecorder)(nil)
	_ adapter.ImbalanceNotifier     = (*ImbalanceNotifier)(nil)
	_ adapter.EmailSender           = (*EmailSender)(nil)
)
