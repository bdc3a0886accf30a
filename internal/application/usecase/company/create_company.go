// Package company contains company-related use cases.
package company

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

// MaxCompanyNameLength is the maximum allowed length for company names.
const MaxCompanyNameLength = 120

// CreateCompanyInput represents the input for company creation.
type CreateCompanyInput struct {
	OwnerID     uuid.UUID
	Name        string
	OpeningCash decimal.Decimal
}

// CompanyOutput represents a company in use case outputs.
type CompanyOutput struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	OpeningCash decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateCompanyOutput represents the output of company creation.
type CreateCompanyOutput struct {
	Company *CompanyOutput
}

// CreateCompanyUseCase handles company creation logic.
type CreateCompanyUseCase struct {
	companyRepo adapter.CompanyRepository
}

// NewCreateCompanyUseCase creates a new CreateCompanyUseCase instance.
func NewCreateCompanyUseCase(companyRepo adapter.CompanyRepository) *CreateCompanyUseCase {
	return &CreateCompanyUseCase{
		companyRepo: companyRepo,
	}
}

// Execute performs the company creation.
func (uc *CreateCompanyUseCase) Execute(ctx context.Context, input CreateCompanyInput) (*CreateCompanyOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > MaxCompanyNameLength {
		return nil, domainerror.NewCompanyError(
			domainerror.ErrCodeInvalidCompanyName,
			fmt.Sprintf("company name must be between 1 and %d characters", MaxCompanyNameLength),
			domainerror.ErrInvalidCompanyName,
		)
	}

	// Names must be unique per owner; transfer descriptions reference companies by name
	exists, err := uc.companyRepo.ExistsByOwnerAndName(ctx, input.OwnerID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check company name: %w", err)
	}
	if exists {
		return nil, domainerror.NewCompanyError(
			domainerror.ErrCodeCompanyNameTaken,
			"a company with this name already exists",
			domainerror.ErrCompanyNameTaken,
		)
	}

	company := entity.NewCompany(input.OwnerID, name, input.OpeningCash)
	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	slog.Info("Company created",
		"companyID", company.ID,
		"ownerID", company.OwnerID,
	)

	return &CreateCompanyOutput{Company: toCompanyOutput(company)}, nil
}

func toCompanyOutput(company *entity.Company) *CompanyOutput {
	return &CompanyOutput{
		ID:          company.ID,
		OwnerID:     company.OwnerID,
		Name:        company.Name,
		OpeningCash: company.OpeningCash,
		CreatedAt:   company.CreatedAt,
		UpdatedAt:   company.UpdatedAt,
	}
}
