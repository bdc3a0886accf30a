// Package company contains company-related use cases.
package company

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
)

// ListCompaniesInput represents the input for listing companies.
type ListCompaniesInput struct {
	OwnerID uuid.UUID
}

// ListCompaniesOutput represents the output of listing companies.
type ListCompaniesOutput struct {
	Companies []*CompanyOutput
}

// ListCompaniesUseCase handles listing the companies of an owner.
type ListCompaniesUseCase struct {
	companyRepo adapter.CompanyRepository
}

// NewListCompaniesUseCase creates a new ListCompaniesUseCase instance.
func NewListCompaniesUseCase(companyRepo adapter.CompanyRepository) *ListCompaniesUseCase {
	return &ListCompaniesUseCase{
		companyRepo: companyRepo,
	}
}

// Execute lists the companies.
func (uc *ListCompaniesUseCase) Execute(ctx context.Context, input ListCompaniesInput) (*ListCompaniesOutput, error) {
	companies, err := uc.companyRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	output := &ListCompaniesOutput{Companies: make([]*CompanyOutput, len(companies))}
	for i, company := range companies {
		output.Companies[i] = toCompanyOutput(company)
	}
	return output, nil
}
