// Package company contains company-related use cases.
package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

// LoadOwnedCompany retrieves a company and verifies it belongs to the owner.
func LoadOwnedCompany(ctx context.Context, companyRepo adapter.CompanyRepository, companyID, ownerID uuid.UUID) (*entity.Company, error) {
	company, err := companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCompanyNotFound) {
			return nil, domainerror.NewCompanyError(
				domainerror.ErrCodeCompanyNotFound,
				"company not found",
				domainerror.ErrCompanyNotFound,
			)
		}
		return nil, fmt.Errorf("failed to fetch company: %w", err)
	}

	// Report foreign companies as missing so ids of other owners do not leak
	if company.OwnerID != ownerID {
		return nil, domainerror.NewCompanyError(
			domainerror.ErrCodeCompanyNotFound,
			"company not found",
			domainerror.ErrNotAuthorizedToAccessCompany,
		)
	}

	return company, nil
}
