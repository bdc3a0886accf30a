// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/domain/entity"
)

// CompanyRepository defines the interface for company persistence operations.
type CompanyRepository interface {
	// Create creates a new company in the database.
	Create(ctx context.Context, company *entity.Company) error

	// FindByID retrieves a company by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)

	// FindByOwner retrieves all companies of an owner ordered by id.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Company, error)

	// ExistsByOwnerAndName checks if the owner already has a company with the given name.
	ExistsByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
}
