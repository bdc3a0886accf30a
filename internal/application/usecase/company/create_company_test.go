package company

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureboard/backend/internal/application/adapter/mocks"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

func TestCreateCompanyUseCase(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name         string
		input        CreateCompanyInput
		setupMocks   func(*mocks.CompanyRepository)
		expectedCode domainerror.CompanyErrorCode
	}{
		{
			name:  "creates company with trimmed name",
			input: CreateCompanyInput{OwnerID: ownerID, Name: "  Alpha Labs ", OpeningCash: decimal.NewFromInt(1000)},
			setupMocks: func(repo *mocks.CompanyRepository) {
				repo.On("ExistsByOwnerAndName", mock.Anything, ownerID, "Alpha Labs").Return(false, nil)
				repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Company) bool {
					return c.Name == "Alpha Labs" && c.OwnerID == ownerID && c.OpeningCash.Equal(decimal.NewFromInt(1000))
				})).Return(nil)
			},
		},
		{
			name:         "rejects empty name",
			input:        CreateCompanyInput{OwnerID: ownerID, Name: "   "},
			setupMocks:   func(*mocks.CompanyRepository) {},
			expectedCode: domainerror.ErrCodeInvalidCompanyName,
		},
		{
			name:  "rejects duplicate name",
			input: CreateCompanyInput{OwnerID: ownerID, Name: "Alpha Labs"},
			setupMocks: func(repo *mocks.CompanyRepository) {
				repo.On("ExistsByOwnerAndName", mock.Anything, ownerID, "Alpha Labs").Return(true, nil)
			},
			expectedCode: domainerror.ErrCodeCompanyNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.CompanyRepository)
			tt.setupMocks(repo)

			output, err := NewCreateCompanyUseCase(repo).Execute(context.Background(), tt.input)

			if tt.expectedCode != "" {
				var companyErr *domainerror.CompanyError
				require.True(t, errors.As(err, &companyErr))
				assert.Equal(t, tt.expectedCode, companyErr.Code)
				assert.Nil(t, output)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Alpha Labs", output.Company.Name)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoadOwnedCompany(t *testing.T) {
	ownerID := uuid.New()
	owned := entity.NewCompany(ownerID, "Alpha", decimal.Zero)
	foreign := entity.NewCompany(uuid.New(), "Beta", decimal.Zero)
	missing := uuid.New()

	repo := new(mocks.CompanyRepository)
	repo.On("FindByID", mock.Anything, owned.ID).Return(owned, nil)
	repo.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)
	repo.On("FindByID", mock.Anything, missing).Return(nil, domainerror.ErrCompanyNotFound)

	company, err := LoadOwnedCompany(context.Background(), repo, owned.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, owned.ID, company.ID)

	_, err = LoadOwnedCompany(context.Background(), repo, foreign.ID, ownerID)
	assert.ErrorIs(t, err, domainerror.ErrNotAuthorizedToAccessCompany)

	_, err = LoadOwnedCompany(context.Background(), repo, missing, ownerID)
	assert.ErrorIs(t, err, domainerror.ErrCompanyNotFound)
}
