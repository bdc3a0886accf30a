package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/usecase/company"
)

// CreateCompanyRequest represents the request body for company creation.
type CreateCompanyRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=120"`
	OpeningCash decimal.Decimal `json:"opening_cash"`
}

// CompanyResponse represents a company in API responses.
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OpeningCash string    `json:"opening_cash"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyListResponse represents the response for listing companies.
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToCompanyResponse converts a CompanyOutput to a CompanyResponse DTO.
func ToCompanyResponse(c *company.CompanyOutput) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		OpeningCash: c.OpeningCash.StringFixed(2),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCompanyListResponse converts company outputs to a CompanyListResponse DTO.
func ToCompanyListResponse(companies []*company.CompanyOutput) CompanyListResponse {
	response := CompanyListResponse{Companies: make([]CompanyResponse, len(companies))}
	for i, c := range companies {
		response.Companies[i] = ToCompanyResponse(c)
	}
	return response
}
