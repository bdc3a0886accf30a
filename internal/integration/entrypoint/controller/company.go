// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ventureboard/backend/internal/application/usecase/company"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
)

// CompanyController handles company endpoints.
type CompanyController struct {
	createUseCase *company.CreateCompanyUseCase
	listUseCase   *company.ListCompaniesUseCase
}

// NewCompanyController creates a new company controller instance.
func NewCompanyController(
	createUseCase *company.CreateCompanyUseCase,
	listUseCase *company.ListCompaniesUseCase,
) *CompanyController {
	return &CompanyController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
	}
}

// Create handles POST /companies requests.
func (c *CompanyController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), company.CreateCompanyInput{
		OwnerID:     userID,
		Name:        req.Name,
		OpeningCash: req.OpeningCash,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCompanyResponse(output.Company))
}

// List handles GET /companies requests.
func (c *CompanyController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), company.ListCompaniesInput{OwnerID: userID})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCompanyListResponse(output.Companies))
}
