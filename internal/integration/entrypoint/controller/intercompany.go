package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/usecase/intercompany"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
)

// IntercompanyController handles intercompany maintenance endpoints.
// Every pass is a dry run unless the body sets apply.
type IntercompanyController struct {
	normalizeUseCase   *intercompany.NormalizeTransfersUseCase
	deduplicateUseCase *intercompany.DeduplicateTransfersUseCase
	mirrorUseCase      *intercompany.MirrorTransfersUseCase
	migrateUseCase     *intercompany.MigrateTransferFieldsUseCase
}

// NewIntercompanyController creates a new intercompany controller instance.
func NewIntercompanyController(
	normalizeUseCase *intercompany.NormalizeTransfersUseCase,
	deduplicateUseCase *intercompany.DeduplicateTransfersUseCase,
	mirrorUseCase *intercompany.MirrorTransfersUseCase,
	migrateUseCase *intercompany.MigrateTransferFieldsUseCase,
) *IntercompanyController {
	return &IntercompanyController{
		normalizeUseCase:   normalizeUseCase,
		deduplicateUseCase: deduplicateUseCase,
		mirrorUseCase:      mirrorUseCase,
		migrateUseCase:     migrateUseCase,
	}
}

// Normalize handles POST /companies/:id/intercompany/normalize requests.
func (c *IntercompanyController) Normalize(ctx *gin.Context) {
	input, ok := bindCompanyMaintenance(ctx)
	if !ok {
		return
	}

	output, err := c.normalizeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNormalizeResponse(output))
}

// Deduplicate handles POST /companies/:id/intercompany/deduplicate requests.
func (c *IntercompanyController) Deduplicate(ctx *gin.Context) {
	input, ok := bindCompanyMaintenance(ctx)
	if !ok {
		return
	}

	output, err := c.deduplicateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeduplicateResponse(output))
}

// Migrate handles POST /companies/:id/intercompany/migrate requests.
func (c *IntercompanyController) Migrate(ctx *gin.Context) {
	input, ok := bindCompanyMaintenance(ctx)
	if !ok {
		return
	}

	output, err := c.migrateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMigrateResponse(output))
}

// Mirror handles POST /intercompany/mirror requests across all owned companies.
func (c *IntercompanyController) Mirror(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	req, ok := bindMaintenanceRequest(ctx)
	if !ok {
		return
	}

	output, err := c.mirrorUseCase.Execute(ctx.Request.Context(), intercompany.MirrorTransfersInput{
		OwnerID: userID,
		Apply:   req.Apply,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMirrorTransfersResponse(output))
}

func bindCompanyMaintenance(ctx *gin.Context) (intercompany.CompanyMaintenanceInput, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return intercompany.CompanyMaintenanceInput{}, false
	}

	companyID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid company ID format", nil)
		return intercompany.CompanyMaintenanceInput{}, false
	}

	req, ok := bindMaintenanceRequest(ctx)
	if !ok {
		return intercompany.CompanyMaintenanceInput{}, false
	}

	return intercompany.CompanyMaintenanceInput{
		OwnerID:   userID,
		CompanyID: companyID,
		Apply:     req.Apply,
	}, true
}

// bindMaintenanceRequest accepts an empty body as a dry run.
func bindMaintenanceRequest(ctx *gin.Context) (dto.MaintenanceRequest, bool) {
	var req dto.MaintenanceRequest
	if ctx.Request.ContentLength == 0 {
		return req, true
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return req, false
	}
	return req, true
}
