package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/usecase/consolidation"
	"github.com/ventureboard/backend/internal/application/usecase/statement"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
)

// StatementController handles financial statement and consolidation endpoints.
type StatementController struct {
	getUseCase         *statement.GetStatementsUseCase
	recalculateUseCase *statement.RecalculateStatementsUseCase
	consolidateUseCase *consolidation.ConsolidatePortfolioUseCase
}

// NewStatementController creates a new statement controller instance.
func NewStatementController(
	getUseCase *statement.GetStatementsUseCase,
	recalculateUseCase *statement.RecalculateStatementsUseCase,
	consolidateUseCase *consolidation.ConsolidatePortfolioUseCase,
) *StatementController {
	return &StatementController{
		getUseCase:         getUseCase,
		recalculateUseCase: recalculateUseCase,
		consolidateUseCase: consolidateUseCase,
	}
}

// Get handles GET /companies/:id/statements requests.
// The optional as_of query parameter limits the periods returned.
func (c *StatementController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	companyID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid company ID format", nil)
		return
	}

	asOf, err := dto.ParseOptionalDate(ctx.Query("as_of"))
	if err != nil {
		respondBadRequest(ctx, "Invalid as_of format, expected YYYY-MM-DD", nil)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), statement.GetStatementsInput{
		OwnerID:   userID,
		CompanyID: companyID,
		AsOf:      asOf,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementsResponse(output))
}

// Recalculate handles POST /companies/:id/statements/recalculate requests.
func (c *StatementController) Recalculate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	companyID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid company ID format", nil)
		return
	}

	var req dto.RecalculateStatementsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			respondBadRequest(ctx, "Invalid request body", err)
			return
		}
	}

	from, err := dto.ParseOptionalDate(req.From)
	if err != nil {
		respondBadRequest(ctx, "Invalid from date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := dto.ParseOptionalDate(req.To)
	if err != nil {
		respondBadRequest(ctx, "Invalid to date, expected YYYY-MM-DD", nil)
		return
	}

	output, err := c.recalculateUseCase.Execute(ctx.Request.Context(), statement.RecalculateStatementsInput{
		OwnerID:   userID,
		CompanyID: companyID,
		From:      from,
		To:        to,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecalculateResponse(output))
}

// Consolidate handles GET /consolidation requests.
// refresh=true bypasses the cached result.
func (c *StatementController) Consolidate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	refresh := false
	if value := ctx.Query("refresh"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			respondBadRequest(ctx, "Invalid refresh value, expected a boolean", nil)
			return
		}
		refresh = parsed
	}

	output, err := c.consolidateUseCase.Execute(ctx.Request.Context(), consolidation.ConsolidatePortfolioInput{
		OwnerID: userID,
		Refresh: refresh,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToConsolidationResponse(output))
}
