package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/usecase/budget"
	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget period, category, line and actuals endpoints.
type BudgetController struct {
	createPeriodUseCase   *budget.CreateBudgetPeriodUseCase
	createCategoryUseCase *budget.CreateBudgetCategoryUseCase
	createLineUseCase     *budget.CreateBudgetLineUseCase
	listLinesUseCase      *budget.ListBudgetLinesUseCase
	approveUseCase        *budget.ApproveActualsUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createPeriodUseCase *budget.CreateBudgetPeriodUseCase,
	createCategoryUseCase *budget.CreateBudgetCategoryUseCase,
	createLineUseCase *budget.CreateBudgetLineUseCase,
	listLinesUseCase *budget.ListBudgetLinesUseCase,
	approveUseCase *budget.ApproveActualsUseCase,
) *BudgetController {
	return &BudgetController{
		createPeriodUseCase:   createPeriodUseCase,
		createCategoryUseCase: createCategoryUseCase,
		createLineUseCase:     createLineUseCase,
		listLinesUseCase:      listLinesUseCase,
		approveUseCase:        approveUseCase,
	}
}

// CreatePeriod handles POST /budget/periods requests.
func (c *BudgetController) CreatePeriod(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateBudgetPeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		respondBadRequest(ctx, "Invalid company ID format", nil)
		return
	}
	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		respondBadRequest(ctx, "Invalid start_date format, expected YYYY-MM-DD", nil)
		return
	}
	endDate, err := dto.ParseDate(req.EndDate)
	if err != nil {
		respondBadRequest(ctx, "Invalid end_date format, expected YYYY-MM-DD", nil)
		return
	}

	output, err := c.createPeriodUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetPeriodInput{
		OwnerID:   userID,
		CompanyID: companyID,
		Name:      req.Name,
		Type:      entity.BudgetPeriodType(req.Type),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetPeriodResponse(output))
}

// CreateCategory handles POST /budget/categories requests.
func (c *BudgetController) CreateCategory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateBudgetCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		respondBadRequest(ctx, "Invalid company ID format", nil)
		return
	}

	output, err := c.createCategoryUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetCategoryInput{
		OwnerID:           userID,
		CompanyID:         companyID,
		Name:              req.Name,
		Type:              entity.CategoryType(req.Type),
		StatementCategory: req.StatementCategory,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetCategoryResponse(output))
}

// CreateLine handles POST /budget/periods/:id/lines requests.
func (c *BudgetController) CreateLine(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	periodID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid period ID format", nil)
		return
	}

	var req dto.CreateBudgetLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		respondBadRequest(ctx, "Invalid category ID format", nil)
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		respondBadRequest(ctx, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	output, err := c.createLineUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetLineInput{
		OwnerID:    userID,
		PeriodID:   periodID,
		CategoryID: categoryID,
		Date:       date,
		Amount:     req.Amount,
		Notes:      req.Notes,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetLineResponse(output))
}

// ListLines handles GET /budget/periods/:id/lines requests.
// The optional starting_balance query parameter seeds the running balance.
func (c *BudgetController) ListLines(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	periodID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid period ID format", nil)
		return
	}

	input := budget.ListBudgetLinesInput{OwnerID: userID, PeriodID: periodID}
	if value := ctx.Query("starting_balance"); value != "" {
		balance, err := decimal.NewFromString(value)
		if err != nil {
			respondBadRequest(ctx, "Invalid starting_balance, expected a decimal", nil)
			return
		}
		input.StartingBalance = &balance
	}

	output, err := c.listLinesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetLineListResponse(output))
}

// ApproveActuals handles POST /budget/periods/:id/approve requests.
func (c *BudgetController) ApproveActuals(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	periodID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid period ID format", nil)
		return
	}

	var req dto.ApproveActualsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	lineIDs := make([]uuid.UUID, 0, len(req.LineIDs))
	for _, raw := range req.LineIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(ctx, "Invalid line ID format", nil)
			return
		}
		lineIDs = append(lineIDs, id)
	}

	output, err := c.approveUseCase.Execute(ctx.Request.Context(), budget.ApproveActualsInput{
		OwnerID:  userID,
		PeriodID: periodID,
		LineIDs:  lineIDs,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToApproveActualsResponse(output))
}
