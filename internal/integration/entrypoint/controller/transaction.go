package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ventureboard/backend/internal/application/usecase/transaction"
	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles ledger transaction endpoints.
type TransactionController struct {
	createUseCase *transaction.CreateTransactionUseCase
	listUseCase   *transaction.ListTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
	}
}

// Create handles POST /companies/:id/transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
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

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "Invalid request body", err)
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		respondBadRequest(ctx, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	counterparty, err := dto.ParseOptionalUUID(req.CounterpartyCompanyID)
	if err != nil {
		respondBadRequest(ctx, "Invalid counterparty company ID format", nil)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		OwnerID:               userID,
		CompanyID:             companyID,
		Date:                  date,
		Type:                  entity.TransactionType(req.Type),
		Category:              req.Category,
		Amount:                req.Amount,
		Description:           req.Description,
		AffectsPL:             req.AffectsPL,
		AffectsCashFlow:       req.AffectsCashFlow,
		AffectsBalance:        req.AffectsBalance,
		Direction:             entity.TransferDirection(req.Direction),
		CounterpartyCompanyID: counterparty,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// List handles GET /companies/:id/transactions requests.
// Optional query parameters: start_date, end_date, type.
func (c *TransactionController) List(ctx *gin.Context) {
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

	startDate, err := dto.ParseOptionalDate(ctx.Query("start_date"))
	if err != nil {
		respondBadRequest(ctx, "Invalid start_date format, expected YYYY-MM-DD", nil)
		return
	}
	endDate, err := dto.ParseOptionalDate(ctx.Query("end_date"))
	if err != nil {
		respondBadRequest(ctx, "Invalid end_date format, expected YYYY-MM-DD", nil)
		return
	}

	input := transaction.ListTransactionsInput{
		OwnerID:   userID,
		CompanyID: companyID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if typeStr := ctx.Query("type"); typeStr != "" {
		txType := entity.TransactionType(typeStr)
		input.Type = &txType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}
