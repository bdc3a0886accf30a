package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
)

// handleDomainError writes the response for an error returned by a use case.
// Coded domain errors keep their code; anything else becomes a generic 500.
func handleDomainError(ctx *gin.Context, err error) {
	var (
		budgetErr       *domainerror.BudgetError
		intercompanyErr *domainerror.IntercompanyError
		statementErr    *domainerror.StatementError
		transactionErr  *domainerror.TransactionError
		companyErr      *domainerror.CompanyError
	)

	switch {
	case errors.As(err, &budgetErr):
		writeCodedError(ctx, getStatusCodeForBudgetError(budgetErr.Code), budgetErr.Message, string(budgetErr.Code))
	case errors.As(err, &intercompanyErr):
		writeCodedError(ctx, getStatusCodeForIntercompanyError(intercompanyErr.Code), intercompanyErr.Message, string(intercompanyErr.Code))
	case errors.As(err, &statementErr):
		writeCodedError(ctx, getStatusCodeForStatementError(statementErr.Code), statementErr.Message, string(statementErr.Code))
	case errors.As(err, &transactionErr):
		writeCodedError(ctx, getStatusCodeForTransactionError(transactionErr.Code), transactionErr.Message, string(transactionErr.Code))
	case errors.As(err, &companyErr):
		writeCodedError(ctx, getStatusCodeForCompanyError(companyErr.Code), companyErr.Message, string(companyErr.Code))
	default:
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeCodedError(ctx *gin.Context, status int, message, code string) {
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", ctx.FullPath(), "code", code, "error", message)
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondUnauthenticated writes the 401 used when no user is on the context.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// respondBadRequest writes a 400 for malformed input.
func respondBadRequest(ctx *gin.Context, message string, err error) {
	response := dto.ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}

func getStatusCodeForCompanyError(code domainerror.CompanyErrorCode) int {
	switch code {
	case domainerror.ErrCodeCompanyNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCompanyNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeCompanyNameTaken:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidCompanyName, domainerror.ErrCodeMissingCompanyField:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidTransferDirection,
		domainerror.ErrCodeCounterpartyNotOwned:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForStatementError(code domainerror.StatementErrorCode) int {
	switch code {
	case domainerror.ErrCodeStatementsNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAsOfDate, domainerror.ErrCodeNoCompanies:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForIntercompanyError(code domainerror.IntercompanyErrorCode) int {
	switch code {
	case domainerror.ErrCodeMirrorAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func getStatusCodeForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetPeriodNotFound,
		domainerror.ErrCodeBudgetCategoryNotFound,
		domainerror.ErrCodeBudgetLineNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeLineAlreadyApproved:
		return http.StatusConflict
	case domainerror.ErrCodeFeatureDisabled:
		return http.StatusForbidden
	case domainerror.ErrCodePeriodNotActuals,
		domainerror.ErrCodeNoEligibleLines,
		domainerror.ErrCodeMissingBudgetFields,
		domainerror.ErrCodeLineOutsidePeriod,
		domainerror.ErrCodeInvalidBudgetPeriod:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
