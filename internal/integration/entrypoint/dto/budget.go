package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ventureboard/backend/internal/application/usecase/budget"
)

// CreateBudgetPeriodRequest represents the request body for budget period creation.
type CreateBudgetPeriodRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
	Name      string `json:"name" binding:"required,max=100"`
	Type      string `json:"type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// CreateBudgetCategoryRequest represents the request body for budget category creation.
type CreateBudgetCategoryRequest struct {
	CompanyID         string `json:"company_id" binding:"required"`
	Name              string `json:"name" binding:"required,max=50"`
	Type              string `json:"type" binding:"required,oneof=income expense"`
	StatementCategory string `json:"statement_category,omitempty" binding:"max=64"`
}

// CreateBudgetLineRequest represents the request body for budget line creation.
type CreateBudgetLineRequest struct {
	CategoryID string          `json:"category_id" binding:"required"`
	Date       string          `json:"date" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes,omitempty" binding:"max=500"`
}

// ApproveActualsRequest represents the request body for posting actuals.
type ApproveActualsRequest struct {
	LineIDs []string `json:"line_ids" binding:"required,min=1"`
}

// BudgetPeriodResponse represents a budget period in API responses.
type BudgetPeriodResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// BudgetCategoryResponse represents a budget category in API responses.
type BudgetCategoryResponse struct {
	ID                string    `json:"id"`
	CompanyID         string    `json:"company_id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	StatementCategory string    `json:"statement_category"`
	CreatedAt         time.Time `json:"created_at"`
}

// BudgetLineResponse represents a budget line with its running balance.
type BudgetLineResponse struct {
	ID            string     `json:"id"`
	PeriodID      string     `json:"period_id"`
	CategoryID    string     `json:"category_id"`
	Date          string     `json:"date"`
	Amount        string     `json:"amount"`
	Notes         string     `json:"notes"`
	IsApproved    bool       `json:"is_approved"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	Balance       string     `json:"balance"`
}

// BudgetLineListResponse represents the lines of a period.
type BudgetLineListResponse struct {
	PeriodID        string               `json:"period_id"`
	StartingBalance string               `json:"starting_balance"`
	EndingBalance   string               `json:"ending_balance"`
	Lines           []BudgetLineResponse `json:"lines"`
}

// PostedLineResponse represents an approved line and its posted transaction.
type PostedLineResponse struct {
	LineID        string    `json:"line_id"`
	TransactionID string    `json:"transaction_id"`
	ApprovedAt    time.Time `json:"approved_at"`
}

// SkippedLineResponse represents a line that was not posted.
type SkippedLineResponse struct {
	LineID string `json:"line_id"`
	Reason string `json:"reason"`
}

// ApproveActualsResponse represents the outcome of posting actuals.
type ApproveActualsResponse struct {
	PeriodID string                `json:"period_id"`
	Posted   []PostedLineResponse  `json:"posted"`
	Skipped  []SkippedLineResponse `json:"skipped"`
}

// ToBudgetPeriodResponse converts a BudgetPeriodOutput to a BudgetPeriodResponse DTO.
func ToBudgetPeriodResponse(p *budget.BudgetPeriodOutput) BudgetPeriodResponse {
	return BudgetPeriodResponse{
		ID:        p.ID.String(),
		CompanyID: p.CompanyID.String(),
		Name:      p.Name,
		Type:      string(p.Type),
		StartDate: p.StartDate.Format(DateLayout),
		EndDate:   p.EndDate.Format(DateLayout),
		CreatedAt: p.CreatedAt,
	}
}

// ToBudgetCategoryResponse converts a BudgetCategoryOutput to a BudgetCategoryResponse DTO.
func ToBudgetCategoryResponse(c *budget.BudgetCategoryOutput) BudgetCategoryResponse {
	return BudgetCategoryResponse{
		ID:                c.ID.String(),
		CompanyID:         c.CompanyID.String(),
		Name:              c.Name,
		Type:              string(c.Type),
		StatementCategory: c.StatementCategory,
		CreatedAt:         c.CreatedAt,
	}
}

// ToBudgetLineResponse converts a BudgetLineOutput to a BudgetLineResponse DTO.
func ToBudgetLineResponse(l *budget.BudgetLineOutput) BudgetLineResponse {
	return BudgetLineResponse{
		ID:            l.ID.String(),
		PeriodID:      l.PeriodID.String(),
		CategoryID:    l.CategoryID.String(),
		Date:          l.Date.Format(DateLayout),
		Amount:        l.Amount.String(),
		Notes:         l.Notes,
		IsApproved:    l.IsApproved,
		ApprovedAt:    l.ApprovedAt,
		TransactionID: formatOptionalUUID(l.TransactionID),
		Balance:       l.Balance.String(),
	}
}

// ToBudgetLineListResponse converts a ListBudgetLinesOutput to a BudgetLineListResponse DTO.
func ToBudgetLineListResponse(output *budget.ListBudgetLinesOutput) BudgetLineListResponse {
	response := BudgetLineListResponse{
		PeriodID:        output.PeriodID.String(),
		StartingBalance: output.StartingBalance.String(),
		EndingBalance:   output.EndingBalance.String(),
		Lines:           make([]BudgetLineResponse, len(output.Lines)),
	}
	for i := range output.Lines {
		response.Lines[i] = ToBudgetLineResponse(&output.Lines[i])
	}
	return response
}

// ToApproveActualsResponse converts an ApproveActualsOutput to an ApproveActualsResponse DTO.
func ToApproveActualsResponse(output *budget.ApproveActualsOutput) ApproveActualsResponse {
	response := ApproveActualsResponse{
		PeriodID: output.PeriodID.String(),
		Posted:   make([]PostedLineResponse, len(output.Posted)),
		Skipped:  make([]SkippedLineResponse, len(output.Skipped)),
	}
	for i, p := range output.Posted {
		response.Posted[i] = PostedLineResponse{
			LineID:        p.LineID.String(),
			TransactionID: p.TransactionID.String(),
			ApprovedAt:    p.ApprovedAt,
		}
	}
	for i, s := range output.Skipped {
		response.Skipped[i] = SkippedLineResponse{LineID: s.LineID.String(), Reason: s.Reason}
	}
	return response
}
