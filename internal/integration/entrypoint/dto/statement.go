package dto

import (
	"time"

	"github.com/ventureboard/backend/internal/application/usecase/consolidation"
	"github.com/ventureboard/backend/internal/application/usecase/statement"
	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/domain/finance"
)

// RecalculateStatementsRequest represents the optional body of a recalculation.
type RecalculateStatementsRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// StatementsResponse represents the statements of one company.
type StatementsResponse struct {
	CompanyID    string              `json:"company_id"`
	Source       string              `json:"source,omitempty"`
	Periods      []entity.Statements `json:"periods"`
	Totals       *entity.Statements  `json:"totals,omitempty"`
	CalculatedAt time.Time           `json:"calculated_at"`
}

// ConsolidationResponse represents a consolidation run.
type ConsolidationResponse struct {
	Cached bool `json:"cached"`
	finance.ConsolidationResult
}

// ToRecalculateResponse converts a RecalculateStatementsOutput to a StatementsResponse DTO.
func ToRecalculateResponse(output *statement.RecalculateStatementsOutput) StatementsResponse {
	totals := output.Totals
	return StatementsResponse{
		CompanyID:    output.CompanyID.String(),
		Source:       statement.SourceCalculated,
		Periods:      nonNilPeriods(output.Periods),
		Totals:       &totals,
		CalculatedAt: output.CalculatedAt,
	}
}

// ToStatementsResponse converts a GetStatementsOutput to a StatementsResponse DTO.
func ToStatementsResponse(output *statement.GetStatementsOutput) StatementsResponse {
	return StatementsResponse{
		CompanyID:    output.CompanyID.String(),
		Source:       output.Source,
		Periods:      nonNilPeriods(output.Periods),
		CalculatedAt: output.CalculatedAt,
	}
}

// ToConsolidationResponse converts a ConsolidatePortfolioOutput to a ConsolidationResponse DTO.
func ToConsolidationResponse(output *consolidation.ConsolidatePortfolioOutput) ConsolidationResponse {
	return ConsolidationResponse{
		Cached:              output.Cached,
		ConsolidationResult: output.Result,
	}
}

func nonNilPeriods(periods []entity.Statements) []entity.Statements {
	if periods == nil {
		return []entity.Statements{}
	}
	return periods
}
