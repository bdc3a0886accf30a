// Package valueobject contains domain value objects shared by the statement engine.
package valueobject

import "github.com/shopspring/decimal"

// MatchingConfig controls balance validation and intercompany pair matching.
type MatchingConfig struct {
	// BalanceTolerance is the largest accepted |assets - (liabilities + equity)|.
	BalanceTolerance decimal.Decimal // 0.01 = one cent

	// AllowTextInference enables legacy direction/counterparty inference from
	// free-text descriptions when the structured fields are empty.
	AllowTextInference bool

	// MatchDateToleranceDays is how far apart an outflow and its counterpart inflow
	// may be dated and still be paired during elimination.
	MatchDateToleranceDays int
}

// DefaultMatchingConfig returns the default matching configuration.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		BalanceTolerance:       decimal.New(1, -2),
		AllowTextInference:     true,
		MatchDateToleranceDays: 0,
	}
}

// IsWithinTolerance checks whether two amounts are equal within the balance tolerance.
func (c MatchingConfig) IsWithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(c.BalanceTolerance)
}
