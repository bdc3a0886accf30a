// Package error defines domain-specific errors for the application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetPeriodNotFound is returned when a budget period is not found.
	ErrBudgetPeriodNotFound = errors.New("budget period not found")

	// ErrBudgetCategoryNotFound is returned when a budget category is not found.
	ErrBudgetCategoryNotFound = errors.New("budget category not found")

	// ErrBudgetLineNotFound is returned when one or more budget lines are not found in the period.
	ErrBudgetLineNotFound = errors.New("budget line not found")

	// ErrPeriodNotActuals is returned when approval is requested outside an ACTUALS period.
	ErrPeriodNotActuals = errors.New("only ACTUALS periods can be approved")

	// ErrNoEligibleLines is returned when none of the requested lines can be posted.
	ErrNoEligibleLines = errors.New("no eligible lines to post")

	// ErrLineAlreadyApproved is returned when a line was approved concurrently during posting.
	ErrLineAlreadyApproved = errors.New("budget line already approved")

	// ErrActualsPostingFailed is returned when the all-or-nothing posting batch was rolled back.
	ErrActualsPostingFailed = errors.New("actuals posting failed")

	// ErrLineOutsidePeriod is returned when a line date falls outside its period.
	ErrLineOutsidePeriod = errors.New("budget line date outside period")

	// ErrInvalidBudgetPeriod is returned when a period type or date range is invalid.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrFeatureDisabled is returned when the budget actuals capability is switched off.
	ErrFeatureDisabled = errors.New("feature disabled")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetPeriodNotFound   BudgetErrorCode = "BUD-010001"
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BUD-010002"
	ErrCodeBudgetLineNotFound     BudgetErrorCode = "BUD-010003"
	ErrCodePeriodNotActuals       BudgetErrorCode = "BUD-010004"
	ErrCodeNoEligibleLines        BudgetErrorCode = "BUD-010005"
	ErrCodeMissingBudgetFields    BudgetErrorCode = "BUD-010006"
	ErrCodeLineOutsidePeriod      BudgetErrorCode = "BUD-010007"
	ErrCodeInvalidBudgetPeriod    BudgetErrorCode = "BUD-010008"

	// Atomicity errors (02XXXX)
	ErrCodeActualsPostingFailed BudgetErrorCode = "BUD-020001"
	ErrCodeLineAlreadyApproved  BudgetErrorCode = "BUD-020002"

	// Capability errors (03XXXX)
	ErrCodeFeatureDisabled BudgetErrorCode = "BUD-030001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
