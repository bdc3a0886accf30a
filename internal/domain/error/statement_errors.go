// Package error defines domain-specific errors for the application.
package error

import "errors"

// Statement domain errors.
var (
	// ErrStatementsNotFound is returned when no stored statements exist for a company.
	ErrStatementsNotFound = errors.New("statements not found")

	// ErrStatementReplaceFailed is returned when the delete-then-recreate of stored
	// statements could not complete. Prior statements are left intact.
	ErrStatementReplaceFailed = errors.New("failed to replace stored statements")

	// ErrNoCompaniesToConsolidate is returned when the owner has no companies.
	ErrNoCompaniesToConsolidate = errors.New("no companies to consolidate")
)

// StatementErrorCode defines error codes for statement errors.
// Format: STM-XXYYYY where XX is category and YYYY is specific error.
type StatementErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAsOfDate    StatementErrorCode = "STM-010001"
	ErrCodeNoCompanies        StatementErrorCode = "STM-010002"
	ErrCodeStatementsNotFound StatementErrorCode = "STM-010003"

	// Atomicity errors (02XXXX)
	ErrCodeStatementReplaceFailed StatementErrorCode = "STM-020001"
)

// StatementError represents a statement error with code and message.
type StatementError struct {
	Code    StatementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// NewStatementError creates a new StatementError with the given code and message.
func NewStatementError(code StatementErrorCode, message string, err error) *StatementError {
	return &StatementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
