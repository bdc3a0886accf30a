// Package error defines domain-specific errors for the application.
package error

import "errors"

// Company domain errors.
var (
	// ErrCompanyNotFound is returned when a company is not found in the system.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrNotAuthorizedToAccessCompany is returned when the company belongs to another owner.
	ErrNotAuthorizedToAccessCompany = errors.New("not authorized to access company")

	// ErrInvalidCompanyName is returned when the company name is empty or too long.
	ErrInvalidCompanyName = errors.New("invalid company name")

	// ErrCompanyNameTaken is returned when the owner already has a company with the same name.
	ErrCompanyNameTaken = errors.New("company name already in use")
)

// CompanyErrorCode defines error codes for company errors.
// Format: CMP-XXYYYY where XX is category and YYYY is specific error.
type CompanyErrorCode string

const (
	ErrCodeCompanyNotFound     CompanyErrorCode = "CMP-010001"
	ErrCodeCompanyNotOwned     CompanyErrorCode = "CMP-010002"
	ErrCodeInvalidCompanyName  CompanyErrorCode = "CMP-010003"
	ErrCodeMissingCompanyField CompanyErrorCode = "CMP-010004"
	ErrCodeCompanyNameTaken    CompanyErrorCode = "CMP-010005"
)

// CompanyError represents a company error with code and message.
type CompanyError struct {
	Code    CompanyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CompanyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CompanyError) Unwrap() error {
	return e.Err
}

// NewCompanyError creates a new CompanyError with the given code and message.
func NewCompanyError(code CompanyErrorCode, message string, err error) *CompanyError {
	return &CompanyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
