// Package error defines domain-specific errors for the application.
package error

import "errors"

// ErrOwnerHasNoEmail is returned when an imbalance alert has no recipient address.
var ErrOwnerHasNoEmail = errors.New("owner has no email address")

// EmailErrorCode classifies notification delivery failures.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Delivery (02XXXX). Permanent failures are not retried.
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Rendering (03XXXX)
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError carries the delivery classification alongside the provider error.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *EmailError) Unwrap() error { return e.Err }

// NewEmailError wraps err with a delivery classification.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
