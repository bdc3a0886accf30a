// Package error defines domain-specific errors for the application.
package error

import "errors"

// Intercompany maintenance errors.
var (
	// ErrMaintenanceFailed is returned when a maintenance batch was rolled back.
	ErrMaintenanceFailed = errors.New("intercompany maintenance failed")

	// ErrMirrorAlreadyExists is returned when a mirror for the same outflow was created concurrently.
	ErrMirrorAlreadyExists = errors.New("mirror transaction already exists")
)

// IntercompanyErrorCode defines error codes for intercompany errors.
// Format: ICO-XXYYYY where XX is category and YYYY is specific error.
type IntercompanyErrorCode string

const (
	ErrCodeMaintenanceFailed   IntercompanyErrorCode = "ICO-020001"
	ErrCodeMirrorAlreadyExists IntercompanyErrorCode = "ICO-020002"
)

// IntercompanyError represents an intercompany error with code and message.
type IntercompanyError struct {
	Code    IntercompanyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *IntercompanyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *IntercompanyError) Unwrap() error {
	return e.Err
}

// NewIntercompanyError creates a new IntercompanyError with the given code and message.
func NewIntercompanyError(code IntercompanyErrorCode, message string, err error) *IntercompanyError {
	return &IntercompanyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
