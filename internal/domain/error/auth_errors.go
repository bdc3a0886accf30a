// Package error defines domain-specific errors for the application.
package error

import "errors"

// Access token errors. Tokens are minted by the identity provider and only
// verified here.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// ErrUserNotFound is returned when a token subject has no local user row.
	ErrUserNotFound = errors.New("user not found")
)

// AuthErrorCode identifies why a request was refused before reaching a handler.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Throttling (02XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-020003"

	// Bearer token (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
)
