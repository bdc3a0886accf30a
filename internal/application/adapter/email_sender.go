// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput is one outbound notification.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
	// Category tags the message at the provider, e.g. "imbalance_alert".
	Category string
}

// SendEmailResult carries the provider message id.
type SendEmailResult struct {
	ResendID string
}

// EmailSender delivers notifications through the email provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}
