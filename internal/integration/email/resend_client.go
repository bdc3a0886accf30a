// Package email delivers owner notifications through Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/ventureboard/backend/internal/application/adapter"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
)

// permanentPatterns mark provider errors that will fail again on retry.
var permanentPatterns = []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"}

// ResendClient is the adapter.EmailSender backed by the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// Send delivers the message and classifies provider failures as permanent or
// temporary.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	request := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}
	if input.Category != "" {
		request.Tags = []resend.Tag{{Name: "category", Value: input.Category}}
	}

	sent, err := c.client.Emails.SendWithContext(ctx, request)
	if err == nil {
		return &adapter.SendEmailResult{ResendID: sent.Id}, nil
	}

	code, message := domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure"
	if isPermanentError(err) {
		code, message = domainerror.ErrCodePermanentEmailFailure, "permanent email failure"
	}
	return nil, domainerror.NewEmailError(code, message, err)
}

func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(err.Error())
	for _, pattern := range permanentPatterns {
		if strings.Contains(message, pattern) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
