package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ventureboard/backend/internal/application/adapter"
	"github.com/ventureboard/backend/internal/domain/entity"
	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/domain/finance"
	"github.com/ventureboard/backend/internal/integration/email/templates"
)

// ImbalanceNotifier emails owners whose consolidation failed validation.
type ImbalanceNotifier struct {
	sender     adapter.EmailSender
	renderer   *templates.Renderer
	appBaseURL string
}

// NewImbalanceNotifier creates a new imbalance notifier.
func NewImbalanceNotifier(sender adapter.EmailSender, renderer *templates.Renderer, appBaseURL string) *ImbalanceNotifier {
	return &ImbalanceNotifier{
		sender:     sender,
		renderer:   renderer,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// NotifyImbalance renders and sends the imbalance alert to the owner.
func (n *ImbalanceNotifier) NotifyImbalance(ctx context.Context, owner *entity.User, result *finance.ConsolidationResult) error {
	if owner == nil || strings.TrimSpace(owner.Email) == "" {
		return domainerror.ErrOwnerHasNoEmail
	}

	data := templates.ImbalanceAlertData{
		OwnerName:    owner.Name,
		CompanyCount: len(result.PerCompany),
		Errors:       result.Errors,
		Warnings:     result.Warnings,
		OrphanCount:  len(result.Eliminations.Orphans),
		DashboardURL: n.appBaseURL + "/consolidation",
	}

	html, text, err := n.renderer.RenderImbalanceAlert(data)
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render imbalance alert",
			err,
		)
	}

	sent, err := n.sender.Send(ctx, adapter.SendEmailInput{
		To:       owner.Email,
		Name:     owner.Name,
		Subject:  fmt.Sprintf("Consolidation out of balance (%d issues)", len(result.Errors)),
		HTML:     html,
		Text:     text,
		Category: templates.TemplateImbalanceAlert,
	})
	if err != nil {
		return err
	}

	slog.Info("Imbalance alert sent", "ownerID", owner.ID, "resendID", sent.ResendID)
	return nil
}

var _ adapter.ImbalanceNotifier = (*ImbalanceNotifier)(nil)
