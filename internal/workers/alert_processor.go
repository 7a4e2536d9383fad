// internal/workers/alert_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/hibiken/asynq"

	"github.com/dcastano/shopadmin-be/internal/pkg/config"
)

// AlertProcessor turns queued low stock alerts into notifications
type AlertProcessor struct {
	config *config.Config
	logger *slog.Logger
}

// NewAlertProcessor creates a new alert processor
func NewAlertProcessor(config *config.Config, logger *slog.Logger) *AlertProcessor {
	return &AlertProcessor{
		config: config,
		logger: logger.With(slog.String("processor", "alert")),
	}
}

// HandleLowStockAlert processes a low stock alert task
func (p *AlertProcessor) HandleLowStockAlert(ctx context.Context, t *asynq.Task) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "low stock alert received",
		slog.String("product_id", payload.ProductID),
		slog.String("sku", payload.SKU),
		slog.Int("stock", payload.Stock))

	subject := fmt.Sprintf("Low stock: %s (%s)", payload.Name, payload.SKU)
	body := fmt.Sprintf(
		"Stock for %s dropped to %d units.\n\nProduct: %s\nVariant: %s\nSKU: %s\n",
		payload.Name, payload.Stock, payload.ProductID, payload.VariantID, payload.SKU,
	)

	return p.sendEmail(ctx, p.config.Inventory.AlertRecipient, subject, body)
}

// SendEmail processes a generic email task
func (p *AlertProcessor) SendEmail(ctx context.Context, t *asynq.Task) error {
	var payload EmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return p.sendEmail(ctx, payload.To, payload.Subject, payload.Body)
}

func (p *AlertProcessor) sendEmail(ctx context.Context, to, subject, body string) error {
	smtpCfg := p.config.Inventory

	// In development, or when no relay is configured, just log the email.
	// An unconfigured relay must not burn the task's retries.
	if p.config.App.Environment == "development" || smtpCfg.SMTPHost == "" {
		p.logger.InfoContext(ctx, "email would be sent",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.String("body", body))
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		smtpCfg.SMTPFrom, to, subject, body,
	))

	var auth smtp.Auth
	if smtpCfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", smtpCfg.SMTPUsername, smtpCfg.SMTPPassword, smtpCfg.SMTPHost)
	}

	addr := net.JoinHostPort(smtpCfg.SMTPHost, smtpCfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, smtpCfg.SMTPFrom, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	p.logger.InfoContext(ctx, "email sent",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}
