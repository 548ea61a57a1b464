package notifications

import (
	"StorWatch/internal/notifications/mutt_client"
	"StorWatch/internal/notifications/smtp_client"
	"StorWatch/internal/pkg/config"
	"StorWatch/internal/pkg/logger"
	"fmt"
)

// EmailClient abstracts a transport capable of delivering a single email.
type EmailClient interface {
	Send(sender config.SenderEmail, recipients []string, subject, body string) error
}

// EmailManager handles sending email notifications. It selects a transport
// based on configuration and iterates over the configured senders until one
// delivery succeeds.
type EmailManager struct {
	Config *config.Config
	client EmailClient
}

// NewEmailManager creates a new instance of EmailManager
func NewEmailManager(cfg *config.Config) *EmailManager {
	var client EmailClient
	switch cfg.Notifications.Email.Method {
	case "mutt":
		client = mutt_client.NewMuttClient(cfg)
	default:
		client = smtp_client.NewSMTPClient(cfg)
	}
	return &EmailManager{Config: cfg, client: client}
}

// SendEmail sends an email with the given subject and body.
// The body parameter supports HTML content which will be properly rendered in email clients.
func (e *EmailManager) SendEmail(subject, body string) error {
	if !e.Config.Notifications.Email.Enabled {
		logger.Debug("Email notifications are disabled")
		return fmt.Errorf("email notifications are disabled")
	}

	// Add dynamic app name to the subject
	appName := e.Config.AppName
	subject = fmt.Sprintf("[%s] %s", appName, subject)

	recipients := e.Config.Notifications.Email.RecipientEmails
	if len(recipients) == 0 {
		return fmt.Errorf("no recipient emails configured")
	}

	senders := e.Config.Notifications.Email.SenderEmails
	if len(senders) == 0 {
		return fmt.Errorf("no sender emails configured")
	}

	var lastErr error
	for _, sender := range senders {
		if err := e.client.Send(sender, recipients, subject, body); err != nil {
			lastErr = err
			logger.Warn("Failed to send email with sender, trying next",
				logger.String("sender", sender.Email),
				logger.String("error", err.Error()))
			continue
		}

		logger.Info("Email notification sent",
			logger.String("sender", sender.Email),
			logger.Int("recipients", len(recipients)),
			logger.String("subject", subject))
		return nil
	}

	return fmt.Errorf("all configured senders failed: %w", lastErr)
}
