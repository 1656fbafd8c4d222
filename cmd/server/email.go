package main

import (
	"log/slog"

	"portfolio/internal/config"
	"portfolio/internal/email"
)

// newEmailSender returns nil when the selected provider lacks credentials,
// which the contact relay reports as "Email provider is not configured.".
func newEmailSender(cfg *config.Config, log *slog.Logger) email.Sender {
	sender, err := email.NewSender(email.Config{
		Mode:         cfg.Email.Mode,
		From:         cfg.Email.From,
		FromName:     cfg.Email.FromName,
		ResendAPIKey: cfg.Email.ResendAPIKey,
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUser:     cfg.Email.SMTPUser,
		SMTPPassword: cfg.Email.SMTPPassword,
	}, log)
	if err != nil {
		log.Warn("Email sender not configured, contact form disabled", "error", err)
		return nil
	}
	return sender
}
