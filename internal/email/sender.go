// Package email provides email sending for the contact relay.
// It supports the Resend API (default), SMTP and a log-only development mode.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

// Modes accepted by Config.Mode.
const (
	ModeLog    = "log"
	ModeSMTP   = "smtp"
	ModeResend = "resend"
)

// ErrNotConfigured is returned by NewSender when the selected mode lacks credentials.
var ErrNotConfigured = errors.New("email provider is not configured")

// Message is an outgoing email.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Receipt identifies a message accepted by the provider.
type Receipt struct {
	ID string `json:"id"`
}

// Sender defines the interface for sending emails
type Sender interface {
	Send(ctx context.Context, msg Message) (*Receipt, error)
}

// Config holds email configuration
type Config struct {
	Mode         string // "resend" (default), "smtp" or "log"
	From         string
	FromName     string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

// NewSender creates a new email sender based on configuration
func NewSender(cfg Config, logger *slog.Logger) (Sender, error) {
	switch cfg.Mode {
	case ModeResend, "":
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("%w: RESEND_API_KEY is empty", ErrNotConfigured)
		}
		return &resendSender{client: resend.NewClient(cfg.ResendAPIKey), from: cfg.fromHeader()}, nil
	case ModeSMTP:
		if cfg.SMTPHost == "" || cfg.SMTPPort == 0 {
			return nil, fmt.Errorf("%w: SMTP_HOST and SMTP_PORT are required", ErrNotConfigured)
		}
		return &smtpSender{config: cfg}, nil
	case ModeLog:
		return &logSender{logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown email mode %q", cfg.Mode)
	}
}

func (c Config) fromHeader() string {
	if c.FromName == "" {
		return c.From
	}
	return fmt.Sprintf("%s <%s>", c.FromName, c.From)
}

// logSender logs emails instead of sending them (development mode)
type logSender struct {
	logger *slog.Logger
}

func (s *logSender) Send(ctx context.Context, msg Message) (*Receipt, error) {
	id := uuid.NewString()
	s.logger.Info("[DEV] Email not sent (log mode)",
		"id", id,
		"to", strings.Join(msg.To, ","),
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject)
	return &Receipt{ID: id}, nil
}

// resendSender sends emails through the Resend API (production mode)
type resendSender struct {
	client *resend.Client
	from   string
}

func (s *resendSender) Send(ctx context.Context, msg Message) (*Receipt, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return nil, fmt.Errorf("resend: %w", err)
	}
	return &Receipt{ID: sent.Id}, nil
}

// smtpSender sends emails via SMTP
type smtpSender struct {
	config Config
}

func (s *smtpSender) Send(ctx context.Context, msg Message) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	data := buildMIME(s.config.fromHeader(), s.config.SMTPHost, id, msg)

	var auth smtp.Auth
	if s.config.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUser, s.config.SMTPPassword, s.config.SMTPHost)
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.config.From, msg.To, data); err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	return &Receipt{ID: id}, nil
}

// buildMIME renders msg as an RFC 5322 message. Header values have CR and LF
// removed and the subject is Q-encoded.
func buildMIME(from, host, id string, msg Message) []byte {
	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = headerValue(addr)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(from))
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	if replyTo := headerValue(msg.ReplyTo); replyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", headerValue(msg.Subject)))
	fmt.Fprintf(&b, "Message-ID: <%s@%s>\r\n", id, headerValue(host))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func headerValue(v string) string {
	return strings.TrimSpace(headerBreaks.Replace(v))
}
