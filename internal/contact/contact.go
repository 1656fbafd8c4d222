// Package contact relays the portfolio contact form to the site owner's inbox.
package contact

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"portfolio/internal/email"
	"portfolio/internal/httperr"

	"github.com/gin-gonic/gin"
)

// Request is the body of POST /api/contact.
type Request struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Response is returned when the provider accepted the message.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *email.Receipt `json:"data,omitempty"`
}

type Handler struct {
	sender    email.Sender
	recipient string
	logger    *slog.Logger
}

// NewHandler creates the relay. A nil sender or empty recipient makes every
// request fail with 500 so a misconfigured deployment is visible.
func NewHandler(sender email.Sender, recipient string, logger *slog.Logger) *Handler {
	return &Handler{sender: sender, recipient: recipient, logger: logger}
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/contact", h.Send)
}

// POST /api/contact
func (h *Handler) Send(c *gin.Context) {
	if h.recipient == "" {
		httperr.Abort(c, http.StatusInternalServerError, "Recipient email address is not configured.")
		return
	}
	if h.sender == nil {
		httperr.Abort(c, http.StatusInternalServerError, "Email provider is not configured.")
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetails(c, http.StatusBadRequest, "Error processing request.", err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		httperr.Abort(c, http.StatusBadRequest, "Name, email, and message are required.")
		return
	}
	// Name and email end up in mail headers.
	if strings.ContainsAny(req.Name, "\r\n") || strings.ContainsAny(req.Email, "\r\n") {
		httperr.Abort(c, http.StatusBadRequest, "Name and email must be a single line.")
		return
	}

	receipt, err := h.relay(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to relay contact message",
			"error", err,
			"request_id", c.GetString("request_id"))
		httperr.AbortWithDetails(c, http.StatusInternalServerError, "Failed to send message.", err.Error())
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Message sent successfully!",
		Data:    receipt,
	})
}

func (h *Handler) relay(ctx context.Context, req Request) (*email.Receipt, error) {
	return h.sender.Send(ctx, email.Message{
		To:      []string{h.recipient},
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("New Message from Portfolio Contact Form - %s", req.Name),
		HTML:    FormatBody(req),
	})
}

// FormatBody renders the notification email. Visitor input is HTML-escaped.
func FormatBody(req Request) string {
	var b strings.Builder
	b.WriteString("<p>You have a new message from your portfolio contact form:</p>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", html.EscapeString(req.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(req.Email))
	b.WriteString("<p><strong>Message:</strong></p>\n")
	msg := html.EscapeString(req.Message)
	fmt.Fprintf(&b, "<p>%s</p>\n", strings.ReplaceAll(msg, "\n", "<br>"))
	return b.String()
}
