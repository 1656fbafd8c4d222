package subscribe

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portfolio/internal/httperr"

	"github.com/gin-gonic/gin"
)

type Request struct {
	Email string `json:"email"`
}

type Response struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	MemberID string `json:"memberId"`
}

type Handler struct {
	subscriber Subscriber
	audienceID string
	logger     *slog.Logger
}

func NewHandler(subscriber Subscriber, audienceID string, logger *slog.Logger) *Handler {
	return &Handler{subscriber: subscriber, audienceID: audienceID, logger: logger}
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/subscribe", h.Subscribe)
}

// POST /api/subscribe
func (h *Handler) Subscribe(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithDetails(c, http.StatusBadRequest, "A valid email is required.", err.Error())
		return
	}

	addr := strings.TrimSpace(req.Email)
	if addr == "" || !strings.Contains(addr, "@") {
		httperr.Abort(c, http.StatusBadRequest, "A valid email is required.")
		return
	}
	if h.audienceID == "" {
		httperr.Abort(c, http.StatusInternalServerError, "Audience ID is not configured.")
		return
	}
	if h.subscriber == nil {
		httperr.Abort(c, http.StatusInternalServerError, "Mailing list provider is not configured.")
		return
	}

	member, err := h.subscriber.Subscribe(c.Request.Context(), h.audienceID, addr)
	if errors.Is(err, ErrMemberExists) {
		httperr.Abort(c, http.StatusBadRequest, "This email is already subscribed.")
		return
	}
	if err != nil {
		h.logger.Error("Mailchimp API error",
			"error", err,
			"request_id", c.GetString("request_id"))
		httperr.AbortWithDetails(c, http.StatusInternalServerError,
			"An error occurred during subscription. Please try again.", err.Error())
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success:  true,
		Message:  "Successfully subscribed!",
		MemberID: member.ID,
	})
}
