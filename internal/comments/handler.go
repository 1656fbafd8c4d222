package comments

import (
	"errors"
	"log/slog"
	"net/http"

	"portfolio/internal/httperr"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput = "Nama dan pesan harus diisi."
	msgListFailed   = "Gagal mengambil komentar."
	msgCreateFailed = "Gagal memposting komentar."
)

type Handler struct {
	svc    Service
	logger *slog.Logger
}

func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// GET /api/comments
func (h *Handler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list comments",
			"error", err,
			"request_id", c.GetString("request_id"))
		httperr.Abort(c, http.StatusInternalServerError, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/comments
func (h *Handler) Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Abort(c, http.StatusBadRequest, msgInvalidInput)
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), req)
	if errors.Is(err, ErrInvalidInput) {
		httperr.Abort(c, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if err != nil {
		h.logger.Error("Failed to create comment",
			"error", err,
			"request_id", c.GetString("request_id"))
		httperr.Abort(c, http.StatusInternalServerError, msgCreateFailed)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
