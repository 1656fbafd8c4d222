package github

import (
	"errors"
	"log/slog"
	"net/http"

	"portfolio/internal/httperr"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewHandler serves the calendar. A nil fetcher means username or token is missing.
func NewHandler(fetcher Fetcher, logger *slog.Logger) *Handler {
	return &Handler{fetcher: fetcher, logger: logger}
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/github-contributions", h.Contributions)
}

// GET /api/github-contributions
func (h *Handler) Contributions(c *gin.Context) {
	if h.fetcher == nil {
		httperr.Abort(c, http.StatusInternalServerError,
			"GitHub username atau token belum dikonfigurasi di server.")
		return
	}

	cal, err := h.fetcher.Fetch(c.Request.Context())
	if errors.Is(err, ErrCalendarNotFound) {
		httperr.Abort(c, http.StatusNotFound, "Data kalender kontribusi tidak ditemukan.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to fetch GitHub contributions",
			"error", err,
			"request_id", c.GetString("request_id"))
		httperr.AbortWithDetails(c, http.StatusInternalServerError,
			"Gagal mengambil kontribusi GitHub.", err.Error())
		return
	}

	c.JSON(http.StatusOK, cal)
}
