// Package gallery serves portfolio gallery assets through presigned URLs.
package gallery

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"portfolio/internal/httperr"
	"portfolio/internal/storage"

	"github.com/gin-gonic/gin"
)

// DownloadTTL is how long a presigned gallery URL stays valid.
const DownloadTTL = time.Hour

// Item is a gallery asset with a browser-usable URL.
type Item struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	Size      int64  `json:"size"`
	ExpiresAt int64  `json:"expiresAt"`
}

type Handler struct {
	storage storage.Service
	prefix  string
	logger  *slog.Logger
}

// NewHandler serves objects under prefix. A nil storage answers 503.
func NewHandler(s storage.Service, prefix string, logger *slog.Logger) *Handler {
	return &Handler{storage: s, prefix: prefix, logger: logger}
}

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/gallery", h.List)
	rg.GET("/gallery/*key", h.Get)
}

func (h *Handler) available(c *gin.Context) bool {
	if h.storage == nil {
		httperr.AbortWithCode(c, http.StatusServiceUnavailable, "Storage service is not available", "STORAGE_UNAVAILABLE")
		return false
	}
	return true
}

// GET /api/gallery
func (h *Handler) List(c *gin.Context) {
	if !h.available(c) {
		return
	}
	ctx := c.Request.Context()

	objects, err := h.storage.ListObjects(ctx, h.prefix)
	if err != nil {
		h.logger.Error("Failed to list gallery", "error", err)
		httperr.AbortWithCode(c, http.StatusInternalServerError, "Failed to list gallery", "LIST_FAILED")
		return
	}

	expires := time.Now().Add(DownloadTTL).Unix()
	items := make([]Item, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		u, err := h.storage.GeneratePresignedDownloadURL(ctx, obj.Key, DownloadTTL)
		if err != nil {
			h.logger.Error("Failed to presign gallery item", "key", obj.Key, "error", err)
			httperr.AbortWithCode(c, http.StatusInternalServerError, "Failed to generate download URL", "GENERATION_FAILED")
			return
		}
		items = append(items, Item{Key: strings.TrimPrefix(obj.Key, h.prefix), URL: u, Size: obj.Size, ExpiresAt: expires})
	}
	c.JSON(http.StatusOK, items)
}

// GET /api/gallery/*key
func (h *Handler) Get(c *gin.Context) {
	if !h.available(c) {
		return
	}

	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		httperr.AbortWithCode(c, http.StatusBadRequest, "File key is required", "INVALID_FILE_KEY")
		return
	}

	u, err := h.storage.GeneratePresignedDownloadURL(c.Request.Context(), h.prefix+key, DownloadTTL)
	if err != nil {
		h.logger.Error("Failed to presign gallery item", "key", key, "error", err)
		httperr.AbortWithCode(c, http.StatusInternalServerError, "Failed to generate download URL", "GENERATION_FAILED")
		return
	}

	c.JSON(http.StatusOK, Item{Key: key, URL: u, ExpiresAt: time.Now().Add(DownloadTTL).Unix()})
}
