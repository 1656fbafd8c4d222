package comments

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the comment board on rg.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/comments", h.List)
	rg.POST("/comments", h.Create)
}
