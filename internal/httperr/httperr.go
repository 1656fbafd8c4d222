// Package httperr holds the JSON error envelope every handler responds with.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response represents an error response
type Response struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Abort writes the envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Error: message})
}

// AbortWithDetails is Abort plus provider supplied detail.
func AbortWithDetails(c *gin.Context, status int, message string, details any) {
	c.AbortWithStatusJSON(status, Response{Error: message, Details: details})
}

// AbortWithCode is Abort plus a machine readable code.
func AbortWithCode(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, Response{Error: message, Code: code})
}
