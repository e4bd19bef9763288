package controllers

import (
	"context"
	"net/http"

	"estatery-api-io/api/internal/common"
	"estatery-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

// WithTimeout derives a request-scoped context with the standard request timeout
func WithTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), common.REQUEST_TIMEOUT_SECS)
}

// bindJSON decodes the body into obj, writing a 400 on malformed input.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		util.HandleError(c, http.StatusBadRequest, err)
		return false
	}
	return true
}
