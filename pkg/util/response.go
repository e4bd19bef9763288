package util

import (
	"estatery-api-io/api/internal/apperr"

	"github.com/gin-gonic/gin"
)

type SuccessResponse struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
}

func HandleSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func HandleSuccessMeta(c *gin.Context, statusCode int, message string, data, meta interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Meta:       meta,
	})
}

type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// HandleError writes a failure envelope with an explicit status code.
func HandleError(c *gin.Context, statusCode int, err error) {
	Log.WithField("status", statusCode).WithError(err).Warn("request failed")
	c.JSON(statusCode, ErrorResponse{
		Success:    false,
		StatusCode: statusCode,
		Message:    err.Error(),
	})
}

// HandleAppError writes a failure envelope whose status is derived from the error kind.
func HandleAppError(c *gin.Context, err error) {
	HandleError(c, apperr.StatusCode(err), err)
}

type Pagination struct {
	Limit      int   `json:"limit"`
	StartIndex int   `json:"startIndex"`
	Count      int64 `json:"count"`
}
