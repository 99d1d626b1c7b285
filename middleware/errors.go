package middleware

import (
	"errors"
	"net/http"

	"casedesk-backend/logger"
	"casedesk-backend/service"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON envelope of every failed request.
func ErrorBody(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// Abort stops the chain with the error envelope.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorBody(code, message))
}

// AbortWithError maps a service error onto its status code; anything else is a 500.
func AbortWithError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		Abort(c, StatusFor(svcErr.Kind), svcErr.Code, svcErr.Message)
		return
	}
	logger.From(c.Request.Context()).Error("request failed", logger.Err(err))
	_ = c.Error(err)
	Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

// StatusFor returns the HTTP status of a service error kind.
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindInvalid:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
