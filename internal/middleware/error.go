package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/HeyDYF/Money-Manager/internal/errors"
	"github.com/HeyDYF/Money-Manager/internal/logger"
)

// WriteError renders err in the {"error":{"code","message"}} envelope.
// Only AppError codes and messages reach the client; anything else is
// logged and reported as INTERNAL_ERROR.
func WriteError(c *gin.Context, err error) {
	appErr, known := apperrors.From(err)
	if !known || appErr.Internal != nil {
		logger.Get().Errorw("request failed",
			"request_id", RequestID(c),
			"code", appErr.Code,
			"error", err.Error(),
			"method", c.Request.Method,
			"route", c.FullPath(),
		)
	}
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// ErrorHandler renders the last error attached with c.Error, unless the
// handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// Recovery turns a panic into an INTERNAL_ERROR response and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Get().Errorw("panic recovered",
					"request_id", RequestID(c),
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				WriteError(c, apperrors.ErrInternalServer)
			}
		}()
		c.Next()
	}
}

// NotFound answers unknown routes with the NOT_FOUND envelope.
func NotFound(c *gin.Context) {
	WriteError(c, apperrors.WithMessage(apperrors.ErrNotFound, fmt.Sprintf("No route for %s %s", c.Request.Method, c.Request.URL.Path)))
}

