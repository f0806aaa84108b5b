// Package middleware provides HTTP middleware components.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/infrastructure/http/v1/dto"
	"boxfactory/pkg/logger"
)

// Recovery converts panics into a 500 error envelope. It runs outermost,
// after ErrorHandler has already unwound, so it writes the response itself.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			logger.Error(c.Request.Context(), "panic recovered",
				"error", rec,
				"stack", string(debug.Stack()),
			)

			appErr := apperror.NewInternal(fmt.Errorf("panic: %v", rec))
			_ = c.Error(appErr)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, dto.ErrorResponse{
				Success: false,
				Message: appErr.Message,
				Error:   appErr.Code,
			})
		}()
		c.Next()
	}
}
