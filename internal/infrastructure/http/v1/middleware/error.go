package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/infrastructure/http/v1/dto"
	"boxfactory/pkg/logger"
)

// ErrorHandler renders the last error recorded on the context as the
// standard error envelope. Causes of server errors are logged, never sent.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperror.AsAppError(err)
		if !ok {
			appErr = apperror.NewInternal(err)
		}

		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "request failed",
				"code", appErr.Code,
				"cause", appErr.Err,
				"error", err,
			)
		}

		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Success: false,
			Message: appErr.Message,
			Error:   appErr.Code,
			Errors:  appErr.FieldErrors(),
		})
	}
}

// NotFound answers unknown routes with the error envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Message: "Route " + c.Request.URL.Path + " not found",
			Error:   apperror.CodeNotFound,
		})
	}
}
