// Package handlers provides HTTP request handlers.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/core/id"
	"boxfactory/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// BindJSON binds the request body. A missing body binds to the zero value.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	jsonNamesOnce.Do(useJSONNames)
	if err := c.ShouldBindJSON(obj); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			h.Error(c, apperror.NewValidationList(fieldMessages(fieldErrs)))
			return false
		}
		h.Error(c, apperror.NewValidation("Invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

var jsonNamesOnce sync.Once

// useJSONNames makes binding errors report the json field name.
func useJSONNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

func fieldMessages(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "max":
			out = append(out, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "required":
			out = append(out, fe.Field()+" is required")
		default:
			out = append(out, fe.Field()+" is invalid")
		}
	}
	return out
}

// Error registers err on the Gin context and aborts the request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// PathID parses the path parameter key. An id that cannot exist is
// reported as not found.
func (h *BaseHandler) PathID(c *gin.Context, key, entityName string) (id.ID, bool) {
	raw := c.Param(key)
	parsed, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewNotFound(entityName, raw))
		return id.Nil(), false
	}
	return parsed, true
}

// OK sends 200 with the success envelope.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

// Created sends 201 with the success envelope.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.OK(data))
}

// Deleted sends the delete confirmation for resource.
func (h *BaseHandler) Deleted(c *gin.Context, resource string) {
	c.JSON(http.StatusOK, dto.Deleted(resource))
}

func notFound(entityName string, entityID id.ID) error {
	return apperror.NewNotFound(entityName, entityID.String())
}
