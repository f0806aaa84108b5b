package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/infrastructure/http/v1/dto"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), Trace(), ErrorHandler())
	r.GET("/x", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body dto.ErrorResponse
	if w.Code >= 400 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		errors  []string
	}{
		{"validation list", apperror.NewValidationList([]string{"Name is required", "Phone is required"}),
			400, apperror.CodeValidation, "Name is required, Phone is required", []string{"Name is required", "Phone is required"}},
		{"not found", apperror.NewNotFound("Client", "1"), 404, apperror.CodeNotFound, "Client not found", nil},
		{"duplicate", apperror.NewDuplicate("Client", "email", "a@b.c"), 409, apperror.CodeDuplicate, "Client with this email already exists", nil},
		{"plain error is hidden", errors.New("connection refused"), 500, apperror.CodeInternal, "Server Error", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(t, func(c *gin.Context) {
				_ = c.Error(tt.err)
				c.Abort()
			})
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.errors, body.Errors)
		})
	}
}

func TestRecovery(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		panic("boom")
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, apperror.CodeInternal, body.Error)
	assert.Equal(t, "Server Error", body.Message)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRecovery_AfterErrorRecorded(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("Client", "1"))
		panic("boom")
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body.Error)
}

func TestTrace_EchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Trace())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "req-1", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderTraceID))
}
