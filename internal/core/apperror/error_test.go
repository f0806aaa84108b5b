package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationList_JoinsMessages(t *testing.T) {
	err := NewValidationList([]string{"Name is required", "Email is required"})

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "Name is required, Email is required", err.Message)
	assert.Equal(t, []string{"Name is required", "Email is required"}, err.FieldErrors())
}

func TestNewNotFound_Message(t *testing.T) {
	err := NewNotFound("Order item", "abc")

	assert.Equal(t, "Order item not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "abc", err.Details["id"])
}

func TestHelpers_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create client: %w", NewDuplicate("Client", "email", "a@b.com"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsDuplicate(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(wrapped))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Client with this email already exists", appErr.Message)
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestNewDatabase_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabase("list orders", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDatabase, err.Code)
	assert.NotContains(t, err.Message, "connection reset")
}
