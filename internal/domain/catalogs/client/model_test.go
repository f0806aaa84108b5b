package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
)

func TestValidate_CollectsEveryProblem(t *testing.T) {
	c := &Client{Status: "archived"}

	appErr, ok := apperror.AsAppError(c.Validate(context.Background()))
	require.True(t, ok)
	assert.Equal(t, []string{
		"Name is required",
		"Email is required",
		"Phone is required",
		"Address is required",
		"City is required",
		"State is required",
		"Zip code is required",
		"Status must be one of: active, inactive, pending",
	}, appErr.FieldErrors())
	assert.Equal(t, 400, appErr.HTTPStatus)
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{" Sales@Acme.com ", true},
		{"no-at-sign.com", false},
		{"a@b", false},
		{"a b@c.d", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			c := NewClient("Acme", tt.email)
			c.Phone, c.Address, c.City, c.State, c.ZipCode = "1", "2", "3", "4", "5"
			err := c.Validate(context.Background())
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	c := &Client{Email: "  Sales@ACME.com "}
	c.Name = " Acme "
	c.Normalize()
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "sales@acme.com", c.Email)
	assert.Equal(t, StatusActive, c.Status)
}
