package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryError_WrapsCause(t *testing.T) {
	cause := NewValidationError("recipient email address is required")
	err := NewDeliveryError("customer_registered", "sam@example.com", cause)

	assert.Equal(t,
		"error sending email with template customer_registered, to sam@example.com: recipient email address is required",
		err.Error(),
	)

	var validation *ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Same(t, cause, validation)
}

func TestProviderError_Message(t *testing.T) {
	assert.Equal(t, "mailjet provider error (status 401): bad key",
		NewProviderError("mailjet", 401, "bad key").Error())
	assert.Equal(t, "mailjet provider error: connection refused",
		NewProviderError("mailjet", 0, "connection refused").Error())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("template", "x"), http.StatusNotFound},
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"wrapped validation", NewDeliveryError("t", "r", NewValidationError("bad")), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError(""), http.StatusUnauthorized},
		{"delivery", NewDeliveryError("t", "r", errors.New("timeout")), http.StatusBadGateway},
		{"provider", fmt.Errorf("calling: %w", NewProviderError("mailjet", 500, "boom")), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}
