package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the standardized JSON response envelope.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError contains error details in the response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Success sends a successful JSON response with data.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

// Error sends an error JSON response.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    statusCode,
			Message: message,
		},
	})
}

// StatusFor maps an error chain to the HTTP status the API answers with.
// Validation wins over delivery because a DeliveryError may wrap a
// ValidationError.
func StatusFor(err error) int {
	var notFound *NotFoundError
	var validation *ValidationError
	var unauthorized *UnauthorizedError
	var delivery *DeliveryError
	var provider *ProviderError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &delivery), errors.As(err, &provider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HandleError inspects a domain error and sends the appropriate HTTP response.
func HandleError(c *gin.Context, err error) {
	status := StatusFor(err)

	var validation *ValidationError
	switch status {
	case http.StatusBadRequest:
		errors.As(err, &validation)
		Error(c, status, validation.Error())
	case http.StatusNotFound, http.StatusUnauthorized:
		Error(c, status, err.Error())
	case http.StatusBadGateway:
		Error(c, status, "notification delivery failed")
	default:
		Error(c, status, "internal server error")
	}
}
