// Package apperrors defines user-visible API errors. Each error carries the
// HTTP status it is reported with and a message safe to show to clients.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is an error that is reported to the client as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError with the given status and message.
func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// As extracts an APIError from err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func NewErrEmailIsTaken() *APIError {
	return New(http.StatusBadRequest, "An account with this email may already exist. Try logging in instead.")
}

func NewErrInvalidCredentials() *APIError {
	return New(http.StatusUnauthorized, "Incorrect email or password")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return New(http.StatusUnauthorized, "Could not validate credentials")
}

func NewErrValidation(format string, args ...any) *APIError {
	return New(http.StatusUnprocessableEntity, fmt.Sprintf(format, args...))
}

func NewErrBadRequest(message string) *APIError {
	return New(http.StatusBadRequest, message)
}

func NewErrForbidden(message string) *APIError {
	return New(http.StatusForbidden, message)
}

func NewErrNotFound(what string) *APIError {
	return New(http.StatusNotFound, what+" not found")
}

func NewErrRecipeNotFound() *APIError {
	return NewErrNotFound("Recipe")
}

func NewErrMealNotFound() *APIError {
	return NewErrNotFound("Meal")
}

func NewErrGroceryItemNotFound() *APIError {
	return NewErrNotFound("Grocery item")
}

func NewErrPhotoNotFound() *APIError {
	return NewErrNotFound("Photo")
}

func NewErrGeneratorUnavailable() *APIError {
	return New(http.StatusServiceUnavailable, "Gemini API not configured")
}

func NewErrGenerationFailed(message string) *APIError {
	return New(http.StatusInternalServerError, message)
}

func NewErrStorageUnavailable() *APIError {
	return New(http.StatusServiceUnavailable, "Photo storage not configured")
}

func NewErrNotAuthenticated() *APIError {
	return New(http.StatusUnauthorized, "Not authenticated")
}
