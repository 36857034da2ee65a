package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lingoflow/lingoflow-api/internal/domain"
	"github.com/lingoflow/lingoflow-api/internal/generation"
	"github.com/lingoflow/lingoflow-api/internal/service"
	"github.com/lingoflow/lingoflow-api/internal/service/auth"
	"github.com/lingoflow/lingoflow-api/internal/service/review"
	"github.com/lingoflow/lingoflow-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"entry not found", review.ErrEntryNotFound, http.StatusNotFound},
		{"record not found", review.ErrRecordNotFound, http.StatusNotFound},
		{"store not found", store.ErrWordNotFound, http.StatusNotFound},
		{"duplicate entry", store.ErrEntryExists, http.StatusConflict},
		{"invalid rating", review.ErrInvalidRating, http.StatusBadRequest},
		{"empty answer", review.ErrEmptyAnswer, http.StatusBadRequest},
		{"wrong password", service.ErrWrongPassword, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"generation disabled", generation.ErrDisabled, http.StatusNotFound},
		{"generation failed", generation.ErrGenerationFailed, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCodeUnwrapsWrappedErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("failed to submit rating: %w", review.ErrEntryNotFound)
	assert.Equal(t, http.StatusNotFound, MapErrorToStatusCode(wrapped))
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: connection to postgres://user:secret@db failed")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "secret")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
