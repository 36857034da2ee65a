package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,min=1,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the public projection of a user account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse projects a domain user to its public form.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt,
	}
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
type UpdateProfileRequest struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=50"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

// PageResponse wraps a paginated listing with its total count.
type PageResponse struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
}

// AddVocabularyRequest defines the payload for adding words to the
// user's vocabulary. A single word ID or a batch may be given.
type AddVocabularyRequest struct {
	WordID  *uuid.UUID  `json:"word_id,omitempty"`
	WordIDs []uuid.UUID `json:"word_ids,omitempty"`
}

// SubmitRatingRequest defines the payload for the self-rating endpoint.
type SubmitRatingRequest struct {
	Rating string `json:"rating" validate:"required,oneof=known fuzzy unknown"`
}

// SubmitAnswerRequest defines the payload for the test-answer endpoint.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`

	// RecordID optionally pins the review record opened by the preceding
	// rating; without it the most recent open record is closed.
	RecordID *uuid.UUID `json:"record_id,omitempty"`

	// IsFromErrorQueue marks the answer as an error-queue drill retry
	// that must not affect the schedule.
	IsFromErrorQueue bool `json:"is_from_error_queue"`

	ResponseTimeMs *int `json:"response_time_ms,omitempty" validate:"omitempty,gte=0"`
}
