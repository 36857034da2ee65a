// Package service provides application-level services for managing users,
// the word catalog, and per-user vocabularies.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than
	// the one making the request. The API layer maps this to 404 so
	// foreign resources are indistinguishable from absent ones.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials indicates a failed login attempt. Unknown
	// email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWrongPassword indicates a password change where the current
	// password did not match.
	ErrWrongPassword = errors.New("current password is incorrect")
)
