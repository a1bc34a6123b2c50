package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("invalid or expired token")

	// Account link errors
	ErrInvalidState      = errors.New("invalid OAuth state")
	ErrNoRefreshToken    = errors.New("no refresh token issued")
	ErrGoogleUnavailable = errors.New("google integration is not configured")

	// Other errors
	ErrMediaUnavailable = errors.New("media storage is not configured")
)

// Context keys for error values
const (
	StepKey = "step"
)
