package services

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields      = errors.New("email and password are required")
	ErrInvalidHandle      = errors.New("handle must be 3-30 letters, digits or underscores")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrHandleTaken        = errors.New("handle already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
)

// ErrUnauthenticated wraps every refresh token failure.
var ErrUnauthenticated = errors.New("unauthenticated")

// Refresh token failure reasons, always wrapped together with ErrUnauthenticated.
var (
	ErrRefreshTokenMissing = errors.New("no refresh token")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

func unauthenticated(reason error) error {
	return fmt.Errorf("%w: %w", ErrUnauthenticated, reason)
}
