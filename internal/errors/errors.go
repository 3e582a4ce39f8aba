package errors

import (
	"errors"
)

// Request-level failures. The HTTP layer maps them to status codes.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrIncorrectPassword   = errors.New("password is incorrect")
	ErrTokenRequired       = errors.New("token is required")
	ErrTokenInvalid        = errors.New("token is invalid or expired")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid")
)

// Storage-level failures.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)
