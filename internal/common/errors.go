// Package common defines shared constants and sentinel errors used across
// the MindCandy account core. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Registration conflicts.
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")

	// Registration attempted before the email code was verified.
	ErrEmailNotVerified = errors.New("email not verified")

	// Login failures.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAccountDeactivated = errors.New("account is deactivated")

	// Session errors.
	ErrNoActiveSession = errors.New("no user logged in")

	// Validation errors for user supplied input.
	ErrInvalidInput = errors.New("invalid input")

	// Durable write failed and the in-memory change was rolled back.
	ErrPersistence = errors.New("persistence error")

	// Session marker problems.
	ErrInvalidToken = errors.New("invalid token")
)
