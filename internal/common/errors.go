// Package common defines shared constants and sentinel errors used across
// client and server layers of VeriSchol. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// ErrAuthenticationFailure covers bad credentials and a private key blob
	// that cannot be opened. It never says which check failed.
	ErrAuthenticationFailure = errors.New("authentication failure")

	// ErrIntegrityFailure is returned when authenticated decryption rejects
	// its input. No plaintext accompanies it.
	ErrIntegrityFailure = errors.New("integrity failure")

	// ErrAuthorizationDenied is returned when a role capability or a
	// record-level ownership/assignment check fails.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// One-time code errors. Wrong and expired codes share one error.
	ErrOtpInvalidOrExpired = errors.New("invalid or expired one-time code")
	ErrOtpAlreadyUsed      = errors.New("one-time code already used")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
