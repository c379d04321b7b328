package models

import "time"

// OTPState is the lifecycle state of a one-time code. Expiry is not stored;
// it follows from ExpiresAt.
type OTPState string

const (
	OTPIssued     OTPState = "issued"
	OTPVerified   OTPState = "verified"
	OTPSuperseded OTPState = "superseded"
)

// OneTimeCode is the second login factor bound to one principal.
type OneTimeCode struct {
	ID          string
	PrincipalID string
	Code        string
	State       OTPState
	ExpiresAt   time.Time
	ConsumedAt  *time.Time
	CreatedAt   time.Time
}

// Expired reports whether the code is past its expiry at now.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
