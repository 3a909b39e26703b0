package models

import "time"

// VerificationCode is the outstanding email code for one address.
type VerificationCode struct {
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issuedAt"`
	Verified bool      `json:"verified"`
}

// Expired reports whether the code is older than ttl at now. A code exactly
// ttl old is still valid.
func (c VerificationCode) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.IssuedAt) > ttl
}
