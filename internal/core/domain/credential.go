package domain

import "time"

// Credential mirrors the persisted credential record, one per registered email.
type Credential struct {
	ID            string
	UserID        string
	PasswordHash  []byte
	PasswordSalt  []byte
	EmailVerified bool
	CreatedAt     time.Time
}

// Verification is a single-use record proving control of an email address.
// The ID is a digest of the raw token so the token itself is never persisted.
type Verification struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
