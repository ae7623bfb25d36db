package domain

import "errors"

var (
	// ErrUserExists indicates a registration conflict: a credential record
	// already exists for the requested email.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers bad logins, unknown or malformed bearer
	// tokens, and unknown verification tokens. The variants are deliberately
	// unified so responses do not reveal which sub-check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserUnverified indicates login is blocked until the email is verified.
	ErrUserUnverified = errors.New("user email not verified")
)
