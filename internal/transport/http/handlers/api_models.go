package handlers

import "time"

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterRequest carries a registration attempt.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the empty success marker for registration.
type RegisterResponse struct{}

// LoginRequest carries a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// VerifyRequest carries an email verification token.
type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyResponse is the empty success marker for verification.
type VerifyResponse struct{}

// TestResponse echoes the authenticated principal id.
type TestResponse struct {
	PrincipalID string `json:"principal_id"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports per-dependency readiness.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
