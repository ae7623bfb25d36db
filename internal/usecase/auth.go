package usecase

import (
	"context"
	"fmt"

	"github.com/quantifun/uxrp/internal/core/domain"
	"github.com/quantifun/uxrp/internal/core/port"
)

// AuthService composes the credential store and the session store into the
// boundary operations. It holds no state of its own and performs no error
// translation: domain errors pass through verbatim.
type AuthService struct {
	credentials *CredentialService
	sessions    port.SessionStore
}

// NewAuthService constructs the orchestrator.
func NewAuthService(credentials *CredentialService, sessions port.SessionStore) *AuthService {
	return &AuthService{credentials: credentials, sessions: sessions}
}

// Register creates a credential record for the email.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	_, err := s.credentials.Create(ctx, email, password)
	return err
}

// Login authenticates the pair and issues a session bound to the principal.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	userID, err := s.credentials.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.sessions.Create(ctx, domain.Principal{ID: userID})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return token, nil
}

// Test echoes the resolved principal's id. It exists to prove the principal
// resolution wiring end to end and touches no storage.
func (s *AuthService) Test(_ context.Context, principal domain.Principal) string {
	return principal.ID
}

// Verify redeems an email verification token.
func (s *AuthService) Verify(ctx context.Context, token string) error {
	return s.credentials.RedeemVerification(ctx, token)
}

// Logout removes the session for the presented token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
