package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/quantifun/uxrp/internal/core/domain"
)

type mockSessionStore struct {
	createFn func(ctx context.Context, principal domain.Principal) (string, error)
	getFn    func(ctx context.Context, token string) (domain.Principal, error)
	deleteFn func(ctx context.Context, token string) error

	createdFor    []domain.Principal
	deletedTokens []string
}

func (m *mockSessionStore) Create(ctx context.Context, principal domain.Principal) (string, error) {
	m.createdFor = append(m.createdFor, principal)
	if m.createFn != nil {
		return m.createFn(ctx, principal)
	}
	return "session-token", nil
}

func (m *mockSessionStore) Get(ctx context.Context, token string) (domain.Principal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, token)
	}
	return domain.Principal{}, domain.ErrInvalidCredentials
}

func (m *mockSessionStore) Delete(ctx context.Context, token string) error {
	m.deletedTokens = append(m.deletedTokens, token)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func newTestAuthService(t *testing.T, creds *mockCredentialRepository, sessions *mockSessionStore) *AuthService {
	t.Helper()
	credentialService := newTestService(t, creds, &mockVerificationRepository{}, &mockMailer{}, CredentialServiceOptions{SkipVerification: true})
	return NewAuthService(credentialService, sessions)
}

func TestLoginIssuesSessionForPrincipal(t *testing.T) {
	hasher := newTestHasher(t)
	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	hash, err := hasher.Hash(strongPassword, salt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	creds := &mockCredentialRepository{
		getByIDFn: func(_ context.Context, id string) (*domain.Credential, error) {
			return &domain.Credential{
				ID:            id,
				UserID:        "user-123",
				PasswordHash:  hash,
				PasswordSalt:  salt,
				EmailVerified: true,
			}, nil
		},
	}
	sessions := &mockSessionStore{}
	credentialService := NewCredentialService(creds, &mockVerificationRepository{}, &mockMailer{}, hasher, nil, CredentialServiceOptions{})
	svc := NewAuthService(credentialService, sessions)

	token, err := svc.Login(context.Background(), "user@example.com", strongPassword)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token != "session-token" {
		t.Fatalf("unexpected token %q", token)
	}

	if len(sessions.createdFor) != 1 || sessions.createdFor[0].ID != "user-123" {
		t.Fatalf("session bound to wrong principal: %v", sessions.createdFor)
	}
}

func TestLoginFailurePropagatesWithoutSession(t *testing.T) {
	sessions := &mockSessionStore{}
	svc := newTestAuthService(t, &mockCredentialRepository{}, sessions)

	_, err := svc.Login(context.Background(), "ghost@example.com", strongPassword)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(sessions.createdFor) != 0 {
		t.Fatal("session created for failed login")
	}
}

func TestRegisterPropagatesDomainErrors(t *testing.T) {
	creds := &mockCredentialRepository{
		createFn: func(context.Context, domain.Credential) error {
			return errors.New("boom")
		},
	}
	svc := newTestAuthService(t, creds, &mockSessionStore{})

	if err := svc.Register(context.Background(), "user@example.com", strongPassword); err == nil {
		t.Fatal("expected error from failed create")
	}
}

func TestTestEchoesPrincipalID(t *testing.T) {
	svc := newTestAuthService(t, &mockCredentialRepository{}, &mockSessionStore{})

	if got := svc.Test(context.Background(), domain.Principal{ID: "user-123"}); got != "user-123" {
		t.Fatalf("unexpected principal id %q", got)
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	sessions := &mockSessionStore{}
	svc := newTestAuthService(t, &mockCredentialRepository{}, sessions)

	if err := svc.Logout(context.Background(), "session-token"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(sessions.deletedTokens) != 1 || sessions.deletedTokens[0] != "session-token" {
		t.Fatalf("unexpected deleted tokens: %v", sessions.deletedTokens)
	}
}
