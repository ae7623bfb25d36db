package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"

	"github.com/quantifun/uxrp/internal/core/domain"
	"github.com/quantifun/uxrp/internal/core/port"
	"github.com/quantifun/uxrp/internal/infra/security"
	"github.com/quantifun/uxrp/internal/repository"
)

const verificationTokenBytes = 32

// ErrPasswordPolicyViolation indicates the password does not satisfy
// complexity requirements.
var ErrPasswordPolicyViolation = errors.New("password does not meet complexity requirements")

// CredentialServiceOptions carries deployment flags for the credential store.
type CredentialServiceOptions struct {
	// Namespace prefixes every derived credential key, isolating parallel
	// deployments that share a database.
	Namespace string
	// SkipVerification marks accounts verified at creation and suppresses
	// the verification flow entirely. Test and dev deployments only.
	SkipVerification bool
}

// CredentialService owns password hashing, uniqueness enforcement, and
// email-verification state for credential records.
type CredentialService struct {
	credentials   port.CredentialRepository
	verifications port.VerificationRepository
	mailer        port.VerificationMailer
	hasher        *security.Hasher
	validator     *security.PasswordValidator
	opts          CredentialServiceOptions
}

// NewCredentialService constructs a credential service.
func NewCredentialService(
	credentials port.CredentialRepository,
	verifications port.VerificationRepository,
	mailer port.VerificationMailer,
	hasher *security.Hasher,
	validator *security.PasswordValidator,
	opts CredentialServiceOptions,
) *CredentialService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	return &CredentialService{
		credentials:   credentials,
		verifications: verifications,
		mailer:        mailer,
		hasher:        hasher,
		validator:     validator,
		opts:          opts,
	}
}

// credentialID derives the storage key for an email. The transform is
// deterministic and collides only for identical emails.
func (s *CredentialService) credentialID(email string) string {
	return fmt.Sprintf("%sauth/email/%s", s.opts.Namespace, email)
}

// Create registers a new credential record and returns the generated user id.
// When verification is required, the verification record is stored and its
// token dispatched before the credential insert; a failed dispatch aborts the
// registration, since an unreachable user could never verify. The insert
// itself is conditional: an existing record for the email yields
// domain.ErrUserExists.
func (s *CredentialService) Create(ctx context.Context, email, password string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email is required")
	}
	if password == "" {
		return "", fmt.Errorf("password is required")
	}

	if err := s.validator.Validate(password); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPasswordPolicyViolation, err)
	}

	now := time.Now().UTC()

	if !s.opts.SkipVerification {
		rawToken, err := security.GenerateSecureToken(verificationTokenBytes)
		if err != nil {
			return "", fmt.Errorf("generate verification token: %w", err)
		}

		verification := domain.Verification{
			ID:        security.HashToken(rawToken),
			Email:     email,
			CreatedAt: now,
		}
		if err := s.verifications.Create(ctx, verification); err != nil {
			return "", fmt.Errorf("store verification: %w", err)
		}

		if err := s.mailer.SendVerification(ctx, email, rawToken); err != nil {
			return "", fmt.Errorf("dispatch verification: %w", err)
		}
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash, err := s.hasher.Hash(password, salt)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	userID := uuid.NewString()
	cred := domain.Credential{
		ID:            s.credentialID(email),
		UserID:        userID,
		PasswordHash:  hash,
		PasswordSalt:  salt,
		EmailVerified: s.opts.SkipVerification,
		CreatedAt:     now,
	}

	if err := s.credentials.Create(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("create credential: %w", err)
	}

	return userID, nil
}

// Authenticate checks an email+password pair against the stored credential.
// A missing record and a wrong password both surface as
// domain.ErrInvalidCredentials; an unverified account is reported separately
// so clients can prompt for verification.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (string, error) {
	cred, err := s.credentials.GetByID(ctx, s.credentialID(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup credential: %w", err)
	}

	if !cred.EmailVerified {
		return "", domain.ErrUserUnverified
	}

	ok, err := s.hasher.Verify(password, cred.PasswordSalt, cred.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", domain.ErrInvalidCredentials
	}

	return cred.UserID, nil
}

// RedeemVerification consumes a verification token and marks the matching
// credential verified. Consumption removes the record, so redeeming the same
// token again fails with domain.ErrInvalidCredentials instead of silently
// re-applying.
func (s *CredentialService) RedeemVerification(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrInvalidCredentials
	}

	email, err := s.verifications.Consume(ctx, security.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("consume verification: %w", err)
	}

	if err := s.credentials.MarkEmailVerified(ctx, s.credentialID(email)); err != nil {
		// A verification record without a matching credential points at
		// inconsistent storage, not at a bad token.
		return fmt.Errorf("mark email verified: %w", err)
	}

	return nil
}
