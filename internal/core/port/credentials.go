package port

import (
	"context"

	"github.com/quantifun/uxrp/internal/core/domain"
)

// CredentialRepository exposes persistence behavior for credential records.
type CredentialRepository interface {
	// Create inserts the credential only if no record exists for its ID.
	// The check and the insert are a single atomic write; losing the race
	// surfaces repository.ErrDuplicate.
	Create(ctx context.Context, cred domain.Credential) error
	GetByID(ctx context.Context, id string) (*domain.Credential, error)
	// MarkEmailVerified flips the verified flag. The transition is one-way.
	MarkEmailVerified(ctx context.Context, id string) error
}

// VerificationRepository persists single-use email verification records.
type VerificationRepository interface {
	Create(ctx context.Context, verification domain.Verification) error
	// Consume removes the record and returns the email it verifies.
	// A missing (or already consumed) record surfaces repository.ErrNotFound,
	// which makes replay a no-op failure rather than a silent success.
	Consume(ctx context.Context, id string) (string, error)
}
