package port

import (
	"context"

	"github.com/quantifun/uxrp/internal/core/domain"
)

// SessionStore issues opaque bearer tokens bound to a principal and resolves
// them back. Token uniqueness is probabilistic: the generator must carry
// 128-bit-class entropy, no explicit collision check is performed.
type SessionStore interface {
	Create(ctx context.Context, principal domain.Principal) (string, error)
	// Get returns domain.ErrInvalidCredentials when no session exists for the
	// token. A session that exists but cannot be deserialized is an internal
	// error, not an authentication failure.
	Get(ctx context.Context, token string) (domain.Principal, error)
	Delete(ctx context.Context, token string) error
}
