package port

import (
	"context"
	"net/http"

	"github.com/quantifun/uxrp/internal/core/domain"
)

// PrincipalResolver turns an inbound request into an authenticated principal.
// The transport layer depends on this contract only, never on how sessions
// are persisted. Resolution is a single step with exactly two outcomes:
// a principal, or an error the transport maps to an unauthenticated response.
type PrincipalResolver interface {
	Resolve(ctx context.Context, r *http.Request) (domain.Principal, error)
}
