package port

import "context"

// VerificationMailer delivers verification tokens to freshly registered users.
// Delivery failure must surface to the caller: a user who never receives the
// token can never verify.
type VerificationMailer interface {
	SendVerification(ctx context.Context, email, token string) error
}
