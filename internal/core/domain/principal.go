package domain

// Principal is an authenticated identity as seen by request handlers.
// It is created once at registration and never mutated afterwards;
// sessions reference it by value.
type Principal struct {
	ID string `json:"id"`
}
