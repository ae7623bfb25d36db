package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/quantifun/uxrp/internal/core/domain"
	"github.com/quantifun/uxrp/internal/infra/security"
)

const (
	defaultSessionPrefix = "sessions"
	sessionTokenBytes    = 32
)

// SessionStore persists bearer-token sessions in Redis. It implements both
// port.SessionStore and port.PrincipalResolver: resolving a request is
// extracting its bearer token and looking the session up.
type SessionStore struct {
	client *red.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore constructs a Redis-backed session store. A zero ttl stores
// sessions without expiry; the cache may still evict, and an absent session
// is treated as unauthenticated rather than an error.
func NewSessionStore(client *red.Client, keyPrefix string, ttl time.Duration) *SessionStore {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultSessionPrefix
	}

	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *SessionStore) key(token string) string {
	return fmt.Sprintf("%s:%s", s.prefix, token)
}

// Create generates an unguessable token, binds it to the serialized
// principal, and returns it. Uniqueness rests on token entropy, not on an
// existence check.
func (s *SessionStore) Create(ctx context.Context, principal domain.Principal) (string, error) {
	token, err := security.GenerateSecureToken(sessionTokenBytes)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	payload, err := json.Marshal(principal)
	if err != nil {
		return "", fmt.Errorf("encode session payload: %w", err)
	}

	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set session: %w", err)
	}

	return token, nil
}

// Get resolves a token back to its principal. An absent session means the
// caller is not authenticated; a session that exists but does not decode
// indicates stored-data corruption and surfaces as an internal error.
func (s *SessionStore) Get(ctx context.Context, token string) (domain.Principal, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return domain.Principal{}, domain.ErrInvalidCredentials
		}
		return domain.Principal{}, fmt.Errorf("redis get session: %w", err)
	}

	var principal domain.Principal
	if err := json.Unmarshal([]byte(payload), &principal); err != nil {
		return domain.Principal{}, fmt.Errorf("decode session payload: %w", err)
	}

	return principal, nil
}

// Delete removes the session; its token no longer resolves afterwards.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Resolve extracts the bearer token from the request's Authorization header
// and resolves it. A missing or malformed header fails exactly like an
// unknown token.
func (s *SessionStore) Resolve(ctx context.Context, r *http.Request) (domain.Principal, error) {
	token, ok := bearerToken(r)
	if !ok {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	return s.Get(ctx, token)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
