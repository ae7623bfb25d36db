package security

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

var errInvalidConfig = errors.New("argon2: invalid configuration")

// Argon2Config defines tunable parameters for Argon2id password hashing.
// All credential records created by one service build share the same
// parameters and salt length.
type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Config returns the service default Argon2id configuration.
func DefaultArgon2Config() Argon2Config {
	return Argon2Config{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func validateArgon2Config(cfg Argon2Config) error {
	if cfg.Memory < 8*1024 {
		return fmt.Errorf("%w: memory must be at least 8192", errInvalidConfig)
	}
	if cfg.Iterations == 0 {
		return fmt.Errorf("%w: iterations must be greater than zero", errInvalidConfig)
	}
	if cfg.Parallelism == 0 {
		return fmt.Errorf("%w: parallelism must be greater than zero", errInvalidConfig)
	}
	if cfg.SaltLength < 16 {
		return fmt.Errorf("%w: salt length must be at least 16 bytes", errInvalidConfig)
	}
	if cfg.KeyLength < 16 {
		return fmt.Errorf("%w: key length must be at least 16 bytes", errInvalidConfig)
	}
	return nil
}

// Hasher derives and verifies Argon2id password hashes against externally
// stored salts. Salt and hash travel as raw bytes; encoding is the
// repository's concern.
type Hasher struct {
	cfg Argon2Config
}

// NewHasher validates the configuration and returns a Hasher.
func NewHasher(cfg Argon2Config) (*Hasher, error) {
	if err := validateArgon2Config(cfg); err != nil {
		return nil, err
	}
	return &Hasher{cfg: cfg}, nil
}

// GenerateSalt draws a fresh salt from the CSPRNG.
func (h *Hasher) GenerateSalt() ([]byte, error) {
	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("argon2: generate salt: %w", err)
	}
	return salt, nil
}

// Hash derives the Argon2id key for the password under the supplied salt.
func (h *Hasher) Hash(password string, salt []byte) ([]byte, error) {
	if len(salt) != int(h.cfg.SaltLength) {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", errInvalidConfig, h.cfg.SaltLength, len(salt))
	}
	return argon2.IDKey([]byte(password), salt, h.cfg.Iterations, h.cfg.Memory, h.cfg.Parallelism, h.cfg.KeyLength), nil
}

// Verify reports whether the password hashes to expected under the stored
// salt. The comparison is constant-time with respect to the stored hash.
func (h *Hasher) Verify(password string, salt, expected []byte) (bool, error) {
	if len(expected) == 0 {
		return false, fmt.Errorf("%w: empty stored hash", errInvalidConfig)
	}
	computed, err := h.Hash(password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
