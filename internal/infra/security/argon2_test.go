package security

import (
	"bytes"
	"testing"
)

func testHasher(t *testing.T) *Hasher {
	t.Helper()

	// Minimum legal cost keeps the suite fast; production parameters come
	// from configuration.
	h, err := NewHasher(Argon2Config{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		t.Fatalf("NewHasher returned error: %v", err)
	}
	return h
}

func TestHashAndVerifySuccess(t *testing.T) {
	h := testHasher(t)
	password := "correct horse battery staple"

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	if len(salt) != 16 {
		t.Fatalf("expected 16-byte salt, got %d", len(salt))
	}

	hash, err := h.Hash(password, salt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if len(hash) != 32 {
		t.Fatalf("expected 32-byte hash, got %d", len(hash))
	}

	ok, err := h.Verify(password, salt, hash)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatal("Verify returned false for correct password")
	}
}

func TestVerifyRejectsAlteredPassword(t *testing.T) {
	h := testHasher(t)
	password := "correct horse battery staple"

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	hash, err := h.Hash(password, salt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	// Flip a single bit in the password.
	altered := []byte(password)
	altered[0] ^= 0x01

	ok, err := h.Verify(string(altered), salt, hash)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatal("Verify returned true for altered password")
	}
}

func TestHashIsDeterministicPerSalt(t *testing.T) {
	h := testHasher(t)
	password := "supersecure"

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}

	first, err := h.Hash(password, salt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash(password, salt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatal("identical password and salt produced different hashes")
	}

	otherSalt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}
	if bytes.Equal(salt, otherSalt) {
		t.Fatal("GenerateSalt produced identical salts")
	}

	third, err := h.Hash(password, otherSalt)
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if bytes.Equal(first, third) {
		t.Fatal("different salts produced identical hashes")
	}
}

func TestHashRejectsWrongSaltLength(t *testing.T) {
	h := testHasher(t)

	if _, err := h.Hash("password", []byte("short")); err == nil {
		t.Fatal("Hash expected to return error for wrong salt length")
	}
}

func TestVerifyRejectsEmptyStoredHash(t *testing.T) {
	h := testHasher(t)

	salt, err := h.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt returned error: %v", err)
	}

	if _, err := h.Verify("password", salt, nil); err == nil {
		t.Fatal("Verify expected to return error for empty stored hash")
	}
}

func TestNewHasherRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Argon2Config
	}{
		{"low memory", Argon2Config{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}},
		{"zero iterations", Argon2Config{Memory: 8 * 1024, Iterations: 0, Parallelism: 1, SaltLength: 16, KeyLength: 32}},
		{"zero parallelism", Argon2Config{Memory: 8 * 1024, Iterations: 1, Parallelism: 0, SaltLength: 16, KeyLength: 32}},
		{"short salt", Argon2Config{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 32}},
		{"short key", Argon2Config{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 8}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHasher(tc.cfg); err == nil {
				t.Fatalf("NewHasher expected to reject config %+v", tc.cfg)
			}
		})
	}
}
