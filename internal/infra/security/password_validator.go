package security

import (
	"fmt"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

const (
	defaultMinPasswordLength = 8
	defaultMinZxcvbnScore    = 2
)

// PasswordValidator rejects passwords that are trivially guessable before
// they ever reach the hasher.
type PasswordValidator struct {
	minLength int
	minScore  int
}

// DefaultPasswordValidator returns the validator used for registration.
func DefaultPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		minLength: defaultMinPasswordLength,
		minScore:  defaultMinZxcvbnScore,
	}
}

// Validate returns a descriptive error when the password violates policy.
func (v *PasswordValidator) Validate(password string) error {
	if len(password) < v.minLength {
		return fmt.Errorf("password must be at least %d characters", v.minLength)
	}

	if strength := zxcvbn.PasswordStrength(password, nil); strength.Score < v.minScore {
		return fmt.Errorf("password is too guessable (score %d, need %d)", strength.Score, v.minScore)
	}

	return nil
}
