package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// SharedPassword verifies login attempts against the single shared secret.
// A bcrypt hash takes precedence; the plaintext form exists for local
// development only.
type SharedPassword struct {
	hash  string
	plain string
}

func NewSharedPassword(hash, plain string) *SharedPassword {
	return &SharedPassword{hash: hash, plain: plain}
}

// Verify reports whether candidate matches the configured password.
func (p *SharedPassword) Verify(candidate string) bool {
	if p.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(candidate)) == nil
	}
	if p.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(p.plain), []byte(candidate)) == 1
}

// HashPassword produces a bcrypt hash suitable for APP_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
