// internal/app/features/login/password.go
package login

import "golang.org/x/crypto/bcrypt"

// verifyPassword checks a candidate password against the configured
// bcrypt hash.
func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword produces a bcrypt hash suitable for the
// console_password_hash config value. Exposed for provisioning tooling
// and tests.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
