// Package apikey verifies shared device API keys against a stored bcrypt hash.
// Biometric terminals authenticate with a single key per deployment, so the
// hash lives in configuration rather than the database.
package apikey

import "golang.org/x/crypto/bcrypt"

// Verify reports whether the presented key matches the configured hash.
func Verify(hash string, key string) bool {
	if hash == "" || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

// Hash generates a bcrypt hash for a device API key. Used by provisioning
// tooling, not the request path.
func Hash(key string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
