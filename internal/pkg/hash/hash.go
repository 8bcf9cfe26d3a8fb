// Package hash wraps bcrypt for credential hashing. The plaintext never
// leaves this package and is never logged.
package hash

import "golang.org/x/crypto/bcrypt"

// cost matches bcrypt.DefaultCost (10 salt rounds).
const cost = bcrypt.DefaultCost

// Password produces a salted one-way hash of the plaintext.
func Password(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison
// is constant-time inside bcrypt.
func Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
