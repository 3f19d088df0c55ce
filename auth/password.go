package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a bcrypt digest of the password. bcrypt embeds a fresh
// random salt and the cost in the digest itself, so verification of old
// digests keeps working after a cost increase.
func HashPassword(password string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext password matches the digest.
// The comparison inside bcrypt is constant-time. A malformed digest yields
// false rather than an error: a corrupt stored hash must read as "wrong
// password", never as a panic or a pass.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
