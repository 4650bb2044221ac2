package auth

import "golang.org/x/crypto/bcrypt"

// hashCost matches the cost factor the rest of the deployment was
// provisioned with; changing it invalidates no existing hashes but
// makes new ones slower to verify.
const hashCost = 10

// HashPassword returns a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
