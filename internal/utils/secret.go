package utils

import "golang.org/x/crypto/bcrypt"

// HashSecret returns the bcrypt hash of an operator secret. Used by
// deployment tooling to produce the ADMIN_SECRET_HASH and
// MENU_SECRET_HASH environment values.
func HashSecret(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifySecret safely compares a bcrypt hash against a presented secret.
func VerifySecret(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
