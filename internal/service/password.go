package service

import "golang.org/x/crypto/bcrypt"

// Factor de trabajo fijo para bcrypt.
const bcryptCost = 10

// HashPassword genera un hash bcrypt con sal aleatoria.
func HashPassword(plaintext string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// VerifyPassword compara un password plano contra su hash.
// Un mismatch es un false normal, nunca un error.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
