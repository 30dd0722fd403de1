package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de contraseña ("admin" es la contraseña inicial).
const MinPasswordLength = 4

// HashPassword hashea con bcrypt (costo por defecto).
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara texto plano contra el hash.
func CheckPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// normalizeAnswer las respuestas de seguridad no distinguen mayúsculas ni espacios externos.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// HashAnswer hashea una respuesta de seguridad normalizada.
func HashAnswer(answer string) (string, error) {
	return HashPassword(normalizeAnswer(answer))
}

// CheckAnswer compara una respuesta contra su hash.
func CheckAnswer(hash, answer string) bool {
	return CheckPassword(hash, normalizeAnswer(answer))
}
