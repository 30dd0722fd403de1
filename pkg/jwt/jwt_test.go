package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "caja1", "employee", "pos-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	s, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, "caja1", s.Username)
	assert.Equal(t, "employee", s.Role)
	assert.NotEmpty(t, s.TokenID, "cada token lleva un jti único")
}

func TestGenerate_JTIDistintoPorToken(t *testing.T) {
	a, err := pkgjwt.Generate(testSecret, 1, "a", "administrator", "pos-test", 60)
	require.NoError(t, err)
	b, err := pkgjwt.Generate(testSecret, 1, "a", "administrator", "pos-test", 60)
	require.NoError(t, err)

	sa, err := pkgjwt.Parse(testSecret, a)
	require.NoError(t, err)
	sb, err := pkgjwt.Parse(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, sa.TokenID, sb.TokenID)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "a", "employee", "pos-test", 60)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "a", "employee", "pos-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 1, "a", "employee", "pos-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestParse_SinUserID(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 0, "", "", "pos-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}
