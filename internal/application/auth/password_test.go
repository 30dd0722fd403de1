package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/auth"
)

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("admin")
	require.NoError(t, err)
	assert.NotEqual(t, "admin", hash)
	assert.True(t, auth.CheckPassword(hash, "admin"))
	assert.False(t, auth.CheckPassword(hash, "Admin"))
	assert.False(t, auth.CheckPassword("", "admin"))
}

func TestHashAnswer_NormalizaEspaciosYMayusculas(t *testing.T) {
	hash, err := auth.HashAnswer(" Bogotá ")
	require.NoError(t, err)
	assert.True(t, auth.CheckAnswer(hash, "BOGOTÁ"))
	assert.False(t, auth.CheckAnswer(hash, "Medellín"))
}
