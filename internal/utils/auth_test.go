package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLoginID(t *testing.T) {
	id := GenerateLoginID(12)
	assert.Len(t, id, 12)
	for _, r := range id {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		assert.True(t, isLower || isDigit, "unexpected character: %c", r)
	}

	// 연속 생성 시 충돌하지 않아야 합니다.
	other := GenerateLoginID(12)
	assert.NotEqual(t, id, other)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hashed, salt, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEmpty(t, salt)
	assert.NotEqual(t, "password123", hashed)

	assert.NoError(t, VerifyPassword(hashed, "password123", salt))
	assert.Error(t, VerifyPassword(hashed, "wrong-password", salt))
	assert.Error(t, VerifyPassword(hashed, "password123", "wrong-salt"))
}

func TestHashPassword_DifferentSaltPerCall(t *testing.T) {
	hashed1, salt1, err := HashPassword("password123")
	require.NoError(t, err)
	hashed2, salt2, err := HashPassword("password123")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hashed1, hashed2)
}
