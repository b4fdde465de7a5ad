package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("use the force", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "use the force", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("use the force")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("use the dark side")))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(string(make([]byte, 80)), bcrypt.MinCost)
	assert.Error(t, err)
}
