package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")

	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.NoError(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.Error(t, VerifyPassword(hash, "wrong password"))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("same input")
	assert.NoError(t, err)
	second, err := HashPassword("same input")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
