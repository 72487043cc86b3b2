package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunkrishnadas/expense-tracker/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	user := &models.User{ID: 12, Name: "Priya", Role: "admin"}

	token, err := GenerateToken("test-secret", user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, 12, claims.UserID)
	assert.Equal(t, "Priya", claims.Name)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", &models.User{ID: 1, Role: "user"})
	require.NoError(t, err)

	_, err = ParseToken("wrong-secret", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.token")
	assert.Error(t, err)
}
