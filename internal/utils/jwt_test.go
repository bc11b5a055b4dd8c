package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	id := uuid.New()

	for _, principalType := range []string{PrincipalUser, PrincipalAdmin} {
		t.Run(principalType, func(t *testing.T) {
			token, err := GenerateToken(secret, id, principalType, time.Hour)
			assert.NoError(t, err)
			assert.NotEmpty(t, token)

			parsedID, parsedType, err := ParseToken(secret, token)
			assert.NoError(t, err)
			assert.Equal(t, id, parsedID)
			assert.Equal(t, principalType, parsedType)
		})
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", uuid.New(), PrincipalUser, time.Hour)
	assert.NoError(t, err)

	_, _, err = ParseToken("wrong-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), PrincipalUser, -time.Minute)
	assert.NoError(t, err)

	_, _, err = ParseToken("secret", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, _, err := ParseToken("secret", "not-a-token")
	assert.Error(t, err)
}
