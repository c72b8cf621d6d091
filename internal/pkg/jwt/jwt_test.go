package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtTestSecret = "jwt-test-secret"

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewJWTService(jwtTestSecret, "1h")
	userID := uuid.New().String()

	token, expiresAt, err := svc.GenerateAccessToken(userID, "user@staffhub.id", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	gotID, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	svc := NewJWTService(jwtTestSecret, "1h")

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("some-other-secret", "1h")
	token, _, err := issuer.GenerateAccessToken(uuid.New().String(), "user@staffhub.id", "admin")
	require.NoError(t, err)

	svc := NewJWTService(jwtTestSecret, "1h")
	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongTokenType(t *testing.T) {
	svc := NewJWTService(jwtTestSecret, "1h")

	claims := map[string]interface{}{
		"user_id": uuid.New().String(),
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	_, tokenString, err := svc.JWTAuth().Encode(claims)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}
