package services

import (
	"testing"
	"time"

	"server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(expiryMinutes int) *TokenService {
	return NewTokenService(config.Config{
		AuthSecretKey:          "test-secret-key-not-for-production",
		AuthTokenExpiryMinutes: expiryMinutes,
	})
}

func TestTokenService_GenerateAndVerify(t *testing.T) {
	service := testTokenService(30)

	token, err := service.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestTokenService_VerifyRejectsBadTokens(t *testing.T) {
	service := testTokenService(30)

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "garbage token",
			token: func() string { return "not.a.token" },
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewTokenService(config.Config{
					AuthSecretKey:          "a-different-secret",
					AuthTokenExpiryMinutes: 30,
				})
				token, err := other.Generate("user-123")
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "expired token",
			token: func() string {
				expired := testTokenService(-1)
				token, err := expired.Generate("user-123")
				require.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token())
			assert.Error(t, err)
		})
	}
}

func TestTokenService_ExpirySetFromConfig(t *testing.T) {
	service := testTokenService(45)
	assert.Equal(t, 45*time.Minute, service.expiry)
}
