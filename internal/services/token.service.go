package services

import (
	"fmt"
	"time"

	"server/config"
	"server/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the bearer tokens used by the API. Tokens
// carry the user ID as subject plus issued-at/expiry claims, signed HS256.
type TokenService struct {
	secret []byte
	expiry time.Duration
	log    logger.Logger
}

func NewTokenService(config config.Config) *TokenService {
	return &TokenService{
		secret: []byte(config.AuthSecretKey),
		expiry: time.Duration(config.AuthTokenExpiryMinutes) * time.Minute,
		log:    logger.New("TokenService"),
	}
}

func (s *TokenService) Generate(userID string) (string, error) {
	log := s.log.Function("Generate")

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err, "userID", userID)
	}

	return token, nil
}

// Verify validates the token and returns its subject (the user ID).
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return claims.Subject, nil
}
