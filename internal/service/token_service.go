package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ligasur/arena-console/internal/models"
	"github.com/ligasur/arena-console/pkg/config"
	appErrors "github.com/ligasur/arena-console/pkg/errors"
)

// TokenService validates platform-issued access tokens. The console shares
// the platform's signing secret and forwards the raw token upstream; it
// never mints tokens of its own.
type TokenService struct {
	secret []byte
}

// NewTokenService constructs a TokenService.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{secret: []byte(cfg.Secret)}
}

// Validate parses and verifies an access token, returning its claims.
func (s *TokenService) Validate(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}
