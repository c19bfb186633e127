// Lamont.ai | 2026
// portable.go

package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lamont-ai/lamont/internal/config"
	"github.com/lamont-ai/lamont/internal/core"
)

// portableService is the edge-compatible backend. It needs nothing beyond
// HMAC-SHA256 over an in-memory secret: no key files, no native crypto.
type portableService struct {
	secret []byte
	config config.AuthConfig
}

type portableClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func newPortableService(cfg config.AuthConfig) *portableService {
	return &portableService{
		secret: []byte(cfg.TokenSecret),
		config: cfg,
	}
}

func (s *portableService) Issue(claims Claims) (string, error) {
	now := time.Now()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, portableClaims{
		Email: claims.Email,
		Role:  claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
		},
	})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (s *portableService) Verify(tokenString string) (*Claims, error) {
	var claims portableClaims

	tok, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithAudience(s.config.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	return &Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
