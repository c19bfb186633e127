// Lamont.ai | 2026
// jwx.go

package token

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/lamont-ai/lamont/internal/config"
	"github.com/lamont-ai/lamont/internal/core"
)

type jwxService struct {
	secret []byte
	config config.AuthConfig
}

func newJWXService(cfg config.AuthConfig) *jwxService {
	return &jwxService{
		secret: []byte(cfg.TokenSecret),
		config: cfg,
	}
}

func (s *jwxService) Issue(claims Claims) (string, error) {
	now := time.Now()

	tok, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(s.config.Issuer).
		Audience([]string{s.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(now).
		Expiration(now.Add(s.config.TokenTTL)).
		Claim("email", claims.Email).
		Claim("role", claims.Role).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), s.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (s *jwxService) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), s.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithAudience(s.config.Audience),
	)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := tok.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var email string
	if err := tok.Get("email", &email); err != nil {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var role string
	if err := tok.Get("role", &role); err != nil {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	return &Claims{
		UserID: subject,
		Email:  email,
		Role:   role,
	}, nil
}
