// Lamont.ai | 2026
// service.go

package token

import (
	"fmt"

	"github.com/lamont-ai/lamont/internal/config"
)

// Claims is the payload carried by a session token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Service mints and validates signed session tokens. Two backends exist with
// identical externally observable semantics: the jwx backend used on regular
// deployments and the portable backend for constrained sandboxes. Tokens
// issued by one backend verify under the other; both sign HS256 over the same
// process-wide secret.
//
// Verify returns core.ErrTokenInvalid for every failure - malformed input,
// bad signature, expired token - so callers cannot distinguish the reason.
type Service interface {
	Issue(claims Claims) (string, error)
	Verify(tokenString string) (*Claims, error)
}

// New selects a backend by cfg.TokenBackend.
func New(cfg config.AuthConfig) (Service, error) {
	switch cfg.TokenBackend {
	case "jwx":
		return newJWXService(cfg), nil
	case "portable":
		return newPortableService(cfg), nil
	default:
		return nil, fmt.Errorf("unknown token backend %q", cfg.TokenBackend)
	}
}
