// Lamont.ai | 2026
// resolver.go

package session

import (
	"net/http"
	"strings"

	"github.com/lamont-ai/lamont/internal/token"
)

// Resolver maps an inbound request to the authenticated user, if any.
// Transport order: the httpOnly session cookie first, then the
// Authorization bearer header for edge and API clients.
type Resolver struct {
	tokens     token.Service
	cookieName string
}

func NewResolver(tokens token.Service, cookieName string) *Resolver {
	if cookieName == "" {
		cookieName = "token"
	}
	return &Resolver{
		tokens:     tokens,
		cookieName: cookieName,
	}
}

// ResolveUserID returns the subject of a valid session token, or "" when the
// request carries no token or an invalid one. An absent session is not an
// error; the caller decides whether authentication is required.
//
// No database round-trip happens here. Endpoints that need to confirm the
// user row still exists re-fetch it as an explicit second check.
func (r *Resolver) ResolveUserID(req *http.Request) string {
	claims := r.Resolve(req)
	if claims == nil {
		return ""
	}
	return claims.UserID
}

// Resolve returns the full verified claims, or nil.
func (r *Resolver) Resolve(req *http.Request) *token.Claims {
	raw := r.ExtractToken(req)
	if raw == "" {
		return nil
	}

	claims, err := r.tokens.Verify(raw)
	if err != nil {
		return nil
	}

	return claims
}

// ExtractToken pulls the raw token off the request without verifying it.
func (r *Resolver) ExtractToken(req *http.Request) string {
	if cookie, err := req.Cookie(r.cookieName); err == nil &&
		cookie.Value != "" {
		return cookie.Value
	}

	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
