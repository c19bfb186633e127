// Lamont.ai | 2026
// cookie.go

package session

import (
	"net/http"
	"time"
)

// CookieWriter sets and clears the session cookie. Tokens are stateless, so
// logout is nothing more than clearing the client-side cookie.
type CookieWriter struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

func NewCookieWriter(name string, maxAge time.Duration, secure bool) *CookieWriter {
	if name == "" {
		name = "token"
	}
	return &CookieWriter{
		Name:   name,
		MaxAge: maxAge,
		Secure: secure,
	}
}

func (c *CookieWriter) Write(w http.ResponseWriter, tokenString string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c *CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
