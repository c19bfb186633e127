// Lamont.ai | 2026
// handler_test.go

package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/lamont-ai/lamont/internal/config"
	"github.com/lamont-ai/lamont/internal/middleware"
	"github.com/lamont-ai/lamont/internal/session"
	"github.com/lamont-ai/lamont/internal/token"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	authCfg := config.AuthConfig{
		TokenSecret:  "0123456789abcdef0123456789abcdef",
		TokenBackend: "portable",
		TokenTTL:     time.Hour,
		Issuer:       "lamont",
		Audience:     "lamont-api",
		CookieName:   "token",
	}

	tokens, err := token.New(authCfg)
	require.NoError(t, err)

	limiter := newRegistrationLimiterAt(24*time.Hour, time.Now)
	svc := NewService(
		newFakeUserProvider(),
		tokens,
		limiter,
		config.RegistrationConfig{
			MaxPerIP:    5,
			MaxPerEmail: 3,
			Window:      24 * time.Hour,
		},
	)

	cookies := session.NewCookieWriter("token", time.Hour, false)
	handler := NewHandler(svc, cookies)

	resolver := session.NewResolver(tokens, "token")
	authenticator := middleware.Authenticator(resolver)

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		handler.RegisterRoutes(r, authenticator)
	})
	return router
}

func postJSON(
	t *testing.T,
	router http.Handler,
	path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:51000"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(
	t *testing.T,
	rec *httptest.ResponseRecorder,
) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	return nil
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/auth/register", registerRequest("alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			User  UserResponse `json:"user"`
			Token string       `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "alice@example.com", body.Data.User.Email)
	require.NotEmpty(t, body.Data.Token)
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	req := registerRequest("alice@example.com")
	req.ConfirmPassword = "something else"

	rec := postJSON(t, router, "/v1/auth/register", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/auth/register", registerRequest("alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/v1/auth/register", registerRequest("alice@example.com"))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterRateLimited(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 5; i++ {
		email := string(rune('a'+i)) + "@example.com"
		rec := postJSON(t, router, "/v1/auth/register", registerRequest(email))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := postJSON(t, router, "/v1/auth/register", registerRequest("f@example.com"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestLoginEndpointUniformFailure(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/auth/register", registerRequest("alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := postJSON(t, router, "/v1/auth/login", LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	unknownAccount := postJSON(t, router, "/v1/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong password",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownAccount.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownAccount.Body.String())
}

func TestSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/auth/register", registerRequest("alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)

	req := httptest.NewRequest("GET", "/v1/auth/session", nil)
	req.AddCookie(cookie)
	sessionRec := httptest.NewRecorder()
	router.ServeHTTP(sessionRec, req)
	require.Equal(t, http.StatusOK, sessionRec.Code)

	anonymous := httptest.NewRequest("GET", "/v1/auth/session", nil)
	anonymousRec := httptest.NewRecorder()
	router.ServeHTTP(anonymousRec, anonymous)
	require.Equal(t, http.StatusUnauthorized, anonymousRec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/auth/logout", struct{}{})
	require.Equal(t, http.StatusNoContent, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}
