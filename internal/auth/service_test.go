// Lamont.ai | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lamont-ai/lamont/internal/config"
	"github.com/lamont-ai/lamont/internal/core"
	"github.com/lamont-ai/lamont/internal/token"
)

type fakeUserProvider struct {
	byEmail map[string]*UserInfo
	nextID  int
}

func newFakeUserProvider() *fakeUserProvider {
	return &fakeUserProvider{byEmail: make(map[string]*UserInfo)}
}

func (p *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	user, ok := p.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	return user, nil
}

func (p *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	for _, user := range p.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, core.ErrNotFound
}

func (p *fakeUserProvider) Create(
	_ context.Context,
	email, passwordHash, name string,
) (*UserInfo, error) {
	normalized := strings.ToLower(email)
	if _, exists := p.byEmail[normalized]; exists {
		return nil, core.ErrDuplicateKey
	}

	p.nextID++
	user := &UserInfo{
		ID:           fmt.Sprintf("user-%d", p.nextID),
		Email:        normalized,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	p.byEmail[normalized] = user
	return user, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserProvider) {
	t.Helper()

	tokens, err := token.New(config.AuthConfig{
		TokenSecret:  "0123456789abcdef0123456789abcdef",
		TokenBackend: "portable",
		TokenTTL:     time.Hour,
		Issuer:       "lamont",
		Audience:     "lamont-api",
	})
	require.NoError(t, err)

	provider := newFakeUserProvider()
	limiter := newRegistrationLimiterAt(24*time.Hour, time.Now)

	svc := NewService(provider, tokens, limiter, config.RegistrationConfig{
		MaxPerIP:    5,
		MaxPerEmail: 3,
		Window:      24 * time.Hour,
	})

	return svc, provider
}

func registerRequest(email string) RegisterRequest {
	return RegisterRequest{
		Name:            "Alice",
		Email:           email,
		Password:        "correct horse battery",
		ConfirmPassword: "correct horse battery",
	}
}

func TestRegisterIssuesSession(t *testing.T) {
	svc, provider := newTestService(t)

	resp, err := svc.Register(
		context.Background(),
		registerRequest("Alice@Example.com"),
		"203.0.113.7",
	)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice@example.com", resp.User.Email)
	require.Equal(t, "user", resp.User.Role)
	require.NotEmpty(t, resp.User.ID)

	stored := provider.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	require.NotEqual(t, "correct horse battery", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(
		context.Background(),
		registerRequest("alice@example.com"),
		"203.0.113.7",
	)
	require.NoError(t, err)

	_, err = svc.Register(
		context.Background(),
		registerRequest("alice@example.com"),
		"203.0.113.8",
	)
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterPerIPLimit(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Register(
			context.Background(),
			registerRequest(fmt.Sprintf("user%d@example.com", i)),
			"203.0.113.7",
		)
		require.NoError(t, err)
	}

	_, err := svc.Register(
		context.Background(),
		registerRequest("user5@example.com"),
		"203.0.113.7",
	)

	var rateLimited *RateLimitError
	require.ErrorAs(t, err, &rateLimited)
	require.Greater(t, rateLimited.RetryAfter, time.Duration(0))
}

// The per-email threshold is stricter than the per-IP one: repeated attempts
// on one address trip it even when every attempt comes from a fresh IP.
func TestRegisterPerEmailLimit(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(
		context.Background(),
		registerRequest("alice@example.com"),
		"203.0.113.1",
	)
	require.NoError(t, err)

	for i := 2; i <= 3; i++ {
		_, err = svc.Register(
			context.Background(),
			registerRequest("alice@example.com"),
			fmt.Sprintf("203.0.113.%d", i),
		)
		require.ErrorIs(t, err, ErrEmailExists, "attempt %d", i)
	}

	_, err = svc.Register(
		context.Background(),
		registerRequest("Alice@Example.com"),
		"203.0.113.4",
	)

	var rateLimited *RateLimitError
	require.ErrorAs(t, err, &rateLimited)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(
		context.Background(),
		registerRequest("alice@example.com"),
		"203.0.113.7",
	)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
}

// Wrong password and unknown account must be indistinguishable.
func TestLoginUniformFailure(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(
		context.Background(),
		registerRequest("alice@example.com"),
		"203.0.113.7",
	)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "wrong password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Register(
		context.Background(),
		registerRequest("alice@example.com"),
		"203.0.113.7",
	)
	require.NoError(t, err)

	resp, err := svc.CurrentUser(context.Background(), created.User.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", resp.Email)

	_, err = svc.CurrentUser(context.Background(), "missing-id")
	require.ErrorIs(t, err, core.ErrNotFound)
}
