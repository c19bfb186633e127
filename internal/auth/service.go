// Lamont.ai | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lamont-ai/lamont/internal/config"
	"github.com/lamont-ai/lamont/internal/core"
	"github.com/lamont-ai/lamont/internal/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
}

type Service struct {
	userProvider UserProvider
	tokens       token.Service
	limiter      *RegistrationLimiter
	limits       config.RegistrationConfig
}

func NewService(
	userProvider UserProvider,
	tokens token.Service,
	limiter *RegistrationLimiter,
	limits config.RegistrationConfig,
) *Service {
	return &Service{
		userProvider: userProvider,
		tokens:       tokens,
		limiter:      limiter,
		limits:       limits,
	}
}

// Register creates an account and mints its first session token. The token
// is only issued after the user row committed, so a failed creation never
// leaves a live session behind.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	ipAddress string,
) (*AuthResponse, error) {
	// Two thresholds on purpose: the looser one per source IP, the stricter
	// one per target email. See DESIGN.md before touching either.
	if ok, retryAfter := s.limiter.Allow(
		"ip:"+ipAddress,
		s.limits.MaxPerIP,
	); !ok {
		return nil, &RateLimitError{RetryAfter: retryAfter}
	}

	if ok, retryAfter := s.limiter.Allow(
		"email:"+strings.ToLower(req.Email),
		s.limits.MaxPerEmail,
	); !ok {
		return nil, &RateLimitError{RetryAfter: retryAfter}
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createAuthResponse(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// burn a hash comparison so missing accounts are not
			// distinguishable by response time
			core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.createAuthResponse(user)
}

// CurrentUser is the live second check on top of token validity: it
// re-fetches the user row so a deleted account stops resolving even while
// its token is still cryptographically valid.
func (s *Service) CurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	signed, err := s.tokens.Issue(token.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResponse{
		User: UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
		Token: signed,
	}, nil
}
