// Lamont.ai | 2026
// service.go

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lamont-ai/lamont/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's settings, or an empty Settings value when no row
// exists yet. A user with no row is simply "nothing set".
func (s *Service) Get(ctx context.Context, userID string) (*Settings, error) {
	stored, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return &Settings{UserID: userID}, nil
		}
		return nil, err
	}

	return stored, nil
}

func (s *Service) SetWebsiteURL(
	ctx context.Context,
	userID, websiteURL string,
) error {
	return s.repo.UpsertWebsiteURL(ctx, userID, websiteURL)
}

func (s *Service) SetBusinessDescription(
	ctx context.Context,
	userID, description string,
) error {
	return s.repo.UpsertBusinessDescription(ctx, userID, description)
}

func (s *Service) SetCompetitors(
	ctx context.Context,
	userID string,
	competitors []string,
) error {
	serialized, err := encodeList(competitors)
	if err != nil {
		return err
	}
	return s.repo.UpsertCompetitors(ctx, userID, serialized)
}

func (s *Service) SetSitemapURL(
	ctx context.Context,
	userID, sitemapURL string,
) error {
	return s.repo.UpsertSitemapURL(ctx, userID, sitemapURL)
}

func (s *Service) SetGoogleSearchConsole(
	ctx context.Context,
	userID string,
	hasConsole bool,
) error {
	return s.repo.UpsertGoogleSearchConsole(ctx, userID, hasConsole)
}

func (s *Service) SetTargetLanguages(
	ctx context.Context,
	userID string,
	languages []string,
) error {
	serialized, err := encodeList(languages)
	if err != nil {
		return err
	}
	return s.repo.UpsertTargetLanguages(ctx, userID, serialized)
}

func (s *Service) SetPreferences(
	ctx context.Context,
	userID string,
	prefs Preferences,
) error {
	return s.repo.UpsertPreferences(ctx, userID, prefs)
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(encoded), nil
}
