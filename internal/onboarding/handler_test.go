// Lamont.ai | 2026
// handler_test.go

package onboarding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/lamont-ai/lamont/internal/core"
	"github.com/lamont-ai/lamont/internal/middleware"
	"github.com/lamont-ai/lamont/internal/settings"
	"github.com/lamont-ai/lamont/internal/token"
)

type memSettingsRepo struct {
	rows map[string]*settings.Settings
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{rows: make(map[string]*settings.Settings)}
}

func (m *memSettingsRepo) row(userID string) *settings.Settings {
	if s, ok := m.rows[userID]; ok {
		return s
	}
	s := &settings.Settings{UserID: userID}
	m.rows[userID] = s
	return s
}

func (m *memSettingsRepo) GetByUserID(
	_ context.Context,
	userID string,
) (*settings.Settings, error) {
	s, ok := m.rows[userID]
	if !ok {
		return nil, fmt.Errorf("get settings: %w", core.ErrNotFound)
	}
	copied := *s
	return &copied, nil
}

func (m *memSettingsRepo) UpsertWebsiteURL(
	_ context.Context,
	userID, value string,
) error {
	m.row(userID).WebsiteURL = value
	return nil
}

func (m *memSettingsRepo) UpsertBusinessDescription(
	_ context.Context,
	userID, value string,
) error {
	m.row(userID).BusinessDescription = value
	return nil
}

func (m *memSettingsRepo) UpsertCompetitors(
	_ context.Context,
	userID, serialized string,
) error {
	m.row(userID).Competitors = serialized
	return nil
}

func (m *memSettingsRepo) UpsertSitemapURL(
	_ context.Context,
	userID, value string,
) error {
	m.row(userID).SitemapURL = &value
	return nil
}

func (m *memSettingsRepo) UpsertGoogleSearchConsole(
	_ context.Context,
	userID string,
	value bool,
) error {
	m.row(userID).HasGoogleSearchConsole = &value
	return nil
}

func (m *memSettingsRepo) UpsertTargetLanguages(
	_ context.Context,
	userID, serialized string,
) error {
	m.row(userID).TargetLanguages = &serialized
	return nil
}

func (m *memSettingsRepo) UpsertPreferences(
	_ context.Context,
	userID string,
	prefs settings.Preferences,
) error {
	s := m.row(userID)
	s.Theme = prefs.Theme
	s.Language = prefs.Language
	s.Notifications = prefs.Notifications
	s.AudienceSize = prefs.AudienceSize
	return nil
}

type staticResolver struct{}

func (staticResolver) Resolve(*http.Request) *token.Claims {
	return &token.Claims{UserID: "user-123", Role: "user"}
}

func getStatus(
	t *testing.T,
	router http.Handler,
) StatusResponse {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/onboarding/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    StatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	return body.Data
}

// Walks a fresh user through the checklist and watches the status endpoint
// advance one step at a time.
func TestStatusEndpointProgression(t *testing.T) {
	repo := newMemSettingsRepo()
	svc := settings.NewService(repo)
	handler := NewHandler(svc)

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		handler.RegisterRoutes(r, middleware.Authenticator(staticResolver{}))
	})

	ctx := context.Background()
	const userID = "user-123"

	status := getStatus(t, router)
	require.Equal(t, "/onboarding/website-url", status.RedirectTo)
	require.False(t, status.OnboardingComplete)

	require.NoError(t, svc.SetWebsiteURL(ctx, userID, "https://example.com"))
	require.Equal(t, "/onboarding/business-description", getStatus(t, router).RedirectTo)

	require.NoError(t, svc.SetBusinessDescription(ctx, userID, "We sell widgets."))
	require.Equal(t, "/onboarding/competitors", getStatus(t, router).RedirectTo)

	// an empty competitor list does not advance the checklist
	require.NoError(t, svc.SetCompetitors(ctx, userID, []string{}))
	require.Equal(t, "/onboarding/competitors", getStatus(t, router).RedirectTo)

	require.NoError(t, svc.SetCompetitors(ctx, userID, []string{"acme.com"}))
	require.Equal(t, "/onboarding/sitemap", getStatus(t, router).RedirectTo)

	// "no sitemap" is a completed answer
	require.NoError(t, svc.SetSitemapURL(ctx, userID, ""))
	require.Equal(t, "/onboarding/google-search-console", getStatus(t, router).RedirectTo)

	require.NoError(t, svc.SetGoogleSearchConsole(ctx, userID, false))
	require.Equal(t, "/onboarding/target-audience", getStatus(t, router).RedirectTo)

	require.NoError(t, svc.SetTargetLanguages(ctx, userID, []string{"en"}))

	status = getStatus(t, router)
	require.Equal(t, "/dashboard", status.RedirectTo)
	require.True(t, status.OnboardingComplete)
	require.True(t, status.OnboardingStatus.Competitors)
	require.True(t, status.OnboardingStatus.Sitemap)
	require.True(t, status.OnboardingStatus.GoogleSearchConsole)
}

func TestStatusEndpointRequiresAuthentication(t *testing.T) {
	handler := NewHandler(settings.NewService(newMemSettingsRepo()))

	denyAll := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			core.JSONError(w, core.UnauthorizedError(""))
		})
	}

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		handler.RegisterRoutes(r, denyAll)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/onboarding/status", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
