// Lamont.ai | 2026
// handler_test.go

package settings

import (
	"bytes"
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
	"github.com/lamont-ai/lamont/internal/token"
)

type memRepository struct {
	rows map[string]*Settings
}

func newMemRepository() *memRepository {
	return &memRepository{rows: make(map[string]*Settings)}
}

func (m *memRepository) row(userID string) *Settings {
	if s, ok := m.rows[userID]; ok {
		return s
	}
	s := &Settings{UserID: userID}
	m.rows[userID] = s
	return s
}

func (m *memRepository) GetByUserID(
	_ context.Context,
	userID string,
) (*Settings, error) {
	s, ok := m.rows[userID]
	if !ok {
		return nil, fmt.Errorf("get settings: %w", core.ErrNotFound)
	}
	copied := *s
	return &copied, nil
}

func (m *memRepository) UpsertWebsiteURL(
	_ context.Context,
	userID, value string,
) error {
	m.row(userID).WebsiteURL = value
	return nil
}

func (m *memRepository) UpsertBusinessDescription(
	_ context.Context,
	userID, value string,
) error {
	m.row(userID).BusinessDescription = value
	return nil
}

func (m *memRepository) UpsertCompetitors(
	_ context.Context,
	userID, serialized string,
) error {
	m.row(userID).Competitors = serialized
	return nil
}

func (m *memRepository) UpsertSitemapURL(
	_ context.Context,
	userID, value string,
) error {
	m.row(userID).SitemapURL = &value
	return nil
}

func (m *memRepository) UpsertGoogleSearchConsole(
	_ context.Context,
	userID string,
	value bool,
) error {
	m.row(userID).HasGoogleSearchConsole = &value
	return nil
}

func (m *memRepository) UpsertTargetLanguages(
	_ context.Context,
	userID, serialized string,
) error {
	m.row(userID).TargetLanguages = &serialized
	return nil
}

func (m *memRepository) UpsertPreferences(
	_ context.Context,
	userID string,
	prefs Preferences,
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

func newTestRouter(t *testing.T) (*chi.Mux, *memRepository) {
	t.Helper()

	repo := newMemRepository()
	handler := NewHandler(NewService(repo))

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		handler.RegisterRoutes(r, middleware.Authenticator(staticResolver{}))
	})
	return router, repo
}

func do(
	t *testing.T,
	router http.Handler,
	method, path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetSettingsEmptyRow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := do(t, router, "GET", "/v1/settings/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    SettingsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Empty(t, body.Data.WebsiteURL)
	require.Nil(t, body.Data.SitemapURL)
	require.Nil(t, body.Data.HasGoogleSearchConsole)
}

func TestSetWebsiteURL(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := do(t, router, "POST", "/v1/settings/website-url", map[string]string{
		"website_url": "https://example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "https://example.com", repo.rows["user-123"].WebsiteURL)

	rec = do(t, router, "POST", "/v1/settings/website-url", map[string]string{
		"website_url": "not a url",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// Repeating a step is an upsert onto the same row, never a second row.
func TestSetWebsiteURLIdempotent(t *testing.T) {
	router, repo := newTestRouter(t)

	for i := 0; i < 2; i++ {
		rec := do(t, router, "POST", "/v1/settings/website-url", map[string]string{
			"website_url": "https://example.com",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	require.Len(t, repo.rows, 1)
	require.Equal(t, "https://example.com", repo.rows["user-123"].WebsiteURL)
}

// Submitting the empty string is a valid "no sitemap" answer and must store
// a non-NULL value.
func TestSetSitemapURLEmptyAnswer(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := do(t, router, "POST", "/v1/settings/sitemap-url", map[string]string{
		"sitemap_url": "",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored := repo.rows["user-123"].SitemapURL
	require.NotNil(t, stored)
	require.Empty(t, *stored)
}

func TestSetGoogleSearchConsole(t *testing.T) {
	router, repo := newTestRouter(t)

	// the field itself is required, false is a valid answer
	rec := do(t, router, "POST", "/v1/settings/google-search-console", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, "POST", "/v1/settings/google-search-console", map[string]bool{
		"has_google_search_console": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored := repo.rows["user-123"].HasGoogleSearchConsole
	require.NotNil(t, stored)
	require.False(t, *stored)
}

func TestSetCompetitorsAllowsEmptyList(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := do(t, router, "POST", "/v1/settings/competitors", map[string]any{
		"competitors": []string{},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", repo.rows["user-123"].Competitors)

	rec = do(t, router, "POST", "/v1/settings/competitors", map[string]any{
		"competitors": []string{"acme.com", "globex.com"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `["acme.com","globex.com"]`, repo.rows["user-123"].Competitors)
}

func TestSetTargetLanguagesRequiresEntries(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := do(t, router, "POST", "/v1/settings/target-languages", map[string]any{
		"target_languages": []string{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, "POST", "/v1/settings/target-languages", map[string]any{
		"target_languages": []string{"en", "de"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored := repo.rows["user-123"].TargetLanguages
	require.NotNil(t, stored)
	require.Equal(t, `["en","de"]`, *stored)
}

func TestSetPreferencesMergesPartialUpdate(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := do(t, router, "PUT", "/v1/settings/preferences", map[string]any{
		"theme":    "dark",
		"language": "en",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, "PUT", "/v1/settings/preferences", map[string]any{
		"audience_size": "medium",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	row := repo.rows["user-123"]
	require.Equal(t, "dark", row.Theme)
	require.Equal(t, "en", row.Language)
	require.Equal(t, "medium", row.AudienceSize)
}

func TestSettingsRequireAuthentication(t *testing.T) {
	repo := newMemRepository()
	handler := NewHandler(NewService(repo))

	denyAll := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			core.JSONError(w, core.UnauthorizedError(""))
		})
	}

	router := chi.NewRouter()
	router.Route("/v1", func(r chi.Router) {
		handler.RegisterRoutes(r, denyAll)
	})

	rec := do(t, router, "GET", "/v1/settings/", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
