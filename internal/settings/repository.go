// Lamont.ai | 2026
// repository.go

package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lamont-ai/lamont/internal/core"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Settings, error)
	UpsertWebsiteURL(ctx context.Context, userID, value string) error
	UpsertBusinessDescription(ctx context.Context, userID, value string) error
	UpsertCompetitors(ctx context.Context, userID, serialized string) error
	UpsertSitemapURL(ctx context.Context, userID, value string) error
	UpsertGoogleSearchConsole(ctx context.Context, userID string, value bool) error
	UpsertTargetLanguages(ctx context.Context, userID, serialized string) error
	UpsertPreferences(ctx context.Context, userID string, prefs Preferences) error
}

type Preferences struct {
	Theme         string
	Language      string
	Notifications bool
	AudienceSize  string
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Settings, error) {
	query := `
		SELECT user_id, website_url, business_description, competitors,
		       sitemap_url, has_google_search_console, target_languages,
		       theme, language, notifications, audience_size,
		       created_at, updated_at
		FROM settings
		WHERE user_id = $1`

	var s Settings
	err := r.db.GetContext(ctx, &s, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get settings: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}

// upsertColumn writes one column with insert-or-update semantics so two
// onboarding steps submitted concurrently for the same user never race a
// read-then-write: last writer wins per field. The settings row is created
// lazily on the first write. column is always one of the fixed names below,
// never client input.
func (r *repository) upsertColumn(
	ctx context.Context,
	userID, column string,
	value any,
) error {
	query := fmt.Sprintf(`
		INSERT INTO settings (user_id, %[1]s)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = NOW()`, column)

	if _, err := r.db.ExecContext(ctx, query, userID, value); err != nil {
		return fmt.Errorf("upsert settings.%s: %w", column, err)
	}

	return nil
}

func (r *repository) UpsertWebsiteURL(
	ctx context.Context,
	userID, value string,
) error {
	return r.upsertColumn(ctx, userID, "website_url", value)
}

func (r *repository) UpsertBusinessDescription(
	ctx context.Context,
	userID, value string,
) error {
	return r.upsertColumn(ctx, userID, "business_description", value)
}

func (r *repository) UpsertCompetitors(
	ctx context.Context,
	userID, serialized string,
) error {
	return r.upsertColumn(ctx, userID, "competitors", serialized)
}

func (r *repository) UpsertSitemapURL(
	ctx context.Context,
	userID, value string,
) error {
	return r.upsertColumn(ctx, userID, "sitemap_url", value)
}

func (r *repository) UpsertGoogleSearchConsole(
	ctx context.Context,
	userID string,
	value bool,
) error {
	return r.upsertColumn(ctx, userID, "has_google_search_console", value)
}

func (r *repository) UpsertTargetLanguages(
	ctx context.Context,
	userID, serialized string,
) error {
	return r.upsertColumn(ctx, userID, "target_languages", serialized)
}

func (r *repository) UpsertPreferences(
	ctx context.Context,
	userID string,
	prefs Preferences,
) error {
	query := `
		INSERT INTO settings (
			user_id, theme, language, notifications, audience_size
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET
			theme = EXCLUDED.theme,
			language = EXCLUDED.language,
			notifications = EXCLUDED.notifications,
			audience_size = EXCLUDED.audience_size,
			updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query,
		userID,
		prefs.Theme,
		prefs.Language,
		prefs.Notifications,
		prefs.AudienceSize,
	)
	if err != nil {
		return fmt.Errorf("upsert settings preferences: %w", err)
	}

	return nil
}
