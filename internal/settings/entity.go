// Lamont.ai | 2026
// entity.go

package settings

import (
	"time"
)

// Settings is the single per-user profile row driving onboarding. Nullable
// columns matter: for sitemap_url, has_google_search_console and
// target_languages the onboarding evaluator distinguishes "never set" (NULL)
// from "set to an empty value", so those stay pointers. competitors and
// target_languages hold a JSON-serialized list; a stored "[]" for
// competitors still counts as unset.
type Settings struct {
	UserID                 string    `db:"user_id"`
	WebsiteURL             string    `db:"website_url"`
	BusinessDescription    string    `db:"business_description"`
	Competitors            string    `db:"competitors"`
	SitemapURL             *string   `db:"sitemap_url"`
	HasGoogleSearchConsole *bool     `db:"has_google_search_console"`
	TargetLanguages        *string   `db:"target_languages"`
	Theme                  string    `db:"theme"`
	Language               string    `db:"language"`
	Notifications          bool      `db:"notifications"`
	AudienceSize           string    `db:"audience_size"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}
