// Lamont.ai | 2026
// dto.go

package settings

import (
	"encoding/json"
	"time"
)

type WebsiteURLRequest struct {
	WebsiteURL string `json:"website_url" validate:"required,url,max=2048"`
}

type BusinessDescriptionRequest struct {
	BusinessDescription string `json:"business_description" validate:"required,min=1,max=5000"`
}

// CompetitorsRequest accepts an empty list; the onboarding evaluator still
// treats a stored "[]" as not done.
type CompetitorsRequest struct {
	Competitors []string `json:"competitors" validate:"dive,min=1,max=255"`
}

// SitemapURLRequest allows the empty string: submitting "no sitemap" is a
// deliberate answer and marks the step complete.
type SitemapURLRequest struct {
	SitemapURL string `json:"sitemap_url" validate:"omitempty,url,max=2048"`
}

type GoogleSearchConsoleRequest struct {
	HasGoogleSearchConsole *bool `json:"has_google_search_console" validate:"required"`
}

type TargetLanguagesRequest struct {
	TargetLanguages []string `json:"target_languages" validate:"required,min=1,dive,min=2,max=16"`
}

type PreferencesRequest struct {
	Theme         string `json:"theme"         validate:"omitempty,oneof=light dark system"`
	Language      string `json:"language"      validate:"omitempty,min=2,max=16"`
	Notifications *bool  `json:"notifications" validate:"omitempty"`
	AudienceSize  string `json:"audience_size" validate:"omitempty,oneof=small medium large"`
}

type SettingsResponse struct {
	WebsiteURL             string    `json:"website_url"`
	BusinessDescription    string    `json:"business_description"`
	Competitors            []string  `json:"competitors"`
	SitemapURL             *string   `json:"sitemap_url"`
	HasGoogleSearchConsole *bool     `json:"has_google_search_console"`
	TargetLanguages        []string  `json:"target_languages"`
	Theme                  string    `json:"theme"`
	Language               string    `json:"language"`
	Notifications          bool      `json:"notifications"`
	AudienceSize           string    `json:"audience_size"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func ToSettingsResponse(s *Settings) SettingsResponse {
	return SettingsResponse{
		WebsiteURL:             s.WebsiteURL,
		BusinessDescription:    s.BusinessDescription,
		Competitors:            decodeList(s.Competitors),
		SitemapURL:             s.SitemapURL,
		HasGoogleSearchConsole: s.HasGoogleSearchConsole,
		TargetLanguages:        decodeListPtr(s.TargetLanguages),
		Theme:                  s.Theme,
		Language:               s.Language,
		Notifications:          s.Notifications,
		AudienceSize:           s.AudienceSize,
		UpdatedAt:              s.UpdatedAt,
	}
}

func decodeList(serialized string) []string {
	if serialized == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(serialized), &items); err != nil {
		return nil
	}
	return items
}

func decodeListPtr(serialized *string) []string {
	if serialized == nil {
		return nil
	}
	return decodeList(*serialized)
}
