// Lamont.ai | 2026
// evaluator.go

package onboarding

import (
	"github.com/lamont-ai/lamont/internal/settings"
)

// Step identifies the next incomplete onboarding step.
type Step string

const (
	StepWebsiteURL          Step = "website-url"
	StepBusinessDescription Step = "business-description"
	StepCompetitors         Step = "competitors"
	StepSitemap             Step = "sitemap"
	StepGoogleSearchConsole Step = "google-search-console"
	StepTargetAudience      Step = "target-audience"
	StepDashboard           Step = "dashboard"
)

// emptyListJSON is the serialization of a competitor list with no entries;
// it counts as "not done" even though the column is set.
const emptyListJSON = "[]"

// NextStep walks the onboarding checklist in order and returns the first
// step whose field is not complete; the first failing check wins.
// Completeness is always recomputed from the current settings row, never
// cached.
//
// The missing-vs-empty rules differ per field and are load-bearing:
// website_url and business_description must be non-empty; competitors must
// be set to a non-empty list; sitemap_url only has to be set at all (the
// empty string is a valid "no sitemap" answer); has_google_search_console
// and target_languages only have to be set.
func NextStep(s *settings.Settings) Step {
	switch {
	case s.WebsiteURL == "":
		return StepWebsiteURL
	case s.BusinessDescription == "":
		return StepBusinessDescription
	case s.Competitors == "" || s.Competitors == emptyListJSON:
		return StepCompetitors
	case s.SitemapURL == nil:
		return StepSitemap
	case s.HasGoogleSearchConsole == nil:
		return StepGoogleSearchConsole
	case s.TargetLanguages == nil:
		return StepTargetAudience
	default:
		return StepDashboard
	}
}

// Complete reports whether every onboarding step is done.
func Complete(s *settings.Settings) bool {
	return NextStep(s) == StepDashboard
}

// Status is the per-field completeness breakdown shown by the status
// endpoint.
type Status struct {
	WebsiteURL          bool `json:"website_url"`
	BusinessDescription bool `json:"business_description"`
	Competitors         bool `json:"competitors"`
	Sitemap             bool `json:"sitemap"`
	GoogleSearchConsole bool `json:"google_search_console"`
	TargetLanguages     bool `json:"target_languages"`
}

func StatusOf(s *settings.Settings) Status {
	return Status{
		WebsiteURL:          s.WebsiteURL != "",
		BusinessDescription: s.BusinessDescription != "",
		Competitors:         s.Competitors != "" && s.Competitors != emptyListJSON,
		Sitemap:             s.SitemapURL != nil,
		GoogleSearchConsole: s.HasGoogleSearchConsole != nil,
		TargetLanguages:     s.TargetLanguages != nil,
	}
}

// RedirectPath maps a step to the frontend route the client should load.
func RedirectPath(step Step) string {
	if step == StepDashboard {
		return "/dashboard"
	}
	return "/onboarding/" + string(step)
}
