// Lamont.ai | 2026
// handler.go

package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lamont-ai/lamont/internal/core"
	"github.com/lamont-ai/lamont/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes wires the per-field onboarding endpoints. Each field is an
// independent upsert onto the user's single settings row, so steps can be
// submitted in any order and repeated idempotently.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/settings", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.GetSettings)

		r.Get("/website-url", h.GetWebsiteURL)
		r.Post("/website-url", h.SetWebsiteURL)

		r.Get("/business-description", h.GetBusinessDescription)
		r.Post("/business-description", h.SetBusinessDescription)

		r.Get("/competitors", h.GetCompetitors)
		r.Post("/competitors", h.SetCompetitors)

		r.Get("/sitemap-url", h.GetSitemapURL)
		r.Post("/sitemap-url", h.SetSitemapURL)

		r.Get("/google-search-console", h.GetGoogleSearchConsole)
		r.Post("/google-search-console", h.SetGoogleSearchConsole)

		r.Get("/target-languages", h.GetTargetLanguages)
		r.Post("/target-languages", h.SetTargetLanguages)

		r.Put("/preferences", h.SetPreferences)
	})
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stored, err := h.service.Get(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToSettingsResponse(stored))
}

func (h *Handler) GetWebsiteURL(w http.ResponseWriter, r *http.Request) {
	h.getField(w, r, func(s *Settings) any {
		return map[string]any{"website_url": s.WebsiteURL}
	})
}

func (h *Handler) SetWebsiteURL(w http.ResponseWriter, r *http.Request) {
	var req WebsiteURLRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.SetWebsiteURL(r.Context(), userID, req.WebsiteURL); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{"website_url": req.WebsiteURL})
}

func (h *Handler) GetBusinessDescription(w http.ResponseWriter, r *http.Request) {
	h.getField(w, r, func(s *Settings) any {
		return map[string]any{"business_description": s.BusinessDescription}
	})
}

func (h *Handler) SetBusinessDescription(w http.ResponseWriter, r *http.Request) {
	var req BusinessDescriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	err := h.service.SetBusinessDescription(
		r.Context(),
		userID,
		req.BusinessDescription,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{
		"business_description": req.BusinessDescription,
	})
}

func (h *Handler) GetCompetitors(w http.ResponseWriter, r *http.Request) {
	h.getField(w, r, func(s *Settings) any {
		return map[string]any{"competitors": decodeList(s.Competitors)}
	})
}

func (h *Handler) SetCompetitors(w http.ResponseWriter, r *http.Request) {
	var req CompetitorsRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.SetCompetitors(r.Context(), userID, req.Competitors); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{"competitors": req.Competitors})
}

func (h *Handler) GetSitemapURL(w http.ResponseWriter, r *http.Request) {
	h.getField(w, r, func(s *Settings) any {
		return map[string]any{"sitemap_url": s.SitemapURL}
	})
}

func (h *Handler) SetSitemapURL(w http.ResponseWriter, r *http.Request) {
	var req SitemapURLRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.SetSitemapURL(r.Context(), userID, req.SitemapURL); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{"sitemap_url": req.SitemapURL})
}

func (h *Handler) GetGoogleSearchConsole(w http.ResponseWriter, r *http.Request) {
	h.getField(w, r, func(s *Settings) any {
		return map[string]any{
			"has_google_search_console": s.HasGoogleSearchConsole,
		}
	})
}

func (h *Handler) SetGoogleSearchConsole(w http.ResponseWriter, r *http.Request) {
	var req GoogleSearchConsoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	err := h.service.SetGoogleSearchConsole(
		r.Context(),
		userID,
		*req.HasGoogleSearchConsole,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{
		"has_google_search_console": *req.HasGoogleSearchConsole,
	})
}

func (h *Handler) GetTargetLanguages(w http.ResponseWriter, r *http.Request) {
	h.getField(w, r, func(s *Settings) any {
		return map[string]any{
			"target_languages": decodeListPtr(s.TargetLanguages),
		}
	})
}

func (h *Handler) SetTargetLanguages(w http.ResponseWriter, r *http.Request) {
	var req TargetLanguagesRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	err := h.service.SetTargetLanguages(
		r.Context(),
		userID,
		req.TargetLanguages,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]any{"target_languages": req.TargetLanguages})
}

func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var req PreferencesRequest
	if !h.decode(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())

	current, err := h.service.Get(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	prefs := Preferences{
		Theme:         current.Theme,
		Language:      current.Language,
		Notifications: current.Notifications,
		AudienceSize:  current.AudienceSize,
	}

	if req.Theme != "" {
		prefs.Theme = req.Theme
	}
	if req.Language != "" {
		prefs.Language = req.Language
	}
	if req.Notifications != nil {
		prefs.Notifications = *req.Notifications
	}
	if req.AudienceSize != "" {
		prefs.AudienceSize = req.AudienceSize
	}

	if err := h.service.SetPreferences(r.Context(), userID, prefs); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) getField(
	w http.ResponseWriter,
	r *http.Request,
	project func(*Settings) any,
) {
	userID := middleware.GetUserID(r.Context())

	stored, err := h.service.Get(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, project(stored))
}

func (h *Handler) decode(
	w http.ResponseWriter,
	r *http.Request,
	req any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}
