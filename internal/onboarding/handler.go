// Lamont.ai | 2026
// handler.go

package onboarding

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lamont-ai/lamont/internal/core"
	"github.com/lamont-ai/lamont/internal/middleware"
	"github.com/lamont-ai/lamont/internal/settings"
)

type Handler struct {
	settings *settings.Service
}

func NewHandler(settingsSvc *settings.Service) *Handler {
	return &Handler{settings: settingsSvc}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/onboarding", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/status", h.GetStatus)
	})
}

type StatusResponse struct {
	RedirectTo         string `json:"redirect_to"`
	OnboardingComplete bool   `json:"onboarding_complete"`
	OnboardingStatus   Status `json:"onboarding_status"`
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stored, err := h.settings.Get(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	step := NextStep(stored)

	core.OK(w, StatusResponse{
		RedirectTo:         RedirectPath(step),
		OnboardingComplete: step == StepDashboard,
		OnboardingStatus:   StatusOf(stored),
	})
}
