// Lamont.ai | 2026
// handler.go

package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/articles", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListArticles)
		r.Post("/", h.CreateArticle)
		r.Get("/{articleID}", h.GetArticle)
		r.Put("/{articleID}", h.UpdateArticle)
		r.Delete("/{articleID}", h.DeleteArticle)
	})
}

func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListArticlesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Status:   r.URL.Query().Get("status"),
	}

	articles, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToArticleResponseList(articles),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	article, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToArticleResponse(article))
}

func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	articleID := chi.URLParam(r, "articleID")

	article, err := h.service.Get(r.Context(), userID, articleID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "article")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToArticleResponse(article))
}

func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	articleID := chi.URLParam(r, "articleID")

	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	article, err := h.service.Update(r.Context(), userID, articleID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "article")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToArticleResponse(article))
}

func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	articleID := chi.URLParam(r, "articleID")

	if err := h.service.Delete(r.Context(), userID, articleID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "article")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
