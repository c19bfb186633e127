// Lamont.ai | 2026
// service.go

package article

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateArticleRequest,
) (*Article, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	article := &Article{
		ID:       uuid.New().String(),
		UserID:   userID,
		Title:    req.Title,
		Slug:     Slugify(req.Title),
		Content:  req.Content,
		Language: req.Language,
		Status:   status,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, id string,
) (*Article, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateArticleRequest,
) (*Article, error) {
	article, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		article.Title = req.Title
		article.Slug = Slugify(req.Title)
	}
	if req.Content != "" {
		article.Content = req.Content
	}
	if req.Language != "" {
		article.Language = req.Language
	}
	if req.Status != "" {
		article.Status = req.Status
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.SoftDelete(ctx, userID, id)
}

func (s *Service) List(
	ctx context.Context,
	userID string,
	params ListArticlesParams,
) ([]Article, int, error) {
	return s.repo.List(ctx, userID, params)
}

// Slugify lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
