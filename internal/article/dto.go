// Lamont.ai | 2026
// dto.go

package article

import (
	"time"
)

type CreateArticleRequest struct {
	Title    string `json:"title"    validate:"required,min=1,max=255"`
	Content  string `json:"content"  validate:"required"`
	Language string `json:"language" validate:"omitempty,min=2,max=16"`
	Status   string `json:"status"   validate:"omitempty,oneof=draft published"`
}

type UpdateArticleRequest struct {
	Title    string `json:"title"    validate:"omitempty,min=1,max=255"`
	Content  string `json:"content"  validate:"omitempty"`
	Language string `json:"language" validate:"omitempty,min=2,max=16"`
	Status   string `json:"status"   validate:"omitempty,oneof=draft published"`
}

type ListArticlesParams struct {
	Page     int
	PageSize int
	Status   string
}

func (p *ListArticlesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}

func (p *ListArticlesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type ArticleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToArticleResponse(a *Article) ArticleResponse {
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Slug:      a.Slug,
		Content:   a.Content,
		Language:  a.Language,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToArticleResponseList(articles []Article) []ArticleResponse {
	responses := make([]ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = ToArticleResponse(&articles[i])
	}
	return responses
}
