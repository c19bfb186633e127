// Lamont.ai | 2026
// repository.go

package article

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lamont-ai/lamont/internal/core"
)

type Repository interface {
	Create(ctx context.Context, article *Article) error
	GetByID(ctx context.Context, userID, id string) (*Article, error)
	Update(ctx context.Context, article *Article) error
	SoftDelete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, params ListArticlesParams) ([]Article, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, article *Article) error {
	query := `
		INSERT INTO articles (id, user_id, title, slug, content, language, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, article, query,
		article.ID,
		article.UserID,
		article.Title,
		article.Slug,
		article.Content,
		article.Language,
		article.Status,
	)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	userID, id string,
) (*Article, error) {
	query := `
		SELECT id, user_id, title, slug, content, language, status,
		       created_at, updated_at, deleted_at
		FROM articles
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	var article Article
	err := r.db.GetContext(ctx, &article, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}

	return &article, nil
}

func (r *repository) Update(ctx context.Context, article *Article) error {
	query := `
		UPDATE articles
		SET title = $3, slug = $4, content = $5, language = $6, status = $7,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &article.UpdatedAt, query,
		article.ID,
		article.UserID,
		article.Title,
		article.Slug,
		article.Content,
		article.Language,
		article.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update article: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	return nil
}

func (r *repository) SoftDelete(ctx context.Context, userID, id string) error {
	query := `
		UPDATE articles
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete article: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	userID string,
	params ListArticlesParams,
) ([]Article, int, error) {
	params.Normalize()

	conditions := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []any{userID}
	argIdx := 2

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM articles WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, slug, content, language, status,
		       created_at, updated_at, deleted_at
		FROM articles
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var articles []Article
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	return articles, total, nil
}
