// Lamont.ai | 2026
// entity.go

package article

import (
	"time"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article is a user-owned content row. Ownership is enforced at the
// repository level: every query is scoped by user_id, so a foreign row is
// indistinguishable from a missing one.
type Article struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Title     string     `db:"title"`
	Slug      string     `db:"slug"`
	Content   string     `db:"content"`
	Language  string     `db:"language"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}
