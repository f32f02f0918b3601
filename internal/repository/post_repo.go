package repository

import (
	"context"
	"fmt"

	"profile-page-service/internal/model"
)

// PostRepo реализует чтение постов из PostgreSQL.
type PostRepo struct {
	q Querier
}

// NewPostRepo создаёт новый экземпляр PostRepo поверх пула соединений.
func NewPostRepo(db *Postgres) *PostRepo {
	return &PostRepo{q: db.Pool}
}

// ListByAuthor возвращает последние limit постов автора, новые первыми.
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID string, limit int) ([]model.Post, error) {
	rows, err := r.q.Query(ctx, `
SELECT id, author_id, content, created_at
FROM posts
WHERE author_id = $1
ORDER BY created_at DESC, id
LIMIT $2
`, authorID, limit)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}
