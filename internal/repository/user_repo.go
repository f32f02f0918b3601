package repository

import (
	"context"
	"errors"
	"fmt"

	"profile-page-service/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepo реализует чтение пользователей из PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepo создаёт новый экземпляр UserRepo поверх пула соединений.
func NewUserRepo(db *Postgres) *UserRepo {
	return &UserRepo{q: db.Pool}
}

// GetByUsername возвращает пользователя по точному совпадению username.
// Если пользователь не найден, возвращает ErrUserNotFound.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.q.QueryRow(ctx, `
SELECT id, username, COALESCE(image_url, '')
FROM users
WHERE username = $1
`, username)

	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.ImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
