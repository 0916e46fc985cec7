package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/blog-service/internal/model"
)

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Upsert(ctx context.Context, user model.User) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO users(id, email, name, role, avatar_url, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email, name = EXCLUDED.name, role = EXCLUDED.role, avatar_url = EXCLUDED.avatar_url, updated_at = EXCLUDED.updated_at`,
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		user.AvatarURL,
		time.Now(),
	)
	return err
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.email, u.name, u.role, u.avatar_url, u.created_at, u.updated_at FROM users u WHERE u.id = $1",
		id,
	).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}
