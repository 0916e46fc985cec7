package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/blog-service/internal/model"
)

type shareRepo struct {
	db *pgxpool.Pool
}

func newShareRepo(db *pgxpool.Pool) Share {
	return &shareRepo{
		db: db,
	}
}

func (r *shareRepo) Create(ctx context.Context, share model.Share) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO shares(post_id, author_id, platform, created_at) VALUES($1, $2, $3, $4)",
		share.PostID,
		share.AuthorID,
		share.Platform,
		time.Now(),
	)
	return err
}

func (r *shareRepo) Totals(ctx context.Context, postID uuid.UUID) (*model.ShareTotals, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT s.platform, COUNT(*) FROM shares s WHERE s.post_id = $1 GROUP BY s.platform",
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := model.ShareTotals{
		PerPlatform: make(map[model.SharePlatform]int64),
	}
	for rows.Next() {
		var platform model.SharePlatform
		var count int64
		if err := rows.Scan(&platform, &count); err != nil {
			return nil, err
		}

		totals.PerPlatform[platform] = count
		totals.Total += count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &totals, nil
}
