package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/blog-service/internal/model"
)

type reactionRepo struct {
	db *pgxpool.Pool
}

func newReactionRepo(db *pgxpool.Pool) Reaction {
	return &reactionRepo{
		db: db,
	}
}

// targetFilter returns the column predicate and id for the set side of the
// target. Callers validate the exactly-one invariant before reaching here.
func targetFilter(target model.ReactionTarget) (string, uuid.UUID) {
	if target.PostID != nil {
		return "post_id", *target.PostID
	}
	return "comment_id", *target.CommentID
}

func (r *reactionRepo) Find(ctx context.Context, target model.ReactionTarget, authorID uuid.UUID) (*model.Reaction, error) {
	column, targetID := targetFilter(target)

	var reaction model.Reaction
	if err := r.db.QueryRow(
		ctx,
		`SELECT r.id, r.post_id, r.comment_id, r.author_id, r.type, r.created_at
		FROM reactions r
		WHERE r.`+column+` = $1 AND r.author_id = $2`,
		targetID,
		authorID,
	).Scan(
		&reaction.ID,
		&reaction.PostID,
		&reaction.CommentID,
		&reaction.AuthorID,
		&reaction.Type,
		&reaction.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &reaction, nil
}

func (r *reactionRepo) Create(ctx context.Context, reaction model.Reaction) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO reactions(post_id, comment_id, author_id, type, created_at) VALUES($1, $2, $3, $4, $5)",
		reaction.PostID,
		reaction.CommentID,
		reaction.AuthorID,
		reaction.Type,
		time.Now(),
	)
	return err
}

func (r *reactionRepo) UpdateType(ctx context.Context, id uuid.UUID, reactionType model.ReactionType) error {
	_, err := r.db.Exec(ctx, "UPDATE reactions SET type = $1 WHERE id = $2", reactionType, id)
	return err
}

func (r *reactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM reactions WHERE id = $1", id)
	return err
}

// Counts derives the aggregates from the rows on every call.
func (r *reactionRepo) Counts(ctx context.Context, target model.ReactionTarget) (int64, int64, error) {
	column, targetID := targetFilter(target)

	var likes, dislikes int64
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		COUNT(*) FILTER (WHERE r.type = 'like'),
		COUNT(*) FILTER (WHERE r.type = 'dislike')
		FROM reactions r
		WHERE r.`+column+` = $1`,
		targetID,
	).Scan(&likes, &dislikes); err != nil {
		return 0, 0, err
	}

	return likes, dislikes, nil
}
