package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/blog-service/internal/model"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO comments(post_id, parent_id, author_id, content, status, created_at)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		comment.PostID,
		comment.ParentID,
		comment.AuthorID,
		comment.Content,
		comment.Status,
		comment.CreatedAt,
	).Scan(&comment.ID); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		`SELECT c.id, c.post_id, c.parent_id, c.author_id, c.content, c.status, c.created_at
		FROM comments c
		WHERE c.id = $1`,
		id,
	).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.ParentID,
		&comment.AuthorID,
		&comment.Content,
		&comment.Status,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

// FindPostComments returns the flat row set for one post, creation time
// ascending. The tree is shaped in the service layer.
func (r *commentRepo) FindPostComments(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT c.id, c.post_id, c.parent_id, c.author_id, c.content, c.status, c.created_at, u.name, u.avatar_url
		FROM comments c
		LEFT JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.FullComment
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.PostID,
			&comment.Comment.ParentID,
			&comment.Comment.AuthorID,
			&comment.Comment.Content,
			&comment.Comment.Status,
			&comment.Comment.CreatedAt,
			&comment.Author.Name,
			&comment.Author.AvatarURL,
		); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	tag, err := r.db.Exec(ctx, "UPDATE comments SET content = $1 WHERE id = $2", content, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *commentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.CommentStatus) error {
	tag, err := r.db.Exec(ctx, "UPDATE comments SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the row; replies go with it through the store's cascade.
func (r *commentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
