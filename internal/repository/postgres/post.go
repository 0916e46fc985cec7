package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/blog-service/internal/model"
)

const excerptLength = 300

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post, categoryIDs []uuid.UUID) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	post.Views = 0

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO posts(author_id, title, slug, content, cover_image, status, published_at, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		post.AuthorID,
		post.Title,
		post.Slug,
		post.Content,
		post.CoverImage,
		post.Status,
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	for _, categoryID := range categoryIDs {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO post_categories(post_id, category_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			post.ID,
			categoryID,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Find(ctx context.Context, filter PostFilter) ([]*model.PostListItem, error) {
	query := fmt.Sprintf(`SELECT
	p.id, p.title, p.slug, LEFT(p.content, %d), p.cover_image, p.author_id, u.name, p.status, p.published_at, p.views
	FROM posts p
	LEFT JOIN users u ON p.author_id = u.id`, excerptLength)

	var conditions []string
	var args []interface{}

	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		placeholder := arg("%" + strings.ToLower(filter.Search) + "%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(p.title) LIKE %s OR LOWER(p.content) LIKE %s)", placeholder, placeholder))
	}
	if filter.Status != nil {
		conditions = append(conditions, "p.status = "+arg(*filter.Status))
	}
	if filter.AuthorID != nil {
		conditions = append(conditions, "p.author_id = "+arg(*filter.AuthorID))
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "p.id IN (SELECT post_id FROM post_categories WHERE category_id = "+arg(*filter.CategoryID)+")")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.published_at DESC NULLS LAST LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.PostListItem
	for rows.Next() {
		var post model.PostListItem
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Slug,
			&post.Excerpt,
			&post.CoverImage,
			&post.AuthorID,
			&post.AuthorName,
			&post.Status,
			&post.PublishedAt,
			&post.Views,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		`SELECT p.id, p.author_id, p.title, p.slug, p.content, p.cover_image, p.status, p.views, p.published_at, p.created_at, p.updated_at
		FROM posts p
		WHERE p.id = $1`,
		id,
	).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.CoverImage,
		&post.Status,
		&post.Views,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		`SELECT p.id, p.author_id, p.title, p.slug, p.content, p.cover_image, p.status, p.views, p.published_at, p.created_at, p.updated_at
		FROM posts p
		WHERE p.slug = $1 OR p.id::text = $1`,
		idOrSlug,
	).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.CoverImage,
		&post.Status,
		&post.Views,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

// FindForView bumps the view counter and reads the row in one transaction so
// the returned count reflects the increment that produced it.
func (r *postRepo) FindForView(ctx context.Context, idOrSlug string) (*model.FullPost, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		"UPDATE posts SET views = views + 1 WHERE slug = $1 OR id::text = $1",
		idOrSlug,
	); err != nil {
		return nil, err
	}

	var post model.FullPost
	if err := tx.QueryRow(
		ctx,
		`SELECT p.id, p.author_id, p.title, p.slug, p.content, p.cover_image, p.status, p.views, p.published_at, p.created_at, p.updated_at, u.name, u.avatar_url
		FROM posts p
		LEFT JOIN users u ON p.author_id = u.id
		WHERE p.slug = $1 OR p.id::text = $1`,
		idOrSlug,
	).Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.Title,
		&post.Post.Slug,
		&post.Post.Content,
		&post.Post.CoverImage,
		&post.Post.Status,
		&post.Post.Views,
		&post.Post.PublishedAt,
		&post.Post.CreatedAt,
		&post.Post.UpdatedAt,
		&post.Author.Name,
		&post.Author.AvatarURL,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post, categoryIDs []uuid.UUID, replaceCategories bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`UPDATE posts
		SET title = $1, slug = $2, content = $3, cover_image = $4, status = $5, published_at = $6, updated_at = $7
		WHERE id = $8`,
		post.Title,
		post.Slug,
		post.Content,
		post.CoverImage,
		post.Status,
		post.PublishedAt,
		time.Now(),
		post.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if replaceCategories {
		if _, err := tx.Exec(ctx, "DELETE FROM post_categories WHERE post_id = $1", post.ID); err != nil {
			return err
		}
		for _, categoryID := range categoryIDs {
			if _, err := tx.Exec(
				ctx,
				"INSERT INTO post_categories(post_id, category_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
				post.ID,
				categoryID,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *postRepo) Archive(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE posts SET status = $1, updated_at = $2 WHERE id = $3",
		model.PostArchived,
		time.Now(),
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepo) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2))",
		slug,
		excludeID,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
