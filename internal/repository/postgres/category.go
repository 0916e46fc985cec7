package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/blog-service/internal/model"
)

type categoryRepo struct {
	db *pgxpool.Pool
}

func newCategoryRepo(db *pgxpool.Pool) Category {
	return &categoryRepo{
		db: db,
	}
}

func (r *categoryRepo) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO categories(name, slug) VALUES($1, $2) RETURNING id",
		category.Name,
		category.Slug,
	).Scan(&category.ID); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]*model.CategoryWithCount, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT c.id, c.name, c.slug, COUNT(pc.post_id)
		FROM categories c
		LEFT JOIN post_categories pc ON c.id = pc.category_id
		GROUP BY c.id, c.name, c.slug
		ORDER BY c.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.CategoryWithCount
	for rows.Next() {
		var category model.CategoryWithCount
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.PostCount,
		); err != nil {
			return nil, err
		}

		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepo) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.QueryRow(
		ctx,
		"SELECT c.id, c.name, c.slug FROM categories c WHERE c.slug = $1 OR c.id::text = $1",
		idOrSlug,
	).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
	); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.QueryRow(
		ctx,
		"SELECT c.id, c.name, c.slug FROM categories c WHERE c.id = $1",
		id,
	).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
	); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryRepo) FindCategoryPosts(ctx context.Context, categoryID uuid.UUID) ([]*model.PostListItem, error) {
	status := model.PostPublished
	return newPostRepo(r.db).Find(ctx, PostFilter{
		Status:     &status,
		CategoryID: &categoryID,
		Limit:      100,
	})
}

func (r *categoryRepo) Update(ctx context.Context, category model.Category) error {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE categories SET name = $1, slug = $2 WHERE id = $3",
		category.Name,
		category.Slug,
		category.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *categoryRepo) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2))",
		slug,
		excludeID,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
