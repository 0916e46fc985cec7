package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/policy"
	"github.com/inkpress/blog-service/internal/repository"
	"github.com/inkpress/blog-service/internal/repository/postgres"
	"github.com/inkpress/blog-service/internal/repository/redisrepo"
	"github.com/inkpress/blog-service/internal/slugger"
)

type categoryService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCategoryService(logger *zap.Logger, repo *repository.Repository) Category {
	return &categoryService{
		logger: logger,
		repo:   repo,
	}
}

func (s *categoryService) Create(ctx context.Context, actor model.User, input dto.CreateCategoryRequest) (*model.Category, error) {
	if !policy.CanManageCategories(&actor) {
		return nil, apperror.ErrForbidden
	}

	base := slugger.Make(input.Name)
	if input.Slug != nil {
		base = slugger.Make(*input.Slug)
	}

	category := model.Category{
		Name: input.Name,
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		slug, err := uniqueSlug(ctx, s.repo.Postgres.Category.SlugExists, base, nil)
		if err != nil {
			return nil, err
		}
		category.Slug = slug

		created, err := s.repo.Postgres.Category.Create(ctx, category)
		if postgres.IsUniqueViolation(err) {
			continue
		}
		if err != nil {
			s.logger.Sugar().Errorf("failed to create category %q: %s", input.Name, err.Error())
			return nil, apperror.ErrInternal
		}

		s.invalidateList(ctx)
		return created, nil
	}

	return nil, fmt.Errorf("create category %q: %w", input.Name, apperror.ErrConflict)
}

func (s *categoryService) FindAll(ctx context.Context) ([]*model.CategoryWithCount, error) {
	cached, err := redisrepo.GetMany[model.CategoryWithCount](s.repo.Redis.Default, ctx, redisrepo.CategoriesKey())
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get categories from redis: %s", err.Error())
	}

	categories, err := s.repo.Postgres.Category.FindAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find categories: %s", err.Error())
		return nil, apperror.ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.CategoriesKey(), categories, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set categories in redis: %s", err.Error())
	}

	return categories, nil
}

func (s *categoryService) FindWithPosts(ctx context.Context, idOrSlug string) (*dto.CategoryPostsResponse, error) {
	category, err := s.repo.Postgres.Category.FindByIDOrSlug(ctx, idOrSlug)
	if err == pgx.ErrNoRows {
		return nil, apperror.NotFoundf("category %q", idOrSlug)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find category(%s): %s", idOrSlug, err.Error())
		return nil, apperror.ErrInternal
	}

	posts, err := s.repo.Postgres.Category.FindCategoryPosts(ctx, category.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find category(%s) posts: %s", category.ID.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	return &dto.CategoryPostsResponse{
		Category: category,
		Posts:    posts,
	}, nil
}

func (s *categoryService) Update(ctx context.Context, actor model.User, id uuid.UUID, input dto.UpdateCategoryRequest) (*model.Category, error) {
	if !policy.CanManageCategories(&actor) {
		return nil, apperror.ErrForbidden
	}

	existing, err := s.repo.Postgres.Category.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperror.NotFoundf("category %s", id)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find category(%s): %s", id.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	updated := *existing
	if input.Name != nil {
		updated.Name = *input.Name
	}

	base := existing.Slug
	if input.Slug != nil {
		base = slugger.Make(*input.Slug)
	} else if input.Name != nil {
		base = slugger.Make(*input.Name)
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		updated.Slug = existing.Slug
		if base != existing.Slug {
			slug, err := uniqueSlug(ctx, s.repo.Postgres.Category.SlugExists, base, &existing.ID)
			if err != nil {
				return nil, err
			}
			updated.Slug = slug
		}

		err := s.repo.Postgres.Category.Update(ctx, updated)
		if postgres.IsUniqueViolation(err) {
			continue
		}
		if err == pgx.ErrNoRows {
			return nil, apperror.NotFoundf("category %s", id)
		}
		if err != nil {
			s.logger.Sugar().Errorf("failed to update category(%s): %s", id.String(), err.Error())
			return nil, apperror.ErrInternal
		}

		s.invalidateList(ctx)
		return &updated, nil
	}

	return nil, fmt.Errorf("update category %s: %w", id, apperror.ErrConflict)
}

func (s *categoryService) Delete(ctx context.Context, actor model.User, id uuid.UUID) error {
	if !policy.CanManageCategories(&actor) {
		return apperror.ErrForbidden
	}

	deleted, err := s.repo.Postgres.Category.Delete(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete category(%s): %s", id.String(), err.Error())
		return apperror.ErrInternal
	}
	if !deleted {
		return apperror.NotFoundf("category %s", id)
	}

	s.invalidateList(ctx)
	return nil
}

func (s *categoryService) invalidateList(ctx context.Context) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.CategoriesKey()).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate categories cache: %s", err.Error())
	}
}
