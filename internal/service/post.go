package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/policy"
	"github.com/inkpress/blog-service/internal/repository"
	"github.com/inkpress/blog-service/internal/repository/postgres"
	"github.com/inkpress/blog-service/internal/slugger"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo:   repo,
	}
}

func (s *postService) Create(ctx context.Context, actor model.User, input dto.CreatePostRequest) (*model.Post, error) {
	status := model.PostDraft
	if input.Status != nil {
		status = model.PostStatus(*input.Status)
	}

	categoryIDs, err := parseUUIDs(input.Categories)
	if err != nil {
		return nil, err
	}

	base := slugger.Make(input.Title)
	if input.Slug != nil {
		base = slugger.Make(*input.Slug)
	}

	post := model.Post{
		AuthorID:   &actor.ID,
		Title:      input.Title,
		Content:    input.Content,
		CoverImage: input.CoverImage,
		Status:     status,
	}
	if status == model.PostPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		slug, err := uniqueSlug(ctx, s.repo.Postgres.Post.SlugExists, base, nil)
		if err != nil {
			return nil, err
		}
		post.Slug = slug

		created, err := s.repo.Postgres.Post.Create(ctx, post, categoryIDs)
		if postgres.IsUniqueViolation(err) {
			// Lost the race for this slug; the next probe sees the winner's row.
			continue
		}
		if err != nil {
			s.logger.Sugar().Errorf("failed to create user(%s) post: %s", actor.ID.String(), err.Error())
			return nil, apperror.ErrInternal
		}
		return created, nil
	}

	return nil, fmt.Errorf("create post %q: %w", input.Title, apperror.ErrConflict)
}

func (s *postService) Find(ctx context.Context, actor *model.User, query dto.ListPostsQuery) ([]*model.PostListItem, error) {
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	filter := postgres.PostFilter{
		Search: query.Q,
		Limit:  query.Limit,
		Offset: (query.Page - 1) * query.Limit,
	}

	status := model.PostPublished
	if query.Status != "" && query.Status != string(model.PostPublished) {
		// Drafts and archived posts are only listable by staff.
		if !policy.CanListUnpublished(actor) {
			return nil, apperror.ErrForbidden
		}
		status = model.PostStatus(query.Status)
	}
	filter.Status = &status

	if query.AuthorID != "" {
		authorID, err := uuid.Parse(query.AuthorID)
		if err != nil {
			return nil, apperror.Validationf("invalid authorId %q", query.AuthorID)
		}
		filter.AuthorID = &authorID
	}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			return nil, apperror.Validationf("invalid categoryId %q", query.CategoryID)
		}
		filter.CategoryID = &categoryID
	}

	posts, err := s.repo.Postgres.Post.Find(ctx, filter)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts: %s", err.Error())
		return nil, apperror.ErrInternal
	}

	return posts, nil
}

func (s *postService) FindForView(ctx context.Context, actor *model.User, idOrSlug string) (*model.FullPost, error) {
	post, err := s.repo.Postgres.Post.FindForView(ctx, idOrSlug)
	if err == pgx.ErrNoRows {
		return nil, apperror.NotFoundf("post %q", idOrSlug)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s): %s", idOrSlug, err.Error())
		return nil, apperror.ErrInternal
	}

	if post.Post.Status != model.PostPublished && !policy.CanViewUnpublished(actor, post.Post.AuthorID) {
		// Hidden posts read as absent, not as forbidden.
		return nil, apperror.NotFoundf("post %q", idOrSlug)
	}

	return post, nil
}

func (s *postService) Update(ctx context.Context, actor model.User, id uuid.UUID, input dto.UpdatePostRequest) (*model.Post, error) {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperror.NotFoundf("post %s", id)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s): %s", id.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	if !policy.CanModify(&actor, existing.AuthorID) {
		return nil, apperror.ErrForbidden
	}

	updated := *existing
	if input.Title != nil {
		updated.Title = *input.Title
	}
	if input.Content != nil {
		updated.Content = *input.Content
	}
	if input.CoverImage != nil {
		updated.CoverImage = input.CoverImage
	}

	if input.Status != nil {
		to := model.PostStatus(*input.Status)
		if !policy.CanTransition(existing.Status, to) {
			return nil, apperror.Validationf("status cannot change from %s to %s", existing.Status, to)
		}
		updated.Status = to
		if to == model.PostPublished && existing.PublishedAt == nil {
			now := time.Now()
			updated.PublishedAt = &now
		}
	}

	base := existing.Slug
	if input.Slug != nil {
		base = slugger.Make(*input.Slug)
	} else if input.Title != nil {
		base = slugger.Make(*input.Title)
	}

	var categoryIDs []uuid.UUID
	if input.Categories != nil {
		categoryIDs, err = parseUUIDs(input.Categories)
		if err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		updated.Slug = existing.Slug
		if base != existing.Slug {
			slug, err := uniqueSlug(ctx, s.repo.Postgres.Post.SlugExists, base, &existing.ID)
			if err != nil {
				return nil, err
			}
			updated.Slug = slug
		}

		err := s.repo.Postgres.Post.Update(ctx, updated, categoryIDs, input.Categories != nil)
		if postgres.IsUniqueViolation(err) {
			continue
		}
		if err == pgx.ErrNoRows {
			return nil, apperror.NotFoundf("post %s", id)
		}
		if err != nil {
			s.logger.Sugar().Errorf("failed to update post(%s): %s", id.String(), err.Error())
			return nil, apperror.ErrInternal
		}
		return &updated, nil
	}

	return nil, fmt.Errorf("update post %s: %w", id, apperror.ErrConflict)
}

func (s *postService) Delete(ctx context.Context, actor model.User, id uuid.UUID, hard bool) error {
	existing, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return apperror.NotFoundf("post %s", id)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s): %s", id.String(), err.Error())
		return apperror.ErrInternal
	}

	if !policy.CanModify(&actor, existing.AuthorID) {
		return apperror.ErrForbidden
	}

	if hard {
		if !policy.CanHardDeletePost(&actor) {
			return apperror.ErrForbidden
		}
		if err := s.repo.Postgres.Post.Delete(ctx, id); err != nil && err != pgx.ErrNoRows {
			s.logger.Sugar().Errorf("failed to delete post(%s): %s", id.String(), err.Error())
			return apperror.ErrInternal
		}
		return nil
	}

	if err := s.repo.Postgres.Post.Archive(ctx, id); err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to archive post(%s): %s", id.String(), err.Error())
		return apperror.ErrInternal
	}
	return nil
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, apperror.Validationf("invalid id %q", value)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
