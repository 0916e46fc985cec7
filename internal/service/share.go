package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/repository"
)

type shareService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newShareService(logger *zap.Logger, repo *repository.Repository) Share {
	return &shareService{
		logger: logger,
		repo:   repo,
	}
}

func (s *shareService) Record(ctx context.Context, actor *model.User, postIDOrSlug string, platform model.SharePlatform) (*dto.ShareResponse, error) {
	if !platform.Valid() {
		return nil, apperror.Validationf("invalid share platform %q", platform)
	}

	post, err := s.resolvePost(ctx, postIDOrSlug)
	if err != nil {
		return nil, err
	}

	share := model.Share{
		PostID:   post.ID,
		Platform: platform,
	}
	if actor != nil {
		share.AuthorID = &actor.ID
	}

	if err := s.repo.Postgres.Share.Create(ctx, share); err != nil {
		s.logger.Sugar().Errorf("failed to record share for post(%s): %s", post.ID.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	totals, err := s.repo.Postgres.Share.Totals(ctx, post.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to total shares for post(%s): %s", post.ID.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	return &dto.ShareResponse{
		Message: "Share recorded",
		URL:     publicPostURL(post.Slug),
		Totals:  *totals,
	}, nil
}

func (s *shareService) Totals(ctx context.Context, postIDOrSlug string) (*model.ShareTotals, error) {
	post, err := s.resolvePost(ctx, postIDOrSlug)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Postgres.Share.Totals(ctx, post.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to total shares for post(%s): %s", post.ID.String(), err.Error())
		return nil, apperror.ErrInternal
	}
	return totals, nil
}

func (s *shareService) resolvePost(ctx context.Context, idOrSlug string) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByIDOrSlug(ctx, idOrSlug)
	if err == pgx.ErrNoRows {
		return nil, apperror.NotFoundf("post %q", idOrSlug)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s): %s", idOrSlug, err.Error())
		return nil, apperror.ErrInternal
	}
	return post, nil
}

func publicPostURL(slug string) string {
	return strings.TrimRight(viper.GetString("app.origin"), "/") + "/posts/" + slug
}
