package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/repository"
	"github.com/inkpress/blog-service/internal/repository/redisrepo"
)

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) User {
	return &userService{
		logger: logger,
		repo:   repo,
	}
}

// Sync mirrors an identity-provider account locally. The provider's claims
// win: any drift in email, name or role rewrites the mirror row.
func (s *userService) Sync(ctx context.Context, user model.User) (*model.User, error) {
	cached, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(user.ID.String()))
	if err == nil && cached != nil && mirrorsClaims(cached, &user) {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", user.ID.String(), err.Error())
	}

	stored, err := s.repo.Postgres.User.FindByID(ctx, user.ID)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find user(%s): %s", user.ID.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	if stored == nil || !mirrorsClaims(stored, &user) {
		if err := s.repo.Postgres.User.Upsert(ctx, user); err != nil {
			s.logger.Sugar().Errorf("failed to upsert user(%s): %s", user.ID.String(), err.Error())
			return nil, apperror.ErrInternal
		}
		stored, err = s.repo.Postgres.User.FindByID(ctx, user.ID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to find user(%s) after upsert: %s", user.ID.String(), err.Error())
			return nil, apperror.ErrInternal
		}
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserKey(user.ID.String()), stored, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", user.ID.String(), err.Error())
	}

	return stored, nil
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	cached, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserKey(id.String()))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperror.NotFoundf("user %s", id)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s): %s", id.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserKey(id.String()), user, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

func mirrorsClaims(stored *model.User, claims *model.User) bool {
	return stored.Email == claims.Email && stored.Name == claims.Name && stored.Role == claims.Role
}
