package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/repository"
	"github.com/inkpress/blog-service/internal/repository/postgres"
)

type reactionService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newReactionService(logger *zap.Logger, repo *repository.Repository) Reaction {
	return &reactionService{
		logger: logger,
		repo:   repo,
	}
}

// React applies toggle semantics for one (actor, target) pair: no existing
// reaction inserts, the same type deletes, the other type updates in place.
// A duplicate-insert conflict means a concurrent toggle won; the loop re-reads
// and reapplies the decision rather than surfacing the constraint error.
func (s *reactionService) React(ctx context.Context, actor model.User, target model.ReactionTarget, reactionType model.ReactionType) (*model.ReactionCounts, error) {
	if !target.Valid() {
		return nil, apperror.Validationf("reaction target must be exactly one of post or comment")
	}
	if !reactionType.Valid() {
		return nil, apperror.Validationf("invalid reaction type %q", reactionType)
	}
	if err := s.ensureTargetExists(ctx, target); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		existing, err := s.repo.Postgres.Reaction.Find(ctx, target, actor.ID)
		if err != nil && err != pgx.ErrNoRows {
			s.logger.Sugar().Errorf("failed to find user(%s) reaction: %s", actor.ID.String(), err.Error())
			return nil, apperror.ErrInternal
		}

		var userReaction *model.ReactionType
		switch {
		case existing == nil:
			err := s.repo.Postgres.Reaction.Create(ctx, model.Reaction{
				PostID:    target.PostID,
				CommentID: target.CommentID,
				AuthorID:  actor.ID,
				Type:      reactionType,
			})
			if postgres.IsUniqueViolation(err) {
				continue
			}
			if err != nil {
				s.logger.Sugar().Errorf("failed to create user(%s) reaction: %s", actor.ID.String(), err.Error())
				return nil, apperror.ErrInternal
			}
			userReaction = &reactionType

		case existing.Type == reactionType:
			// Second identical click removes the reaction.
			if err := s.repo.Postgres.Reaction.Delete(ctx, existing.ID); err != nil {
				s.logger.Sugar().Errorf("failed to delete reaction(%s): %s", existing.ID.String(), err.Error())
				return nil, apperror.ErrInternal
			}

		default:
			if err := s.repo.Postgres.Reaction.UpdateType(ctx, existing.ID, reactionType); err != nil {
				s.logger.Sugar().Errorf("failed to update reaction(%s): %s", existing.ID.String(), err.Error())
				return nil, apperror.ErrInternal
			}
			userReaction = &reactionType
		}

		counts, err := s.counts(ctx, target)
		if err != nil {
			return nil, err
		}
		counts.UserReaction = userReaction
		return counts, nil
	}

	return nil, fmt.Errorf("reaction toggle kept losing races: %w", apperror.ErrConflict)
}

func (s *reactionService) Counts(ctx context.Context, actor *model.User, target model.ReactionTarget) (*model.ReactionCounts, error) {
	if !target.Valid() {
		return nil, apperror.Validationf("reaction target must be exactly one of post or comment")
	}

	counts, err := s.counts(ctx, target)
	if err != nil {
		return nil, err
	}

	if actor != nil {
		existing, err := s.repo.Postgres.Reaction.Find(ctx, target, actor.ID)
		if err != nil && err != pgx.ErrNoRows {
			s.logger.Sugar().Errorf("failed to find user(%s) reaction: %s", actor.ID.String(), err.Error())
			return nil, apperror.ErrInternal
		}
		if existing != nil {
			userReaction := existing.Type
			counts.UserReaction = &userReaction
		}
	}

	return counts, nil
}

func (s *reactionService) counts(ctx context.Context, target model.ReactionTarget) (*model.ReactionCounts, error) {
	likes, dislikes, err := s.repo.Postgres.Reaction.Counts(ctx, target)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count reactions: %s", err.Error())
		return nil, apperror.ErrInternal
	}
	return &model.ReactionCounts{Likes: likes, Dislikes: dislikes}, nil
}

func (s *reactionService) ensureTargetExists(ctx context.Context, target model.ReactionTarget) error {
	if target.PostID != nil {
		if _, err := s.repo.Postgres.Post.FindByID(ctx, *target.PostID); err != nil {
			if err == pgx.ErrNoRows {
				return apperror.NotFoundf("post %s", *target.PostID)
			}
			s.logger.Sugar().Errorf("failed to find post(%s): %s", target.PostID.String(), err.Error())
			return apperror.ErrInternal
		}
		return nil
	}

	if _, err := s.repo.Postgres.Comment.FindByID(ctx, *target.CommentID); err != nil {
		if err == pgx.ErrNoRows {
			return apperror.NotFoundf("comment %s", *target.CommentID)
		}
		s.logger.Sugar().Errorf("failed to find comment(%s): %s", target.CommentID.String(), err.Error())
		return apperror.ErrInternal
	}
	return nil
}
