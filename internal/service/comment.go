package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/policy"
	"github.com/inkpress/blog-service/internal/repository"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCommentService(logger *zap.Logger, repo *repository.Repository) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *commentService) Create(ctx context.Context, actor model.User, input dto.CreateCommentRequest) (*model.Comment, error) {
	postID, err := uuid.Parse(input.PostID)
	if err != nil {
		return nil, apperror.Validationf("invalid post_id %q", input.PostID)
	}

	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperror.NotFoundf("post %s", postID)
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	var parentID *uuid.UUID
	if input.ParentID != nil {
		id, err := uuid.Parse(*input.ParentID)
		if err != nil {
			return nil, apperror.Validationf("invalid parent_id %q", *input.ParentID)
		}

		parent, err := s.repo.Postgres.Comment.FindByID(ctx, id)
		if err == pgx.ErrNoRows {
			return nil, apperror.NotFoundf("parent comment %s", id)
		}
		if err != nil {
			s.logger.Sugar().Errorf("failed to find comment(%s): %s", id.String(), err.Error())
			return nil, apperror.ErrInternal
		}
		if parent.PostID != postID {
			return nil, apperror.Validationf("parent comment %s belongs to another post", id)
		}
		parentID = &id
	}

	comment := model.Comment{
		PostID:   postID,
		ParentID: parentID,
		AuthorID: &actor.ID,
		Content:  input.Content,
		Status:   model.CommentPending,
	}

	created, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment: %s", actor.ID.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	return created, nil
}

func (s *commentService) FindPostComments(ctx context.Context, actor *model.User, postID uuid.UUID) (*dto.CommentsResponse, error) {
	if _, err := s.repo.Postgres.Post.FindByID(ctx, postID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperror.NotFoundf("post %s", postID)
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	rows, err := s.repo.Postgres.Comment.FindPostComments(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) comments: %s", postID.String(), err.Error())
		return nil, apperror.ErrInternal
	}

	// Rejected comments stay visible to moderators only. Their replies, if
	// any survive the filter, get demoted to roots by the tree builder.
	if !policy.CanModerateComments(actor) {
		visible := make([]*model.FullComment, 0, len(rows))
		for _, row := range rows {
			if row.Comment.Status != model.CommentRejected {
				visible = append(visible, row)
			}
		}
		rows = visible
	}

	return &dto.CommentsResponse{
		Count:    int64(len(rows)),
		Comments: BuildCommentTree(rows),
	}, nil
}

func (s *commentService) Edit(ctx context.Context, actor model.User, postID, id uuid.UUID, content string) error {
	comment, err := s.findComment(ctx, postID, id)
	if err != nil {
		return err
	}

	if !policy.CanModify(&actor, comment.AuthorID) {
		return apperror.ErrForbidden
	}

	if err := s.repo.Postgres.Comment.UpdateContent(ctx, id, content); err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to update comment(%s): %s", id.String(), err.Error())
		return apperror.ErrInternal
	}
	return nil
}

func (s *commentService) Moderate(ctx context.Context, actor model.User, postID, id uuid.UUID, status model.CommentStatus) error {
	if !policy.CanModerateComments(&actor) {
		return apperror.ErrForbidden
	}
	if !status.Valid() {
		return apperror.Validationf("invalid comment status %q", status)
	}

	if _, err := s.findComment(ctx, postID, id); err != nil {
		return err
	}

	if err := s.repo.Postgres.Comment.UpdateStatus(ctx, id, status); err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to moderate comment(%s): %s", id.String(), err.Error())
		return apperror.ErrInternal
	}
	return nil
}

func (s *commentService) Delete(ctx context.Context, actor model.User, postID, id uuid.UUID) error {
	comment, err := s.findComment(ctx, postID, id)
	if err != nil {
		return err
	}

	if !policy.CanModify(&actor, comment.AuthorID) {
		return apperror.ErrForbidden
	}

	if err := s.repo.Postgres.Comment.Delete(ctx, id); err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to delete comment(%s): %s", id.String(), err.Error())
		return apperror.ErrInternal
	}
	return nil
}

// findComment resolves a comment addressed as post/comment. A comment that
// exists under a different post reads as absent.
func (s *commentService) findComment(ctx context.Context, postID, id uuid.UUID) (*model.Comment, error) {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, apperror.NotFoundf("comment %s", id)
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comment(%s): %s", id.String(), err.Error())
		return nil, apperror.ErrInternal
	}
	if comment.PostID != postID {
		return nil, apperror.NotFoundf("comment %s on post %s", id, postID)
	}
	return comment, nil
}
