package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/repository"
)

// Bound on conflict-driven retries (slug probes, reaction toggles). Hitting
// the bound surfaces as a Conflict error instead of looping forever.
const maxConflictRetries = 20

type Post interface {
	Create(ctx context.Context, actor model.User, input dto.CreatePostRequest) (*model.Post, error)
	Find(ctx context.Context, actor *model.User, query dto.ListPostsQuery) ([]*model.PostListItem, error)
	FindForView(ctx context.Context, actor *model.User, idOrSlug string) (*model.FullPost, error)
	Update(ctx context.Context, actor model.User, id uuid.UUID, input dto.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, actor model.User, id uuid.UUID, hard bool) error
}

type Category interface {
	Create(ctx context.Context, actor model.User, input dto.CreateCategoryRequest) (*model.Category, error)
	FindAll(ctx context.Context) ([]*model.CategoryWithCount, error)
	FindWithPosts(ctx context.Context, idOrSlug string) (*dto.CategoryPostsResponse, error)
	Update(ctx context.Context, actor model.User, id uuid.UUID, input dto.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, actor model.User, id uuid.UUID) error
}

type Comment interface {
	Create(ctx context.Context, actor model.User, input dto.CreateCommentRequest) (*model.Comment, error)
	FindPostComments(ctx context.Context, actor *model.User, postID uuid.UUID) (*dto.CommentsResponse, error)
	Edit(ctx context.Context, actor model.User, postID, id uuid.UUID, content string) error
	Moderate(ctx context.Context, actor model.User, postID, id uuid.UUID, status model.CommentStatus) error
	Delete(ctx context.Context, actor model.User, postID, id uuid.UUID) error
}

type Reaction interface {
	React(ctx context.Context, actor model.User, target model.ReactionTarget, reactionType model.ReactionType) (*model.ReactionCounts, error)
	Counts(ctx context.Context, actor *model.User, target model.ReactionTarget) (*model.ReactionCounts, error)
}

type Share interface {
	Record(ctx context.Context, actor *model.User, postIDOrSlug string, platform model.SharePlatform) (*dto.ShareResponse, error)
	Totals(ctx context.Context, postIDOrSlug string) (*model.ShareTotals, error)
}

type User interface {
	Sync(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type Service struct {
	Post
	Category
	Comment
	Reaction
	Share
	User
}

func New(logger *zap.Logger, repo *repository.Repository) *Service {
	return &Service{
		Post:     newPostService(logger, repo),
		Category: newCategoryService(logger, repo),
		Comment:  newCommentService(logger, repo),
		Reaction: newReactionService(logger, repo),
		Share:    newShareService(logger, repo),
		User:     newUserService(logger, repo),
	}
}
