package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/blog-service/internal/model"
)

// PostFilter narrows the post listing. Zero values mean "no filter".
type PostFilter struct {
	Search     string
	Status     *model.PostStatus
	AuthorID   *uuid.UUID
	CategoryID *uuid.UUID
	Limit      int
	Offset     int
}

type Post interface {
	Create(ctx context.Context, post model.Post, categoryIDs []uuid.UUID) (*model.Post, error)
	Find(ctx context.Context, filter PostFilter) ([]*model.PostListItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindByIDOrSlug(ctx context.Context, idOrSlug string) (*model.Post, error)
	// FindForView resolves by slug or id, incrementing the view counter and
	// reading the row in one transaction.
	FindForView(ctx context.Context, idOrSlug string) (*model.FullPost, error)
	Update(ctx context.Context, post model.Post, categoryIDs []uuid.UUID, replaceCategories bool) error
	Archive(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

type Category interface {
	Create(ctx context.Context, category model.Category) (*model.Category, error)
	FindAll(ctx context.Context) ([]*model.CategoryWithCount, error)
	FindByIDOrSlug(ctx context.Context, idOrSlug string) (*model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindCategoryPosts(ctx context.Context, categoryID uuid.UUID) ([]*model.PostListItem, error)
	Update(ctx context.Context, category model.Category) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.CommentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Reaction interface {
	Find(ctx context.Context, target model.ReactionTarget, authorID uuid.UUID) (*model.Reaction, error)
	Create(ctx context.Context, reaction model.Reaction) error
	UpdateType(ctx context.Context, id uuid.UUID, reactionType model.ReactionType) error
	Delete(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context, target model.ReactionTarget) (likes int64, dislikes int64, err error)
}

type Share interface {
	Create(ctx context.Context, share model.Share) error
	Totals(ctx context.Context, postID uuid.UUID) (*model.ShareTotals, error)
}

type User interface {
	Upsert(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type PostgresRepository struct {
	Post
	Category
	Comment
	Reaction
	Share
	User
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:     newPostRepo(db),
		Category: newCategoryRepo(db),
		Comment:  newCommentRepo(db),
		Reaction: newReactionRepo(db),
		Share:    newShareRepo(db),
		User:     newUserRepo(db),
	}
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation. Slug allocation and reaction toggling retry on it.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
