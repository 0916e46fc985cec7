package mocks

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/repository"
	"github.com/inkpress/blog-service/internal/repository/postgres"
	"github.com/inkpress/blog-service/internal/repository/redisrepo"
)

// UniqueViolation mimics the error the postgres driver surfaces when an
// insert hits a unique index.
func UniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

// MockPostRepository is an in-memory implementation of postgres.Post.
type MockPostRepository struct {
	Posts      map[uuid.UUID]*model.Post
	Categories map[uuid.UUID][]uuid.UUID
	Authors    map[uuid.UUID]*model.User

	CreateFunc func(ctx context.Context, post model.Post, categoryIDs []uuid.UUID) (*model.Post, error)
	UpdateFunc func(ctx context.Context, post model.Post, categoryIDs []uuid.UUID, replaceCategories bool) error
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts:      make(map[uuid.UUID]*model.Post),
		Categories: make(map[uuid.UUID][]uuid.UUID),
		Authors:    make(map[uuid.UUID]*model.User),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post model.Post, categoryIDs []uuid.UUID) (*model.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post, categoryIDs)
	}
	for _, stored := range m.Posts {
		if stored.Slug == post.Slug {
			return nil, UniqueViolation()
		}
	}
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	stored := post
	m.Posts[post.ID] = &stored
	m.Categories[post.ID] = categoryIDs
	return &stored, nil
}

func (m *MockPostRepository) Find(ctx context.Context, filter postgres.PostFilter) ([]*model.PostListItem, error) {
	var items []*model.PostListItem
	for _, post := range m.Posts {
		if filter.Status != nil && post.Status != *filter.Status {
			continue
		}
		if filter.AuthorID != nil && (post.AuthorID == nil || *post.AuthorID != *filter.AuthorID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(post.Title), strings.ToLower(filter.Search)) {
			continue
		}
		items = append(items, &model.PostListItem{
			ID:          post.ID,
			Title:       post.Title,
			Slug:        post.Slug,
			Excerpt:     post.Content,
			CoverImage:  post.CoverImage,
			AuthorID:    post.AuthorID,
			Status:      post.Status,
			PublishedAt: post.PublishedAt,
			Views:       post.Views,
		})
	}
	return items, nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, ok := m.Posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *post
	return &found, nil
}

func (m *MockPostRepository) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*model.Post, error) {
	for _, post := range m.Posts {
		if post.Slug == idOrSlug || post.ID.String() == idOrSlug {
			found := *post
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MockPostRepository) FindForView(ctx context.Context, idOrSlug string) (*model.FullPost, error) {
	for _, post := range m.Posts {
		if post.Slug == idOrSlug || post.ID.String() == idOrSlug {
			post.Views++
			full := model.FullPost{Post: *post}
			if post.AuthorID != nil {
				if author, ok := m.Authors[*post.AuthorID]; ok {
					full.Author = model.UserAuthor{Name: &author.Name, AvatarURL: author.AvatarURL}
				}
			}
			return &full, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MockPostRepository) Update(ctx context.Context, post model.Post, categoryIDs []uuid.UUID, replaceCategories bool) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post, categoryIDs, replaceCategories)
	}
	stored, ok := m.Posts[post.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for _, other := range m.Posts {
		if other.ID != post.ID && other.Slug == post.Slug {
			return UniqueViolation()
		}
	}
	post.CreatedAt = stored.CreatedAt
	post.UpdatedAt = time.Now()
	updated := post
	m.Posts[post.ID] = &updated
	if replaceCategories {
		m.Categories[post.ID] = categoryIDs
	}
	return nil
}

func (m *MockPostRepository) Archive(ctx context.Context, id uuid.UUID) error {
	post, ok := m.Posts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	post.Status = model.PostArchived
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.Posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.Posts, id)
	delete(m.Categories, id)
	return nil
}

func (m *MockPostRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, post := range m.Posts {
		if excludeID != nil && post.ID == *excludeID {
			continue
		}
		if post.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// MockCategoryRepository is an in-memory implementation of postgres.Category.
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*model.Category
	Posts      map[uuid.UUID][]*model.PostListItem
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[uuid.UUID]*model.Category),
		Posts:      make(map[uuid.UUID][]*model.PostListItem),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category model.Category) (*model.Category, error) {
	for _, stored := range m.Categories {
		if stored.Slug == category.Slug || stored.Name == category.Name {
			return nil, UniqueViolation()
		}
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	stored := category
	m.Categories[category.ID] = &stored
	return &stored, nil
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]*model.CategoryWithCount, error) {
	var categories []*model.CategoryWithCount
	for _, category := range m.Categories {
		categories = append(categories, &model.CategoryWithCount{
			Category:  *category,
			PostCount: int64(len(m.Posts[category.ID])),
		})
	}
	return categories, nil
}

func (m *MockCategoryRepository) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*model.Category, error) {
	for _, category := range m.Categories {
		if category.Slug == idOrSlug || category.ID.String() == idOrSlug {
			found := *category
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *category
	return &found, nil
}

func (m *MockCategoryRepository) FindCategoryPosts(ctx context.Context, categoryID uuid.UUID) ([]*model.PostListItem, error) {
	return m.Posts[categoryID], nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category model.Category) error {
	if _, ok := m.Categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	for _, other := range m.Categories {
		if other.ID != category.ID && other.Slug == category.Slug {
			return UniqueViolation()
		}
	}
	updated := category
	m.Categories[category.ID] = &updated
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.Categories[id]; !ok {
		return false, nil
	}
	delete(m.Categories, id)
	delete(m.Posts, id)
	return true, nil
}

func (m *MockCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, category := range m.Categories {
		if excludeID != nil && category.ID == *excludeID {
			continue
		}
		if category.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// MockCommentRepository is an in-memory implementation of postgres.Comment.
// Order preserves insertion so listings come back creation-time ascending.
type MockCommentRepository struct {
	Comments map[uuid.UUID]*model.Comment
	Order    []uuid.UUID
	Authors  map[uuid.UUID]*model.User
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[uuid.UUID]*model.Comment),
		Authors:  make(map[uuid.UUID]*model.User),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()
	stored := comment
	m.Comments[comment.ID] = &stored
	m.Order = append(m.Order, comment.ID)
	return &stored, nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, ok := m.Comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *comment
	return &found, nil
}

func (m *MockCommentRepository) FindPostComments(ctx context.Context, postID uuid.UUID) ([]*model.FullComment, error) {
	var comments []*model.FullComment
	for _, id := range m.Order {
		comment, ok := m.Comments[id]
		if !ok || comment.PostID != postID {
			continue
		}
		full := model.FullComment{Comment: *comment}
		if comment.AuthorID != nil {
			if author, ok := m.Authors[*comment.AuthorID]; ok {
				full.Author = model.UserAuthor{Name: &author.Name, AvatarURL: author.AvatarURL}
			}
		}
		comments = append(comments, &full)
	}
	return comments, nil
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	comment, ok := m.Comments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	comment.Content = content
	return nil
}

func (m *MockCommentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.CommentStatus) error {
	comment, ok := m.Comments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	comment.Status = status
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.Comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.Comments, id)
	return nil
}

// MockReactionRepository is an in-memory implementation of postgres.Reaction.
type MockReactionRepository struct {
	Reactions map[uuid.UUID]*model.Reaction

	CreateFunc  func(ctx context.Context, reaction model.Reaction) error
	CreateCalls int
}

func NewMockReactionRepository() *MockReactionRepository {
	return &MockReactionRepository{
		Reactions: make(map[uuid.UUID]*model.Reaction),
	}
}

func sameTarget(reaction *model.Reaction, target model.ReactionTarget) bool {
	if target.PostID != nil {
		return reaction.PostID != nil && *reaction.PostID == *target.PostID
	}
	return reaction.CommentID != nil && *reaction.CommentID == *target.CommentID
}

func (m *MockReactionRepository) Find(ctx context.Context, target model.ReactionTarget, authorID uuid.UUID) (*model.Reaction, error) {
	for _, reaction := range m.Reactions {
		if reaction.AuthorID == authorID && sameTarget(reaction, target) {
			found := *reaction
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MockReactionRepository) Create(ctx context.Context, reaction model.Reaction) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reaction)
	}
	target := model.ReactionTarget{PostID: reaction.PostID, CommentID: reaction.CommentID}
	for _, stored := range m.Reactions {
		if stored.AuthorID == reaction.AuthorID && sameTarget(stored, target) {
			return UniqueViolation()
		}
	}
	if reaction.ID == uuid.Nil {
		reaction.ID = uuid.New()
	}
	reaction.CreatedAt = time.Now()
	stored := reaction
	m.Reactions[reaction.ID] = &stored
	return nil
}

func (m *MockReactionRepository) UpdateType(ctx context.Context, id uuid.UUID, reactionType model.ReactionType) error {
	reaction, ok := m.Reactions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	reaction.Type = reactionType
	return nil
}

func (m *MockReactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.Reactions, id)
	return nil
}

func (m *MockReactionRepository) Counts(ctx context.Context, target model.ReactionTarget) (int64, int64, error) {
	var likes, dislikes int64
	for _, reaction := range m.Reactions {
		if !sameTarget(reaction, target) {
			continue
		}
		if reaction.Type == model.ReactionLike {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

// MockShareRepository is an in-memory implementation of postgres.Share.
type MockShareRepository struct {
	Shares []*model.Share
}

func NewMockShareRepository() *MockShareRepository {
	return &MockShareRepository{}
}

func (m *MockShareRepository) Create(ctx context.Context, share model.Share) error {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	share.CreatedAt = time.Now()
	stored := share
	m.Shares = append(m.Shares, &stored)
	return nil
}

func (m *MockShareRepository) Totals(ctx context.Context, postID uuid.UUID) (*model.ShareTotals, error) {
	totals := &model.ShareTotals{PerPlatform: make(map[model.SharePlatform]int64)}
	for _, share := range m.Shares {
		if share.PostID != postID {
			continue
		}
		totals.Total++
		totals.PerPlatform[share.Platform]++
	}
	return totals, nil
}

// MockUserRepository is an in-memory implementation of postgres.User.
type MockUserRepository struct {
	Users map[uuid.UUID]*model.User
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[uuid.UUID]*model.User),
	}
}

func (m *MockUserRepository) Upsert(ctx context.Context, user model.User) error {
	stored := user
	m.Users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *user
	return &found, nil
}

// MockRedis is an in-memory implementation of redisrepo.Default.
type MockRedis struct {
	Data map[string]string
}

func NewMockRedis() *MockRedis {
	return &MockRedis{
		Data: make(map[string]string),
	}
}

func (m *MockRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.Data[key] = string(valueJSON)
	return nil
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := m.Data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (m *MockRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var deleted int64
	for _, key := range keys {
		if _, ok := m.Data[key]; ok {
			delete(m.Data, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

// Repositories bundles every mock behind the repository aggregate so service
// constructors can take it unchanged.
type Repositories struct {
	Post     *MockPostRepository
	Category *MockCategoryRepository
	Comment  *MockCommentRepository
	Reaction *MockReactionRepository
	Share    *MockShareRepository
	User     *MockUserRepository
	Redis    *MockRedis
}

func NewRepositories() *Repositories {
	return &Repositories{
		Post:     NewMockPostRepository(),
		Category: NewMockCategoryRepository(),
		Comment:  NewMockCommentRepository(),
		Reaction: NewMockReactionRepository(),
		Share:    NewMockShareRepository(),
		User:     NewMockUserRepository(),
		Redis:    NewMockRedis(),
	}
}

func (r *Repositories) Repository() *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post:     r.Post,
			Category: r.Category,
			Comment:  r.Comment,
			Reaction: r.Reaction,
			Share:    r.Share,
			User:     r.User,
		},
		Redis: &redisrepo.RedisRepository{
			Default: r.Redis,
		},
	}
}
