package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/mocks"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/service"
)

func newTestService() (*service.Service, *mocks.Repositories) {
	repos := mocks.NewRepositories()
	return service.New(zap.NewNop(), repos.Repository()), repos
}

func testUser(role model.Role) model.User {
	return model.User{
		ID:    uuid.New(),
		Email: string(role) + "@test.com",
		Name:  "Test " + string(role),
		Role:  role,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestPostService_Create_SlugLadder(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	first, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Hello World",
		Content: "first",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first.Slug != "hello-world" {
		t.Errorf("Expected slug hello-world, got %q", first.Slug)
	}
	if first.AuthorID == nil || *first.AuthorID != writer.ID {
		t.Error("Created post should carry the actor as author")
	}

	second, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Hello, World!",
		Content: "second",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.Slug != "hello-world-1" {
		t.Errorf("Expected slug hello-world-1, got %q", second.Slug)
	}

	third, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "HELLO WORLD",
		Content: "third",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if third.Slug != "hello-world-2" {
		t.Errorf("Expected slug hello-world-2, got %q", third.Slug)
	}
}

func TestPostService_Create_RetriesOnSlugRace(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	// First insert loses the race; the retry re-probes and succeeds.
	calls := 0
	repos.Post.CreateFunc = func(ctx context.Context, post model.Post, categoryIDs []uuid.UUID) (*model.Post, error) {
		calls++
		if calls == 1 {
			return nil, mocks.UniqueViolation()
		}
		repos.Post.CreateFunc = nil
		return repos.Post.Create(ctx, post, categoryIDs)
	}

	created, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Race",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 insert attempts, got %d", calls)
	}
	if created.Slug != "race" {
		t.Errorf("Expected slug race, got %q", created.Slug)
	}
}

func TestPostService_Create_ConflictAfterRetryBound(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	// Every insert loses the slug race; the retry loop must give up with a
	// conflict instead of spinning forever.
	calls := 0
	repos.Post.CreateFunc = func(ctx context.Context, post model.Post, categoryIDs []uuid.UUID) (*model.Post, error) {
		calls++
		return nil, mocks.UniqueViolation()
	}

	_, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Contested",
		Content: "body",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Expected conflict after exhausted retries, got %v", err)
	}
	if calls != 20 {
		t.Errorf("Expected 20 insert attempts before giving up, got %d", calls)
	}
}

func TestPostService_Create_PublishedSetsPublishedAt(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	draft, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Draft",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if draft.Status != model.PostDraft {
		t.Errorf("Expected default status draft, got %q", draft.Status)
	}
	if draft.PublishedAt != nil {
		t.Error("Draft should not carry a publication time")
	}

	published, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Live",
		Content: "body",
		Status:  strPtr("published"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if published.PublishedAt == nil {
		t.Error("Published post should carry a publication time")
	}
}

func TestPostService_Update_PublishedAtSetOnce(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	post, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Once",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	published, err := services.Post.Update(ctx, writer, post.ID, dto.UpdatePostRequest{
		Status: strPtr("published"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("Publishing should set the publication time")
	}
	firstPublishedAt := *published.PublishedAt

	// A later content edit must not move the publication time.
	edited, err := services.Post.Update(ctx, writer, post.ID, dto.UpdatePostRequest{
		Content: strPtr("revised body"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if edited.PublishedAt == nil || !edited.PublishedAt.Equal(firstPublishedAt) {
		t.Error("Publication time changed on a content edit")
	}

	stored := repos.Post.Posts[post.ID]
	if stored.Content != "revised body" {
		t.Errorf("Expected stored content to update, got %q", stored.Content)
	}
}

func TestPostService_Update_ArchivedIsTerminal(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	post, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Ends",
		Content: "body",
		Status:  strPtr("archived"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = services.Post.Update(ctx, writer, post.ID, dto.UpdatePostRequest{
		Status: strPtr("published"),
	})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Expected validation error for archived -> published, got %v", err)
	}
}

func TestPostService_Update_ForbiddenForStranger(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()
	owner := testUser(model.RoleWriter)
	stranger := testUser(model.RoleWriter)

	post, err := services.Post.Create(ctx, owner, dto.CreatePostRequest{
		Title:   "Mine",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = services.Post.Update(ctx, stranger, post.ID, dto.UpdatePostRequest{
		Title: strPtr("Theirs"),
	})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Expected forbidden for another writer, got %v", err)
	}

	editor := testUser(model.RoleEditor)
	if _, err := services.Post.Update(ctx, editor, post.ID, dto.UpdatePostRequest{
		Title: strPtr("Edited"),
	}); err != nil {
		t.Errorf("Editor should be allowed to update: %v", err)
	}
}

func TestPostService_Delete_SoftArchivesHardRemoves(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	post, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Gone",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := services.Post.Delete(ctx, writer, post.ID, false); err != nil {
		t.Fatalf("Soft delete failed: %v", err)
	}
	if repos.Post.Posts[post.ID].Status != model.PostArchived {
		t.Error("Soft delete should archive the post")
	}

	if err := services.Post.Delete(ctx, writer, post.ID, true); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Expected forbidden for writer hard delete, got %v", err)
	}

	editor := testUser(model.RoleEditor)
	if err := services.Post.Delete(ctx, editor, post.ID, true); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Expected forbidden for editor hard delete, got %v", err)
	}

	admin := testUser(model.RoleAdmin)
	if err := services.Post.Delete(ctx, admin, post.ID, true); err != nil {
		t.Fatalf("Admin hard delete failed: %v", err)
	}
	if _, ok := repos.Post.Posts[post.ID]; ok {
		t.Error("Hard delete should remove the row")
	}
}

func TestPostService_FindForView_HidesUnpublished(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	post, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Hidden",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := services.Post.FindForView(ctx, nil, post.Slug); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Anonymous reader should get not-found for a draft, got %v", err)
	}

	stranger := testUser(model.RoleWriter)
	if _, err := services.Post.FindForView(ctx, &stranger, post.Slug); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Another writer should get not-found for a draft, got %v", err)
	}

	if _, err := services.Post.FindForView(ctx, &writer, post.Slug); err != nil {
		t.Errorf("Owner should read own draft: %v", err)
	}

	if _, err := services.Post.Update(ctx, writer, post.ID, dto.UpdatePostRequest{
		Status: strPtr("published"),
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	viewsBefore := repos.Post.Posts[post.ID].Views
	full, err := services.Post.FindForView(ctx, nil, post.Slug)
	if err != nil {
		t.Fatalf("FindForView failed: %v", err)
	}
	if full.Post.Views != viewsBefore+1 {
		t.Errorf("Expected view counter %d, got %d", viewsBefore+1, full.Post.Views)
	}
}

func TestPostService_Find_StatusFilterIsStaffOnly(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)

	if _, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Public",
		Content: "body",
		Status:  strPtr("published"),
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := services.Post.Create(ctx, writer, dto.CreatePostRequest{
		Title:   "Pending",
		Content: "body",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	posts, err := services.Post.Find(ctx, nil, dto.ListPostsQuery{})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("Expected 1 published post, got %d", len(posts))
	}
	if posts[0].Title != "Public" {
		t.Errorf("Expected the published post, got %q", posts[0].Title)
	}

	if _, err := services.Post.Find(ctx, &writer, dto.ListPostsQuery{Status: "draft"}); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Writer draft listing should be forbidden, got %v", err)
	}

	editor := testUser(model.RoleEditor)
	drafts, err := services.Post.Find(ctx, &editor, dto.ListPostsQuery{Status: "draft"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(drafts) != 1 {
		t.Errorf("Expected 1 draft for editor, got %d", len(drafts))
	}
}
