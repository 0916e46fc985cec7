package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/repository/redisrepo"
)

func TestCategoryService_Create_RoleGate(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()

	for _, role := range []model.Role{model.RoleWriter, model.RoleUser} {
		if _, err := services.Category.Create(ctx, testUser(role), dto.CreateCategoryRequest{Name: "Tech"}); !errors.Is(err, apperror.ErrForbidden) {
			t.Errorf("Role %s should not create categories, got %v", role, err)
		}
	}

	editor := testUser(model.RoleEditor)
	created, err := services.Category.Create(ctx, editor, dto.CreateCategoryRequest{Name: "Tech & Gadgets"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Slug != "tech-gadgets" {
		t.Errorf("Expected slug tech-gadgets, got %q", created.Slug)
	}
}

func TestCategoryService_Create_SlugLadder(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()
	admin := testUser(model.RoleAdmin)

	if _, err := services.Category.Create(ctx, admin, dto.CreateCategoryRequest{Name: "News"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	second, err := services.Category.Create(ctx, admin, dto.CreateCategoryRequest{
		Name: "News Weekly",
		Slug: strPtr("News"),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.Slug != "news-1" {
		t.Errorf("Expected slug news-1, got %q", second.Slug)
	}
}

func TestCategoryService_FindAll_CachesAndInvalidates(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	admin := testUser(model.RoleAdmin)

	if _, err := services.Category.Create(ctx, admin, dto.CreateCategoryRequest{Name: "First"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	categories, err := services.Category.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(categories))
	}
	if _, ok := repos.Redis.Data[redisrepo.CategoriesKey()]; !ok {
		t.Error("Listing should populate the cache")
	}

	if _, err := services.Category.Create(ctx, admin, dto.CreateCategoryRequest{Name: "Second"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, ok := repos.Redis.Data[redisrepo.CategoriesKey()]; ok {
		t.Error("A write should invalidate the cached listing")
	}

	categories, err = services.Category.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("Expected 2 categories after invalidation, got %d", len(categories))
	}
}

func TestCategoryService_FindWithPosts(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	admin := testUser(model.RoleAdmin)

	category, err := services.Category.Create(ctx, admin, dto.CreateCategoryRequest{Name: "Guides"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	repos.Category.Posts[category.ID] = []*model.PostListItem{
		{ID: uuid.New(), Title: "Guide One", Slug: "guide-one", Status: model.PostPublished},
	}

	bySlug, err := services.Category.FindWithPosts(ctx, "guides")
	if err != nil {
		t.Fatalf("FindWithPosts failed: %v", err)
	}
	if bySlug.Category.ID != category.ID || len(bySlug.Posts) != 1 {
		t.Error("Slug lookup should return the category and its posts")
	}

	byID, err := services.Category.FindWithPosts(ctx, category.ID.String())
	if err != nil {
		t.Fatalf("FindWithPosts failed: %v", err)
	}
	if byID.Category.ID != category.ID {
		t.Error("ID lookup should resolve the same category")
	}

	if _, err := services.Category.FindWithPosts(ctx, "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not-found for unknown category, got %v", err)
	}
}

func TestCategoryService_UpdateAndDelete(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	admin := testUser(model.RoleAdmin)
	writer := testUser(model.RoleWriter)

	category, err := services.Category.Create(ctx, admin, dto.CreateCategoryRequest{Name: "Old Name"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := services.Category.Update(ctx, writer, category.ID, dto.UpdateCategoryRequest{Name: strPtr("Nope")}); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Expected forbidden for writer update, got %v", err)
	}

	updated, err := services.Category.Update(ctx, admin, category.ID, dto.UpdateCategoryRequest{Name: strPtr("New Name")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Slug != "new-name" {
		t.Errorf("Renaming should reslug, got %q", updated.Slug)
	}

	if err := services.Category.Delete(ctx, admin, uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not-found deleting unknown category, got %v", err)
	}

	if err := services.Category.Delete(ctx, admin, category.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := repos.Category.Categories[category.ID]; ok {
		t.Error("Delete should remove the category")
	}
}
