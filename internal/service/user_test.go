package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/repository/redisrepo"
)

func TestUserService_Sync_MirrorsClaims(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	claims := testUser(model.RoleWriter)

	synced, err := services.User.Sync(ctx, claims)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if synced.ID != claims.ID || synced.Role != model.RoleWriter {
		t.Error("First sync should mirror the claims")
	}
	if _, ok := repos.User.Users[claims.ID]; !ok {
		t.Error("Sync should persist the mirror row")
	}
	if _, ok := repos.Redis.Data[redisrepo.UserKey(claims.ID.String())]; !ok {
		t.Error("Sync should cache the mirror")
	}

	// A role change in the claims rewrites the mirror.
	claims.Role = model.RoleEditor
	synced, err = services.User.Sync(ctx, claims)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if synced.Role != model.RoleEditor {
		t.Errorf("Expected mirrored role editor, got %q", synced.Role)
	}
	if repos.User.Users[claims.ID].Role != model.RoleEditor {
		t.Error("Role drift should rewrite the stored mirror")
	}
}

func TestUserService_Sync_ServesUnchangedFromCache(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	claims := testUser(model.RoleUser)

	if _, err := services.User.Sync(ctx, claims); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	// Remove the store row; an unchanged sync must not need it.
	delete(repos.User.Users, claims.ID)

	synced, err := services.User.Sync(ctx, claims)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if synced.ID != claims.ID {
		t.Error("Unchanged claims should be served from the cache")
	}
}

func TestUserService_FindByID(t *testing.T) {
	services, repos := newTestService()
	ctx := context.Background()
	claims := testUser(model.RoleUser)

	if _, err := services.User.FindByID(ctx, uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not-found for unknown user, got %v", err)
	}

	if err := repos.User.Upsert(ctx, claims); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	found, err := services.User.FindByID(ctx, claims.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.ID != claims.ID {
		t.Error("FindByID should return the stored user")
	}
	if _, ok := repos.Redis.Data[redisrepo.UserKey(claims.ID.String())]; !ok {
		t.Error("FindByID should cache the user")
	}
}
