package policy

import (
	"testing"

	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/model"
)

func userWithRole(role model.Role) *model.User {
	return &model.User{ID: uuid.New(), Role: role}
}

func TestCanModify(t *testing.T) {
	owner := userWithRole(model.RoleUser)

	cases := []struct {
		name  string
		actor *model.User
		owner *uuid.UUID
		want  bool
	}{
		{"owner with plain role", owner, &owner.ID, true},
		{"non-owner user", userWithRole(model.RoleUser), &owner.ID, false},
		{"non-owner writer", userWithRole(model.RoleWriter), &owner.ID, false},
		{"non-owner editor", userWithRole(model.RoleEditor), &owner.ID, true},
		{"non-owner admin", userWithRole(model.RoleAdmin), &owner.ID, true},
		{"anonymous", nil, &owner.ID, false},
		{"orphaned resource, plain role", userWithRole(model.RoleUser), nil, false},
		{"orphaned resource, editor", userWithRole(model.RoleEditor), nil, true},
	}

	for _, tc := range cases {
		if got := CanModify(tc.actor, tc.owner); got != tc.want {
			t.Errorf("%s: CanModify = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOwnerCanModifyForAnyRole(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleEditor, model.RoleWriter, model.RoleUser} {
		actor := userWithRole(role)
		if !CanModify(actor, &actor.ID) {
			t.Errorf("owner with role %s should be able to modify own resource", role)
		}
	}
}

func TestCanHardDeletePost(t *testing.T) {
	if !CanHardDeletePost(userWithRole(model.RoleAdmin)) {
		t.Error("admin should hard-delete")
	}
	for _, role := range []model.Role{model.RoleEditor, model.RoleWriter, model.RoleUser} {
		if CanHardDeletePost(userWithRole(role)) {
			t.Errorf("role %s should not hard-delete", role)
		}
	}
	if CanHardDeletePost(nil) {
		t.Error("anonymous should not hard-delete")
	}
}

func TestIsStaff(t *testing.T) {
	if !IsStaff(userWithRole(model.RoleAdmin)) || !IsStaff(userWithRole(model.RoleEditor)) {
		t.Error("admin and editor are staff")
	}
	if IsStaff(userWithRole(model.RoleWriter)) || IsStaff(userWithRole(model.RoleUser)) || IsStaff(nil) {
		t.Error("writer, user and anonymous are not staff")
	}
}

func TestCanViewUnpublished(t *testing.T) {
	author := userWithRole(model.RoleWriter)

	cases := []struct {
		name     string
		actor    *model.User
		authorID *uuid.UUID
		want     bool
	}{
		{"author", author, &author.ID, true},
		{"other writer", userWithRole(model.RoleWriter), &author.ID, false},
		{"editor", userWithRole(model.RoleEditor), &author.ID, false},
		{"admin", userWithRole(model.RoleAdmin), &author.ID, true},
		{"anonymous", nil, &author.ID, false},
		{"orphaned post, writer", author, nil, false},
		{"orphaned post, admin", userWithRole(model.RoleAdmin), nil, true},
	}

	for _, tc := range cases {
		if got := CanViewUnpublished(tc.actor, tc.authorID); got != tc.want {
			t.Errorf("%s: CanViewUnpublished = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanManageCategories(t *testing.T) {
	if !CanManageCategories(userWithRole(model.RoleAdmin)) || !CanManageCategories(userWithRole(model.RoleEditor)) {
		t.Error("admin and editor should manage categories")
	}
	if CanManageCategories(userWithRole(model.RoleWriter)) || CanManageCategories(userWithRole(model.RoleUser)) || CanManageCategories(nil) {
		t.Error("writer, user and anonymous should not manage categories")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to model.PostStatus
		want     bool
	}{
		{model.PostDraft, model.PostPublished, true},
		{model.PostDraft, model.PostArchived, true},
		{model.PostPublished, model.PostArchived, true},
		{model.PostPublished, model.PostDraft, false},
		{model.PostArchived, model.PostDraft, false},
		{model.PostArchived, model.PostPublished, false},
		{model.PostDraft, model.PostDraft, true},
		{model.PostArchived, model.PostArchived, true},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
