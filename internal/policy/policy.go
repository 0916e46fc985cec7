// Package policy centralizes every role and ownership decision. Handlers and
// services ask these functions instead of comparing role strings inline.
package policy

import (
	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/model"
)

// CanModify reports whether actor may edit or soft-delete a resource owned by
// ownerID. Owners always may; admins and editors may regardless of ownership.
// A nil ownerID (author account deleted) leaves only admins and editors.
func CanModify(actor *model.User, ownerID *uuid.UUID) bool {
	if actor == nil {
		return false
	}
	if actor.Role == model.RoleAdmin || actor.Role == model.RoleEditor {
		return true
	}
	return ownerID != nil && *ownerID == actor.ID
}

// CanHardDeletePost gates the irreversible delete. Ownership does not
// substitute for the admin role here.
func CanHardDeletePost(actor *model.User) bool {
	return actor != nil && actor.Role == model.RoleAdmin
}

// IsStaff reports whether actor holds a site-wide content role, admin or
// editor.
func IsStaff(actor *model.User) bool {
	if actor == nil {
		return false
	}
	return actor.Role == model.RoleAdmin || actor.Role == model.RoleEditor
}

// CanManageCategories covers category create, update and delete. Categories
// have no owner, so only the role matters.
func CanManageCategories(actor *model.User) bool {
	return IsStaff(actor)
}

// CanModerateComments gates comment status changes.
func CanModerateComments(actor *model.User) bool {
	return IsStaff(actor)
}

// CanListUnpublished gates listing drafts and archived posts across authors.
func CanListUnpublished(actor *model.User) bool {
	return IsStaff(actor)
}

// CanViewUnpublished reports whether actor may read a draft or archived post.
// A nil authorID (author account deleted) leaves only admins.
func CanViewUnpublished(actor *model.User, authorID *uuid.UUID) bool {
	if actor == nil {
		return false
	}
	if actor.Role == model.RoleAdmin {
		return true
	}
	return authorID != nil && actor.ID == *authorID
}

// CanTransition validates a post status change: draft may publish or archive,
// published may archive, nothing leaves archived. A no-op transition is
// always allowed.
func CanTransition(from, to model.PostStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case model.PostDraft:
		return to == model.PostPublished || to == model.PostArchived
	case model.PostPublished:
		return to == model.PostArchived
	default:
		return false
	}
}
