package model

import (
	"time"

	"github.com/google/uuid"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

func (t ReactionType) Valid() bool {
	return t == ReactionLike || t == ReactionDislike
}

// Reaction rows carry exactly one of PostID/CommentID; the store enforces at
// most one row per (author, target) with partial unique indexes.
type Reaction struct {
	ID        uuid.UUID    `json:"id"`
	PostID    *uuid.UUID   `json:"post_id"`
	CommentID *uuid.UUID   `json:"comment_id"`
	AuthorID  uuid.UUID    `json:"author_id"`
	Type      ReactionType `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}

// ReactionTarget is the application-boundary form of the post-or-comment
// target. Exactly one field must be set.
type ReactionTarget struct {
	PostID    *uuid.UUID
	CommentID *uuid.UUID
}

func PostTarget(id uuid.UUID) ReactionTarget {
	return ReactionTarget{PostID: &id}
}

func CommentTarget(id uuid.UUID) ReactionTarget {
	return ReactionTarget{CommentID: &id}
}

func (t ReactionTarget) Valid() bool {
	return (t.PostID != nil) != (t.CommentID != nil)
}

type ReactionCounts struct {
	Likes        int64         `json:"likes"`
	Dislikes     int64         `json:"dislikes"`
	UserReaction *ReactionType `json:"user_reaction"`
}
