package model

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

// Post.AuthorID is nullable: deleting a user mirror leaves their posts with
// no author rather than dangling references.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	AuthorID    *uuid.UUID `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	CoverImage  *string    `json:"cover_image"`
	Status      PostStatus `json:"status"`
	Views       int64      `json:"views"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type FullPost struct {
	Post   Post       `json:"post"`
	Author UserAuthor `json:"author"`
}

// PostListItem is the listing projection: a content excerpt instead of the
// full body, plus the resolved author name.
type PostListItem struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  *string    `json:"cover_image"`
	AuthorID    *uuid.UUID `json:"author_id"`
	AuthorName  *string    `json:"author_name"`
	Status      PostStatus `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	Views       int64      `json:"views"`
}
