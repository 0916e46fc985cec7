package model

import "github.com/google/uuid"

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CategoryWithCount struct {
	Category
	PostCount int64 `json:"post_count"`
}
