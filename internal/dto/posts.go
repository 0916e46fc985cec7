package dto

import "github.com/inkpress/blog-service/internal/model"

type CreatePostRequest struct {
	Title      string   `json:"title" binding:"required,min=1"`
	Content    string   `json:"content" binding:"required,min=1"`
	Slug       *string  `json:"slug"`
	CoverImage *string  `json:"cover_image" binding:"omitempty,url"`
	Categories []string `json:"categories" binding:"omitempty,dive,uuid"`
	Status     *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
}

type UpdatePostRequest struct {
	Title      *string  `json:"title" binding:"omitempty,min=1"`
	Content    *string  `json:"content" binding:"omitempty,min=1"`
	Slug       *string  `json:"slug"`
	CoverImage *string  `json:"cover_image" binding:"omitempty,url"`
	Categories []string `json:"categories" binding:"omitempty,dive,uuid"`
	Status     *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
}

type ListPostsQuery struct {
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit      int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Q          string `form:"q"`
	Status     string `form:"status" binding:"omitempty,oneof=draft published archived"`
	AuthorID   string `form:"authorId" binding:"omitempty,uuid"`
	CategoryID string `form:"categoryId" binding:"omitempty,uuid"`
}

type PostCreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Slug    string `json:"slug"`
}

type ListPostsResponse struct {
	Data  []*model.PostListItem `json:"data"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
