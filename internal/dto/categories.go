package dto

import "github.com/inkpress/blog-service/internal/model"

type CreateCategoryRequest struct {
	Name string  `json:"name" binding:"required,min=1"`
	Slug *string `json:"slug"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1"`
	Slug *string `json:"slug"`
}

type CategoryCreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Slug    string `json:"slug"`
}

type ListCategoriesResponse struct {
	Data []*model.CategoryWithCount `json:"data"`
}

type CategoryPostsResponse struct {
	Category *model.Category       `json:"category"`
	Posts    []*model.PostListItem `json:"posts"`
}
