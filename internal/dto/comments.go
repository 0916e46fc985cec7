package dto

import "github.com/inkpress/blog-service/internal/model"

type CreateCommentRequest struct {
	PostID   string  `json:"post_id" binding:"required,uuid"`
	Content  string  `json:"content" binding:"required,min=1"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

type EditCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

type ModerateCommentRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

type CommentsResponse struct {
	Count    int64                `json:"count"`
	Comments []*model.CommentNode `json:"comments"`
}
