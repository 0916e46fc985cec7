package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/dto"
)

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), *user, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PostCreatedResponse{
		Message: "Post created",
		ID:      createdPost.ID.String(),
		Slug:    createdPost.Slug,
	})
}

func (h *Handler) postsList(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var query dto.ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	posts, err := h.services.Post.Find(c.Request.Context(), user, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListPostsResponse{
		Data:  posts,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

func (h *Handler) postsGet(c *gin.Context) {
	user := h.getUserFromRequest(c)

	idOrSlug := strings.TrimSpace(c.Param("postID"))

	post, err := h.services.Post.FindForView(c.Request.Context(), user, idOrSlug)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedPost, err := h.services.Post.Update(c.Request.Context(), *user, postID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedPost)
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := uuid.Parse(strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	hard := c.Query("hard") == "true"

	if err := h.services.Post.Delete(c.Request.Context(), *user, postID, hard); err != nil {
		respondError(c, err)
		return
	}

	if hard {
		c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post deleted"))
		return
	}
	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post archived"))
}
