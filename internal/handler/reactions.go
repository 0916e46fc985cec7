package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
)

func (h *Handler) postsReact(c *gin.Context) {
	h.react(c, "postID", model.PostTarget)
}

func (h *Handler) postsReactions(c *gin.Context) {
	h.reactionCounts(c, "postID", model.PostTarget)
}

func (h *Handler) commentsReact(c *gin.Context) {
	h.react(c, "commentID", model.CommentTarget)
}

func (h *Handler) commentsReactions(c *gin.Context) {
	h.reactionCounts(c, "commentID", model.CommentTarget)
}

func (h *Handler) react(c *gin.Context, param string, target func(uuid.UUID) model.ReactionTarget) {
	user := h.getUserFromRequest(c)

	targetID, err := uuid.Parse(strings.TrimSpace(c.Param(param)))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input dto.ReactionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	counts, err := h.services.Reaction.React(c.Request.Context(), *user, target(targetID), model.ReactionType(input.Type))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReactionResponse{
		Ok:       true,
		Likes:    counts.Likes,
		Dislikes: counts.Dislikes,
	})
}

func (h *Handler) reactionCounts(c *gin.Context, param string, target func(uuid.UUID) model.ReactionTarget) {
	user := h.getUserFromRequest(c)

	targetID, err := uuid.Parse(strings.TrimSpace(c.Param(param)))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	counts, err := h.services.Reaction.Counts(c.Request.Context(), user, target(targetID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
