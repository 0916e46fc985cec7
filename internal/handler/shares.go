package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
)

func (h *Handler) postsShare(c *gin.Context) {
	user := h.getUserFromRequest(c)

	idOrSlug := strings.TrimSpace(c.Param("postID"))

	var input dto.ShareRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	share, err := h.services.Share.Record(c.Request.Context(), user, idOrSlug, model.SharePlatform(input.Platform))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, share)
}

func (h *Handler) postsShares(c *gin.Context) {
	idOrSlug := strings.TrimSpace(c.Param("postID"))

	totals, err := h.services.Share.Totals(c.Request.Context(), idOrSlug)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareTotalsResponse{Totals: *totals})
}
