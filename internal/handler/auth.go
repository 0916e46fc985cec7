package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/blog-service/internal/dto"
)

func (h *Handler) authMe(c *gin.Context) {
	user := h.getUserFromRequest(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	c.JSON(http.StatusOK, user)
}
