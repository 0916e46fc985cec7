package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/dto"
)

func (h *Handler) categoriesList(c *gin.Context) {
	categories, err := h.services.Category.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListCategoriesResponse{Data: categories})
}

func (h *Handler) categoriesGet(c *gin.Context) {
	idOrSlug := strings.TrimSpace(c.Param("categoryID"))

	category, err := h.services.Category.FindWithPosts(c.Request.Context(), idOrSlug)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) categoriesCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	var input dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdCategory, err := h.services.Category.Create(c.Request.Context(), *user, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryCreatedResponse{
		Message: "Category created",
		ID:      createdCategory.ID.String(),
		Slug:    createdCategory.Slug,
	})
}

func (h *Handler) categoriesUpdate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	categoryID, err := uuid.Parse(strings.TrimSpace(c.Param("categoryID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedCategory, err := h.services.Category.Update(c.Request.Context(), *user, categoryID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedCategory)
}

func (h *Handler) categoriesDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	categoryID, err := uuid.Parse(strings.TrimSpace(c.Param("categoryID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Category.Delete(c.Request.Context(), *user, categoryID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "category deleted"))
}
