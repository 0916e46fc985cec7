package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inkpress/blog-service/internal/dto"
	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/pkg/utils"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	user, err := h.userFromRequestHeader(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("user", *user)

	c.Next()
}

func (h *Handler) optionalAuthMiddleware(c *gin.Context) {
	user, err := h.userFromRequestHeader(c)
	if err == nil {
		c.Set("user", *user)
	}

	c.Next()
}

func (h *Handler) userFromRequestHeader(c *gin.Context) (*model.User, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errNotAuthorized
	}

	accessToken := strings.TrimPrefix(header, "Bearer ")
	if accessToken == "" {
		return nil, errNotAuthorized
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, errNotAuthorized
	}

	user, err := userFromClaims(claims)
	if err != nil {
		return nil, err
	}

	// The identity provider owns the account; mirror it locally so joins and
	// role checks see current claims.
	return h.services.User.Sync(c.Request.Context(), *user)
}

func userFromClaims(claims jwt.MapClaims) (*model.User, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, errNotAuthorized
	}

	role, ok := claims["role"].(string)
	if !ok || !model.Role(role).Valid() {
		return nil, errNotAuthorized
	}

	user := model.User{
		ID:   id,
		Role: model.Role(role),
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if avatarURL, ok := claims["avatar_url"].(string); ok {
		user.AvatarURL = &avatarURL
	}

	return &user, nil
}
