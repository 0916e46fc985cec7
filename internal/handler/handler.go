package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/inkpress/blog-service/internal/model"
	"github.com/inkpress/blog-service/internal/service"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.GET("/me", h.authMiddleware, h.authMe)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", h.optionalAuthMiddleware, h.postsList)
			posts.POST("", h.authMiddleware, h.postsCreate)

			post := posts.Group("/:postID")
			{
				post.GET("", h.optionalAuthMiddleware, h.postsGet)
				post.PUT("", h.authMiddleware, h.postsUpdate)
				post.DELETE("", h.authMiddleware, h.postsDelete)

				post.POST("/reactions", h.authMiddleware, h.postsReact)
				post.GET("/reactions", h.optionalAuthMiddleware, h.postsReactions)

				post.POST("/share", h.optionalAuthMiddleware, h.postsShare)
				post.GET("/shares", h.postsShares)
			}
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", h.categoriesList)
			categories.POST("", h.authMiddleware, h.categoriesCreate)

			category := categories.Group("/:categoryID")
			{
				category.GET("", h.categoriesGet)
				category.PUT("", h.authMiddleware, h.categoriesUpdate)
				category.DELETE("", h.authMiddleware, h.categoriesDelete)
			}
		}

		comments := v1.Group("/comments")
		{
			comments.POST("", h.authMiddleware, h.commentsCreate)

			postComments := comments.Group("/:postID")
			{
				postComments.GET("", h.optionalAuthMiddleware, h.commentsForPost)

				comment := postComments.Group("/:commentID")
				{
					comment.PUT("", h.authMiddleware, h.commentsEdit)
					comment.DELETE("", h.authMiddleware, h.commentsDelete)
					comment.PATCH("/status", h.authMiddleware, h.commentsModerate)

					// Reactions resolve the comment by id alone; the post
					// segment is routing context only.
					comment.POST("/reactions", h.authMiddleware, h.commentsReact)
					comment.GET("/reactions", h.optionalAuthMiddleware, h.commentsReactions)
				}
			}
		}
	}

	return r
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}
