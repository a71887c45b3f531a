// Package router 负责HTTP路由注册
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/notedrop/notedrop/internal/handler"
	"github.com/notedrop/notedrop/internal/middleware"
)

// Handlers 路由所需的处理器集合
type Handlers struct {
	Note *handler.NoteHandler
	Tag  *handler.TagHandler
	Auth *handler.AuthHandler
}

// Setup 创建并配置Gin引擎
// 参数:
//   authMW - 认证中间件，保护/api/v1下除auth外的全部路由
//   handlers - 处理器集合
func Setup(authMW *middleware.AuthMiddleware, handlers Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.NewLoggerMiddleware().RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// 认证路由无需令牌
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", handlers.Auth.Login)
			authGroup.POST("/refresh", handlers.Auth.Refresh)
		}

		// 其余路由均要求有效身份
		protected := v1.Group("")
		protected.Use(authMW.RequireUser())
		{
			protected.GET("/notes", handlers.Note.ListNotes)
			protected.GET("/notes/today", handlers.Note.ListTodayNotes)
			protected.POST("/notes", handlers.Note.CreateNote)
			protected.PUT("/notes/:id", handlers.Note.UpdateNote)
			protected.DELETE("/notes/:id", handlers.Note.DeleteNote)

			protected.GET("/tags", handlers.Tag.ListTags)
			protected.GET("/mentions", handlers.Tag.ListMentions)
		}
	}

	return r
}
