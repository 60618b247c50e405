package router

import (
	"luminate/internal/handlers"
	"luminate/internal/middleware"
	"luminate/internal/store"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the REST surface. LoadUser runs on everything so
// public routes can still personalize; AuthRequired gates mutations.
func RegisterRoutes(r *gin.Engine, st store.Store) {
	r.Use(middleware.LoadUser(st))

	authHandler := handlers.NewAuthHandler(st)
	postHandler := handlers.NewPostHandler(st)
	commentHandler := handlers.NewCommentHandler(st)
	topicHandler := handlers.NewTopicHandler(st)
	trendingHandler := handlers.NewTrendingHandler(st)
	courseHandler := handlers.NewCourseHandler(st)
	dashboardHandler := handlers.NewDashboardHandler(st)
	notificationHandler := handlers.NewNotificationHandler(st)
	aiHandler := handlers.NewAIHandler(st)

	api := r.Group("/api")

	// Auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Public community surface
	api.GET("/community/posts", postHandler.List)
	api.GET("/community/posts/:id", postHandler.Get)
	api.GET("/community/posts/:id/comments", commentHandler.List)
	api.GET("/community/topics", topicHandler.List)

	// Trending
	api.GET("/trending/topics", trendingHandler.Topics)
	api.GET("/trending/ticker", trendingHandler.Ticker)

	// Courses
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)

	// AI content listing is public, generation is not
	api.GET("/ai/content", aiHandler.ListContent)

	// Protected routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/auth/me", authHandler.Me)

		authorized.POST("/community/posts", postHandler.Create)
		authorized.PATCH("/community/posts/:id", postHandler.Edit)
		authorized.DELETE("/community/posts/:id", postHandler.Delete)
		authorized.POST("/community/posts/:id/like", postHandler.Like)
		authorized.DELETE("/community/posts/:id/like", postHandler.Unlike)

		authorized.POST("/community/posts/:id/comments", commentHandler.Create)
		authorized.PATCH("/community/comments/:id", commentHandler.Edit)
		authorized.POST("/community/comments/:id/like", commentHandler.Like)
		authorized.DELETE("/community/comments/:id/like", commentHandler.Unlike)
		authorized.DELETE("/community/comments/:id", commentHandler.Delete)

		authorized.POST("/community/topics/:id/interest", topicHandler.Follow)
		authorized.DELETE("/community/topics/:id/interest", topicHandler.Unfollow)

		authorized.POST("/courses/:id/enroll", courseHandler.Enroll)
		authorized.PATCH("/courses/:id/progress", courseHandler.UpdateProgress)

		authorized.GET("/dashboard", dashboardHandler.Overview)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)

		authorized.POST("/ai/generate", aiHandler.Generate)
	}
}
