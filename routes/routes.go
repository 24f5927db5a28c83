// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"rct-connect-api/config"
	"rct-connect-api/controllers"
	"rct-connect-api/middleware"
	"rct-connect-api/models"
	"rct-connect-api/services"
)

// SetupCORS returns the CORS middleware used by the mobile frontend.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	stravaService := services.NewStravaService(cfg)

	// Controllers
	notificationController := controllers.NewNotificationController(db)
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	eventController := controllers.NewEventController(db, notificationController, emailService)
	chatController := controllers.NewChatController(db)
	postController := controllers.NewPostController(db, notificationController)
	commentController := controllers.NewCommentController(db, notificationController)
	calculatorController := controllers.NewCalculatorController(db)
	stravaController := controllers.NewStravaController(db, stravaService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/me", authController.Me)

		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.GET("/statistics", userController.GetStatistics)
		}

		// Event routes
		events := protected.Group("/events")
		{
			events.GET("", eventController.GetEvents)
			events.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoach), eventController.CreateEvent)
			events.GET("/joined", eventController.GetJoinedEvents)
			events.GET("/created", eventController.GetCreatedEvents)
			events.GET("/:id", eventController.GetEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/join", eventController.JoinEvent)
			events.DELETE("/:id/leave", eventController.LeaveEvent)
			events.GET("/:id/participants", eventController.GetParticipants)

			// Companion chat group, gated on membership
			events.GET("/:id/group", chatController.GetEventGroup)
			events.GET("/:id/messages", chatController.GetEventMessages)
			events.POST("/:id/messages", chatController.SendEventMessage)
			events.GET("/:id/members", chatController.GetEventMembers)
		}

		// General-purpose chat groups
		chat := protected.Group("/chat")
		{
			chat.GET("/groups", chatController.GetMyGroups)
			chat.POST("/groups", chatController.CreateGroup)
			chat.GET("/groups/:id/messages", chatController.GetGroupMessages)
			chat.POST("/groups/:id/messages", chatController.SendGroupMessage)
			chat.GET("/groups/:id/members", chatController.GetGroupMembers)
		}

		// Post routes
		posts := protected.Group("/posts")
		{
			posts.GET("", postController.GetPosts)
			posts.POST("", postController.CreatePost)
			posts.GET("/:id", postController.GetPost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.POST("/:id/like", postController.LikePost)
			posts.DELETE("/:id/unlike", postController.UnlikePost)
			posts.GET("/:id/comments", commentController.GetComments)
			posts.POST("/:id/comments", commentController.CreateComment)
			posts.DELETE("/:id/comments/:commentId", commentController.DeleteComment)
		}

		// Notification routes
		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)
			notifications.DELETE("/:id", notificationController.DeleteNotification)
		}

		// Calculator routes
		calculator := protected.Group("/calculator")
		{
			calculator.POST("/calories", calculatorController.CalculateCalories)
			calculator.POST("/save", calculatorController.SaveCalculation)
			calculator.GET("/history", calculatorController.GetHistory)
			calculator.DELETE("/history", calculatorController.ClearHistory)
		}

		// Strava routes
		strava := protected.Group("/strava")
		{
			strava.POST("/connect", stravaController.Connect)
			strava.GET("/status", stravaController.Status)
			strava.DELETE("/disconnect", stravaController.Disconnect)
			strava.GET("/activities", stravaController.GetActivities)
		}
	}
}
