package routes

import (
	"net/http"
	"time"

	"verdant/handlers"
	"verdant/middleware"
	"verdant/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.GetUserHandler)
		api.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
		api.DELETE("/me", hb.DeleteUserHandler)
		api.DELETE("/me/token", hb.RevokeUserAuthTokenHandler)
	}
}

// RegisterPlantRoutes registers plant collection endpoints.
func RegisterPlantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/plants")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreatePlantHandler)
		api.GET("", hb.ListPlantsHandler)
		api.GET("/:id", hb.GetPlantHandler)
		api.PUT("/:id", hb.UpdatePlantHandler)
		api.DELETE("/:id", hb.DeletePlantHandler)
		api.POST("/:id/diagnose", hb.DiagnosePlantHandler)
	}
}

// RegisterReminderRoutes registers the reminder lifecycle endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateReminderHandler)
		api.GET("", hb.ListRemindersHandler)
		api.GET("/upcoming", hb.UpcomingRemindersHandler)
		api.GET("/due", hb.DueRemindersHandler)
		api.PUT("/:id", hb.UpdateReminderHandler)
		api.PUT("/:id/complete", hb.CompleteReminderHandler)
		api.PUT("/:id/snooze", hb.SnoozeReminderHandler)
		api.PUT("/:id/notified", hb.MarkNotifiedHandler)
		api.DELETE("/:id", hb.DeleteReminderHandler)
	}
}

// RegisterWeatherRoutes registers the weather passthrough endpoint.
func RegisterWeatherRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/weather")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.GetWeatherHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterPlantRoutes(r, hb)
	RegisterReminderRoutes(r, hb)
	RegisterWeatherRoutes(r, hb)
	RegisterHealthRoute(r)
}
