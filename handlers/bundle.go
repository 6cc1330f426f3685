package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// User endpoints
	RegisterUserHandler        gin.HandlerFunc
	AuthenticateUserHandler    gin.HandlerFunc
	GetUserHandler             gin.HandlerFunc
	UpdateFCMTokenHandler      gin.HandlerFunc
	DeleteUserHandler          gin.HandlerFunc
	RevokeUserAuthTokenHandler gin.HandlerFunc

	// Plant endpoints
	CreatePlantHandler   gin.HandlerFunc
	ListPlantsHandler    gin.HandlerFunc
	GetPlantHandler      gin.HandlerFunc
	UpdatePlantHandler   gin.HandlerFunc
	DeletePlantHandler   gin.HandlerFunc
	DiagnosePlantHandler gin.HandlerFunc

	// Reminder endpoints
	CreateReminderHandler    gin.HandlerFunc
	ListRemindersHandler     gin.HandlerFunc
	UpcomingRemindersHandler gin.HandlerFunc
	DueRemindersHandler      gin.HandlerFunc
	UpdateReminderHandler    gin.HandlerFunc
	CompleteReminderHandler  gin.HandlerFunc
	SnoozeReminderHandler    gin.HandlerFunc
	MarkNotifiedHandler      gin.HandlerFunc
	DeleteReminderHandler    gin.HandlerFunc

	// Weather endpoint
	GetWeatherHandler gin.HandlerFunc
}
