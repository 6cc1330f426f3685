package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"verdant/config"
	"verdant/cron"
	"verdant/database"
	plantRepoPkg "verdant/database/repository/plant"
	reminderRepoPkg "verdant/database/repository/reminder"
	userRepoPkg "verdant/database/repository/user"
	"verdant/handlers"
	"verdant/middleware"
	"verdant/routes"
	"verdant/services/intelligence"
	"verdant/services/notification"
	"verdant/services/plant"
	"verdant/services/reminder"
	"verdant/services/user"
	"verdant/services/weather"
	"verdant/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	if config.AppConfig.FirebaseCreds != "" {
		utils.FirebaseInit()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	plantRepo := plantRepoPkg.NewMongoPlantRepo()
	reminderRepo := reminderRepoPkg.NewMongoReminderRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	plantService := &plant.DefaultPlantService{Repo: plantRepo}
	reminderService := &reminder.DefaultReminderService{
		Repo:   reminderRepo,
		Plants: plantRepo,
	}
	weatherService := weather.NewDefaultWeatherService()

	var diagnosisService intelligence.DiagnosisService
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		svc, err := intelligence.NewGeminiDiagnosisService(key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize diagnosis service: %v", err)
		}
		diagnosisService = svc
	}

	var push notification.PushSender
	if utils.FCMClient != nil {
		push = notification.FCMPushSender{}
	}
	emailSender := notification.NewResendEmailSender(config.AppConfig.ResendAPIKey, config.AppConfig.EmailFrom)
	notificationService, err := notification.NewDefaultNotificationService(emailSender, push)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	// background jobs: delivery worker plus the due-reminder scan.
	cron.InitReminderWorker(notificationService)

	scanCtx, scanCancel := context.WithCancel(context.Background())
	defer scanCancel()
	scan := &cron.ReminderScan{
		Reminders:  reminderRepo,
		Users:      userRepo,
		Plants:     plantRepo,
		Dispatcher: cron.NewAsynqDispatcher(),
		Interval:   time.Duration(config.AppConfig.ScanIntervalMinutes) * time.Minute,
	}
	go scan.Run(scanCtx)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// handlers.
	userHandler := handlers.NewUserHandler(userService)
	plantHandler := handlers.NewPlantHandler(plantService, diagnosisService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	weatherHandler := handlers.NewWeatherHandler(weatherService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// User endpoints.
		RegisterUserHandler:        userHandler.RegisterUserHandler,
		AuthenticateUserHandler:    userHandler.AuthenticateUserHandler,
		GetUserHandler:             userHandler.GetUserHandler,
		UpdateFCMTokenHandler:      userHandler.UpdateFCMTokenHandler,
		DeleteUserHandler:          userHandler.DeleteUserHandler,
		RevokeUserAuthTokenHandler: userHandler.RevokeUserAuthTokenHandler,

		// Plant endpoints.
		CreatePlantHandler:   plantHandler.CreatePlantHandler,
		ListPlantsHandler:    plantHandler.ListPlantsHandler,
		GetPlantHandler:      plantHandler.GetPlantHandler,
		UpdatePlantHandler:   plantHandler.UpdatePlantHandler,
		DeletePlantHandler:   plantHandler.DeletePlantHandler,
		DiagnosePlantHandler: plantHandler.DiagnosePlantHandler,

		// Reminder endpoints.
		CreateReminderHandler:    reminderHandler.CreateReminderHandler,
		ListRemindersHandler:     reminderHandler.ListRemindersHandler,
		UpcomingRemindersHandler: reminderHandler.UpcomingRemindersHandler,
		DueRemindersHandler:      reminderHandler.DueRemindersHandler,
		UpdateReminderHandler:    reminderHandler.UpdateReminderHandler,
		CompleteReminderHandler:  reminderHandler.CompleteReminderHandler,
		SnoozeReminderHandler:    reminderHandler.SnoozeReminderHandler,
		MarkNotifiedHandler:      reminderHandler.MarkNotifiedHandler,
		DeleteReminderHandler:    reminderHandler.DeleteReminderHandler,

		// Weather endpoint.
		GetWeatherHandler: weatherHandler.GetWeatherHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	scanCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
