package main

import (
	"log"
	"time"

	"pilates_reserva/internal/config"
	"pilates_reserva/internal/database"
	"pilates_reserva/internal/handlers"
	"pilates_reserva/internal/middleware"
	"pilates_reserva/internal/migrations"
	"pilates_reserva/internal/redis"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db, cfg); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	contactRepo := repository.NewContactRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	classService := services.NewClassService(classRepo, reservationRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, classRepo)
	reservationService := services.NewReservationService(reservationRepo, classRepo)
	contactService := services.NewContactService(contactRepo)
	profileService := services.NewProfileService(profileRepo)
	chatbotService := services.NewChatbotService(classRepo, redisClient, cfg)

	sessionTTL := time.Duration(cfg.SessionTTL) * time.Second

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, redisClient, sessionTTL)
	clientHandler := handlers.NewClientHandler(classService, reservationService)
	adminHandler := handlers.NewAdminHandler(classService, scheduleService, reservationService, userService, profileService, contactService)
	publicHandler := handlers.NewPublicHandler(classService, contactService, chatbotService)

	// Setup routes
	router := gin.Default()

	// Public site
	router.GET("/", publicHandler.Landing)
	router.GET("/clases/", publicHandler.Landing)
	router.POST("/contacto/", publicHandler.SubmitContact)
	router.POST("/api/chat/", publicHandler.Chat)

	// Auth
	router.POST("/login/", authHandler.Login)
	router.POST("/login/registro/", authHandler.Register)
	router.POST("/login/logout/", authHandler.Logout)

	// Client panel
	client := router.Group("/usuarios", middleware.RequireAuth(redisClient, sessionTTL))
	{
		client.GET("/clases-disponibles/", clientHandler.AvailableClasses)
		client.POST("/clases/:id/reservar/", clientHandler.BookClass)
		client.POST("/reservas/manual/", clientHandler.BookManual)
		client.GET("/mis-reservas/", clientHandler.MyReservations)
		client.GET("/mis-reservas/:id/", clientHandler.ReservationDetail)
		client.POST("/mis-reservas/:id/cancelar/", clientHandler.CancelReservation)
	}

	// Back-office
	admin := router.Group("/administrador", middleware.RequireAuth(redisClient, sessionTTL), middleware.RequireAdmin())
	{
		admin.GET("/clases/", adminHandler.ListClasses)
		admin.POST("/clases/", adminHandler.CreateClass)
		admin.GET("/clases/:id/", adminHandler.GetClass)
		admin.PUT("/clases/:id/", adminHandler.UpdateClass)
		admin.DELETE("/clases/:id/", adminHandler.DeleteClass)

		admin.GET("/horarios/", adminHandler.ListScheduleBlocks)
		admin.POST("/horarios/", adminHandler.CreateScheduleBlock)
		admin.PUT("/horarios/:id/", adminHandler.UpdateScheduleBlock)
		admin.DELETE("/horarios/:id/", adminHandler.DeleteScheduleBlock)
		admin.POST("/horarios/generar/", adminHandler.GenerateClasses)

		admin.GET("/reservas/", adminHandler.ListReservations)
		admin.POST("/reservas/:id/estado/", adminHandler.ChangeReservationStatus)

		admin.GET("/usuarios/", adminHandler.ListUsers)
		admin.POST("/usuarios/", adminHandler.CreateUser)
		admin.PUT("/usuarios/:id/", adminHandler.UpdateUser)
		admin.POST("/usuarios/:id/toggle-activo/", adminHandler.ToggleUserActive)

		admin.GET("/perfiles/", adminHandler.ListProfiles)
		admin.POST("/perfiles/", adminHandler.CreateProfile)
		admin.PUT("/perfiles/:id/", adminHandler.UpdateProfile)
		admin.DELETE("/perfiles/:id/", adminHandler.DeleteProfile)

		admin.GET("/contactos/", adminHandler.ListContacts)
		admin.PUT("/contactos/:id/", adminHandler.TriageContact)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
