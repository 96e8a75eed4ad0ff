package main

import (
	"fmt"
	"log"

	"pilates_reserva/internal/config"
	"pilates_reserva/internal/database"
	"pilates_reserva/internal/migrations"
	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
)

// init-db drops and recreates the schema, then seeds the superuser and a
// starter weekly schedule. Meant for local development only.
func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Profile{},
		&models.ClassSession{},
		&models.ScheduleBlock{},
		&models.Reservation{},
		&models.ContactMessage{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db, cfg); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Seeding starter schedule blocks...")
	scheduleRepo := repository.NewScheduleRepository(db)
	starter := []models.ScheduleBlock{
		{Weekday: models.Monday, StartTime: "09:00", EndTime: "10:00", Instructor: "Carla Soto", Capacity: 10, IsActive: true},
		{Weekday: models.Monday, StartTime: "18:00", EndTime: "19:00", Instructor: "Carla Soto", Capacity: 10, IsActive: true},
		{Weekday: models.Wednesday, StartTime: "09:00", EndTime: "10:00", Instructor: "María Paz Rojas", Capacity: 8, IsActive: true},
		{Weekday: models.Friday, StartTime: "18:00", EndTime: "19:00", Instructor: "María Paz Rojas", Capacity: 8, IsActive: true},
		{Weekday: models.Saturday, StartTime: "10:00", EndTime: "11:00", Instructor: "Carla Soto", Capacity: 12, IsActive: true},
	}
	for i := range starter {
		if err := scheduleRepo.Create(&starter[i]); err != nil {
			log.Printf("Warning: Failed to seed schedule block: %v", err)
		}
	}

	fmt.Println("Database initialized successfully!")
	fmt.Printf("Superuser: %s / %s\n", cfg.BootstrapAdminUser, cfg.BootstrapAdminPassword)
}
