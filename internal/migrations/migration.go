package migrations

import (
	"errors"
	"log"

	"pilates_reserva/internal/config"
	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"gorm.io/gorm"
)

// RunMigrations migrates the schema and bootstraps the superuser account.
func RunMigrations(db *gorm.DB, cfg *config.Config) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ClassSession{},
		&models.ScheduleBlock{},
		&models.Reservation{},
		&models.ContactMessage{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db, cfg); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData creates the bootstrap superuser when missing.
func createDefaultData(db *gorm.DB, cfg *config.Config) error {
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	_, err := userRepo.GetByUsername(cfg.BootstrapAdminUser)
	if err == nil {
		log.Println("Superuser account already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Creating superuser account...")
	superuser := &models.User{
		Username:    cfg.BootstrapAdminUser,
		Email:       cfg.BootstrapAdminEmail,
		Role:        string(models.RoleAdmin),
		IsActive:    true,
		IsSuperuser: true,
	}
	if err := userService.CreateUser(superuser, cfg.BootstrapAdminPassword); err != nil {
		return err
	}
	log.Printf("Superuser created (username: %s)", cfg.BootstrapAdminUser)
	return nil
}
