package services_test

import (
	"fmt"
	"testing"
	"time"

	"pilates_reserva/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB opens a fresh in-memory database per test and migrates the schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ClassSession{},
		&models.ScheduleBlock{},
		&models.Reservation{},
		&models.ContactMessage{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@test.cl",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createClass(t *testing.T, db *gorm.DB, name string, date time.Time, startTime string, capacity int) *models.ClassSession {
	t.Helper()

	class := &models.ClassSession{
		Name:       name,
		Date:       date,
		StartTime:  startTime,
		Capacity:   capacity,
		Instructor: "Carla Soto",
	}
	if err := db.Create(class).Error; err != nil {
		t.Fatalf("create class: %v", err)
	}
	return class
}

// dateFromToday returns today's date shifted by days, at midnight UTC, which
// is how the services compare calendar dates.
func dateFromToday(days int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}
