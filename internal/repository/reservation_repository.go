package repository

import (
	"errors"
	"pilates_reserva/internal/models"
	"time"

	"gorm.io/gorm"
)

// Booking guard outcomes. The checks run inside BookClass so a decision and
// its insert share one transaction.
var (
	ErrClassFull     = errors.New("class has no remaining capacity")
	ErrAlreadyBooked = errors.New("user already holds a reservation for this class")
	ErrSlotTaken     = errors.New("user already holds a reservation in this slot")
)

// ReservationFilter narrows the back-office reservation listing.
type ReservationFilter struct {
	Status   string // empty or "todas" = all
	Query    string // matches the client's username or names
	Page     int
	PageSize int
}

type ReservationRepository interface {
	Create(reservation *models.Reservation) error
	GetByID(id uint) (*models.Reservation, error)
	GetByUser(userID uint) ([]models.Reservation, error)
	Search(filter ReservationFilter) ([]models.Reservation, int64, error)
	CountActiveForClass(classID uint) (int64, error)
	HasActiveForUserClass(userID, classID uint) (bool, error)
	HasSlot(userID uint, date time.Time, startTime string) (bool, error)
	BookClass(userID uint, class *models.ClassSession, classType string) (*models.Reservation, error)
	UpdateStatus(id uint, status string) error
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(reservation *models.Reservation) error {
	return r.db.Create(reservation).Error
}

func (r *reservationRepository) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.Preload("User").Preload("ClassSession").First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) GetByUser(userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.Preload("ClassSession").
		Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) Search(filter ReservationFilter) ([]models.Reservation, int64, error) {
	qs := r.db.Model(&models.Reservation{})

	if filter.Status != "" && filter.Status != "todas" {
		qs = qs.Where("LOWER(status) = LOWER(?)", filter.Status)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		qs = qs.Joins("JOIN users ON users.id = reservations.user_id").
			Where(
				"LOWER(users.username) LIKE LOWER(?) OR LOWER(users.first_name) LIKE LOWER(?) OR LOWER(users.last_name) LIKE LOWER(?)",
				like, like, like,
			)
	}

	var total int64
	if err := qs.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 10
	}

	var reservations []models.Reservation
	err := qs.Preload("User").Preload("ClassSession").
		Order("reservations.id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&reservations).Error
	return reservations, total, err
}

func (r *reservationRepository) CountActiveForClass(classID uint) (int64, error) {
	return countActiveForClass(r.db, classID)
}

func countActiveForClass(db *gorm.DB, classID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Reservation{}).
		Where("class_session_id = ? AND status <> ?", classID, string(models.ReservationCancelled)).
		Count(&count).Error
	return count, err
}

func (r *reservationRepository) HasActiveForUserClass(userID, classID uint) (bool, error) {
	return hasActiveForUserClass(r.db, userID, classID)
}

func hasActiveForUserClass(db *gorm.DB, userID, classID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Reservation{}).
		Where("user_id = ? AND class_session_id = ? AND status <> ?",
			userID, classID, string(models.ReservationCancelled)).
		Count(&count).Error
	return count > 0, err
}

func (r *reservationRepository) HasSlot(userID uint, date time.Time, startTime string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Reservation{}).
		Where("user_id = ? AND date = ? AND start_time = ?", userID, date, startTime).
		Count(&count).Error
	return count > 0, err
}

// BookClass runs the capacity and duplicate checks and the insert in a single
// transaction. The partial unique index on (user_id, class_session_id) backs
// the duplicate check if two requests slip through concurrently.
func (r *reservationRepository) BookClass(userID uint, class *models.ClassSession, classType string) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		taken, err := countActiveForClass(tx, class.ID)
		if err != nil {
			return err
		}
		if taken >= int64(class.Capacity) {
			return ErrClassFull
		}

		booked, err := hasActiveForUserClass(tx, userID, class.ID)
		if err != nil {
			return err
		}
		if booked {
			return ErrAlreadyBooked
		}

		classID := class.ID
		reservation = &models.Reservation{
			UserID:         userID,
			ClassSessionID: &classID,
			Type:           classType,
			Date:           class.Date,
			StartTime:      class.StartTime,
			Status:         string(models.ReservationConfirmed),
		}
		return tx.Create(reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *reservationRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Reservation{}).Where("id = ?", id).Update("status", status).Error
}
