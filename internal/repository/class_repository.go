package repository

import (
	"pilates_reserva/internal/models"
	"time"

	"gorm.io/gorm"
)

type ClassRepository interface {
	Create(class *models.ClassSession) error
	GetByID(id uint) (*models.ClassSession, error)
	GetAll() ([]models.ClassSession, error)
	GetFromDate(from time.Time) ([]models.ClassSession, error)
	GetBetween(from, to time.Time, nameContains string, limit int) ([]models.ClassSession, error)
	DistinctNamesFrom(from time.Time) ([]string, error)
	ExistsAt(date time.Time, startTime, instructor string) (bool, error)
	Update(class *models.ClassSession) error
	Delete(id uint) error
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(class *models.ClassSession) error {
	return r.db.Create(class).Error
}

func (r *classRepository) GetByID(id uint) (*models.ClassSession, error) {
	var class models.ClassSession
	err := r.db.First(&class, id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) GetAll() ([]models.ClassSession, error) {
	var classes []models.ClassSession
	err := r.db.Order("date DESC, start_time ASC").Find(&classes).Error
	return classes, err
}

func (r *classRepository) GetFromDate(from time.Time) ([]models.ClassSession, error) {
	var classes []models.ClassSession
	err := r.db.Where("date >= ?", from).
		Order("date ASC, start_time ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepository) GetBetween(from, to time.Time, nameContains string, limit int) ([]models.ClassSession, error) {
	qs := r.db.Where("date >= ? AND date <= ?", from, to)
	if nameContains != "" {
		qs = qs.Where("LOWER(name) LIKE LOWER(?)", "%"+nameContains+"%")
	}
	var classes []models.ClassSession
	err := qs.Order("date ASC, start_time ASC").Limit(limit).Find(&classes).Error
	return classes, err
}

func (r *classRepository) DistinctNamesFrom(from time.Time) ([]string, error) {
	var names []string
	err := r.db.Model(&models.ClassSession{}).
		Where("date >= ?", from).
		Distinct("name").
		Pluck("name", &names).Error
	return names, err
}

func (r *classRepository) ExistsAt(date time.Time, startTime, instructor string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ClassSession{}).
		Where("date = ? AND start_time = ? AND instructor = ?", date, startTime, instructor).
		Count(&count).Error
	return count > 0, err
}

func (r *classRepository) Update(class *models.ClassSession) error {
	return r.db.Save(class).Error
}

func (r *classRepository) Delete(id uint) error {
	return r.db.Delete(&models.ClassSession{}, id).Error
}
