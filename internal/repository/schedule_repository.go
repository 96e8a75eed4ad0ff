package repository

import (
	"pilates_reserva/internal/models"

	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Create(block *models.ScheduleBlock) error
	GetByID(id uint) (*models.ScheduleBlock, error)
	GetAll() ([]models.ScheduleBlock, error)
	GetByWeekday(weekday int, onlyActive bool) ([]models.ScheduleBlock, error)
	Update(block *models.ScheduleBlock) error
	Delete(id uint) error
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(block *models.ScheduleBlock) error {
	return r.db.Create(block).Error
}

func (r *scheduleRepository) GetByID(id uint) (*models.ScheduleBlock, error) {
	var block models.ScheduleBlock
	err := r.db.First(&block, id).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *scheduleRepository) GetAll() ([]models.ScheduleBlock, error) {
	var blocks []models.ScheduleBlock
	err := r.db.Order("weekday ASC, start_time ASC").Find(&blocks).Error
	return blocks, err
}

func (r *scheduleRepository) GetByWeekday(weekday int, onlyActive bool) ([]models.ScheduleBlock, error) {
	qs := r.db.Where("weekday = ?", weekday)
	if onlyActive {
		qs = qs.Where("is_active = ?", true)
	}
	var blocks []models.ScheduleBlock
	err := qs.Order("start_time ASC").Find(&blocks).Error
	return blocks, err
}

func (r *scheduleRepository) Update(block *models.ScheduleBlock) error {
	return r.db.Save(block).Error
}

func (r *scheduleRepository) Delete(id uint) error {
	return r.db.Delete(&models.ScheduleBlock{}, id).Error
}
