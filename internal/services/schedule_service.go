package services

import (
	"errors"
	"time"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
)

var (
	ErrInvalidRange     = errors.New("la fecha 'hasta' debe ser mayor o igual a 'desde'")
	ErrInvalidTimeRange = errors.New("la hora de fin debe ser mayor a la de inicio")
	ErrInvalidWeekday   = errors.New("día de semana fuera de rango")
)

// GenerateParams drives the block-to-class expansion over a date range.
type GenerateParams struct {
	From         time.Time
	To           time.Time
	OnlyActive   bool
	SkipExisting bool
	Name         string
	Description  string
}

// GenerateResult reports what the expansion did.
type GenerateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type ScheduleService interface {
	Create(block *models.ScheduleBlock) error
	GetByID(id uint) (*models.ScheduleBlock, error)
	GetAll() ([]models.ScheduleBlock, error)
	Update(block *models.ScheduleBlock) error
	Delete(id uint) error
	// Generate materializes class sessions from the weekly blocks over the
	// inclusive range. With SkipExisting set, a session matching an existing
	// one on date+start time+instructor is counted as skipped, which makes
	// repeated runs idempotent.
	Generate(params GenerateParams) (*GenerateResult, error)
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	classRepo    repository.ClassRepository
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, classRepo repository.ClassRepository) ScheduleService {
	return &scheduleService{scheduleRepo: scheduleRepo, classRepo: classRepo}
}

func validateBlock(block *models.ScheduleBlock) error {
	if block.Weekday < models.Monday || block.Weekday > models.Sunday {
		return ErrInvalidWeekday
	}
	if block.EndTime <= block.StartTime {
		return ErrInvalidTimeRange
	}
	if block.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}

func (s *scheduleService) Create(block *models.ScheduleBlock) error {
	if err := validateBlock(block); err != nil {
		return err
	}
	return s.scheduleRepo.Create(block)
}

func (s *scheduleService) GetByID(id uint) (*models.ScheduleBlock, error) {
	return s.scheduleRepo.GetByID(id)
}

func (s *scheduleService) GetAll() ([]models.ScheduleBlock, error) {
	return s.scheduleRepo.GetAll()
}

func (s *scheduleService) Update(block *models.ScheduleBlock) error {
	if err := validateBlock(block); err != nil {
		return err
	}
	return s.scheduleRepo.Update(block)
}

func (s *scheduleService) Delete(id uint) error {
	return s.scheduleRepo.Delete(id)
}

func (s *scheduleService) Generate(params GenerateParams) (*GenerateResult, error) {
	if params.To.Before(params.From) {
		return nil, ErrInvalidRange
	}
	name := params.Name
	if name == "" {
		name = "Clase de Pilates"
	}

	result := &GenerateResult{}
	for d := params.From; !d.After(params.To); d = d.AddDate(0, 0, 1) {
		blocks, err := s.scheduleRepo.GetByWeekday(models.WeekdayIndex(d), params.OnlyActive)
		if err != nil {
			return nil, err
		}
		for _, block := range blocks {
			if params.SkipExisting {
				exists, err := s.classRepo.ExistsAt(d, block.StartTime, block.Instructor)
				if err != nil {
					return nil, err
				}
				if exists {
					result.Skipped++
					continue
				}
			}
			class := &models.ClassSession{
				Name:        name,
				Date:        d,
				StartTime:   block.StartTime,
				Capacity:    block.Capacity,
				Instructor:  block.Instructor,
				Description: params.Description,
			}
			if err := s.classRepo.Create(class); err != nil {
				return nil, err
			}
			result.Created++
		}
	}
	return result, nil
}
