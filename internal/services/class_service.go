package services

import (
	"errors"
	"time"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
)

var ErrInvalidCapacity = errors.New("la capacidad debe ser mayor a cero")

// ClassAvailability is a class plus its live occupancy numbers.
type ClassAvailability struct {
	Class   models.ClassSession `json:"class"`
	Taken   int64               `json:"taken"`
	Free    int64               `json:"free"`
	HasRoom bool                `json:"has_room"`
}

type ClassService interface {
	Create(class *models.ClassSession) error
	GetByID(id uint) (*models.ClassSession, error)
	GetAll() ([]models.ClassSession, error)
	Update(class *models.ClassSession) error
	Delete(id uint) error
	// Available lists classes dated today or later with remaining capacity
	// figures (never negative).
	Available(today time.Time) ([]ClassAvailability, error)
}

type classService struct {
	classRepo       repository.ClassRepository
	reservationRepo repository.ReservationRepository
}

func NewClassService(classRepo repository.ClassRepository, reservationRepo repository.ReservationRepository) ClassService {
	return &classService{classRepo: classRepo, reservationRepo: reservationRepo}
}

func (s *classService) Create(class *models.ClassSession) error {
	if class.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return s.classRepo.Create(class)
}

func (s *classService) GetByID(id uint) (*models.ClassSession, error) {
	return s.classRepo.GetByID(id)
}

func (s *classService) GetAll() ([]models.ClassSession, error) {
	return s.classRepo.GetAll()
}

func (s *classService) Update(class *models.ClassSession) error {
	if class.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return s.classRepo.Update(class)
}

func (s *classService) Delete(id uint) error {
	return s.classRepo.Delete(id)
}

func (s *classService) Available(today time.Time) ([]ClassAvailability, error) {
	classes, err := s.classRepo.GetFromDate(today)
	if err != nil {
		return nil, err
	}

	items := make([]ClassAvailability, 0, len(classes))
	for _, c := range classes {
		taken, err := s.reservationRepo.CountActiveForClass(c.ID)
		if err != nil {
			return nil, err
		}
		free := int64(c.Capacity) - taken
		if free < 0 {
			free = 0
		}
		items = append(items, ClassAvailability{
			Class:   c,
			Taken:   taken,
			Free:    free,
			HasRoom: free > 0,
		})
	}
	return items, nil
}
