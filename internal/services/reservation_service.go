package services

import (
	"errors"
	"time"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
)

var (
	ErrPastClass     = errors.New("no es posible reservar una clase en el pasado")
	ErrInvalidType   = errors.New("selecciona un tipo de clase válido")
	ErrInvalidDay    = errors.New("la fecha debe ser de lunes a sábado")
	ErrInvalidHour   = errors.New("selecciona una hora válida")
	ErrInvalidStatus = errors.New("estado de reserva no válido")
	ErrNotOwner      = errors.New("la reserva no pertenece al usuario")
)

// Fixed hour grid for the legacy free-form booking flow.
var (
	morningHours   = []string{"07:00", "08:00", "09:00", "10:00", "11:00", "12:30"}
	afternoonHours = []string{"16:00", "17:00", "18:00", "19:00", "20:00"}
)

func allowedHour(hour string) bool {
	for _, h := range morningHours {
		if h == hour {
			return true
		}
	}
	for _, h := range afternoonHours {
		if h == hour {
			return true
		}
	}
	return false
}

func validManualType(t string) bool {
	switch models.ClassType(t) {
	case models.ClassReformer, models.ClassMat, models.ClassGroup:
		return true
	}
	return false
}

// MyReservations splits a user's bookings the way the client dashboard shows
// them: upcoming first, then history.
type MyReservations struct {
	Upcoming       []models.Reservation `json:"upcoming"`
	History        []models.Reservation `json:"history"`
	TotalUpcoming  int                  `json:"total_upcoming"`
	TotalHistory   int                  `json:"total_history"`
	TotalCancelled int                  `json:"total_cancelled"`
}

type ReservationService interface {
	// Book applies the capacity/duplicate guard and creates a confirmed
	// reservation for the class.
	Book(userID, classID uint) (*models.Reservation, error)
	// BookManual is the legacy free-form flow: fixed type/hour grid,
	// Monday-Saturday only, one reservation per slot.
	BookManual(userID uint, classType, dateStr, hour string) (*models.Reservation, error)
	ListForUser(userID uint) (*MyReservations, error)
	GetForUser(userID, reservationID uint) (*models.Reservation, error)
	// Cancel marks the user's reservation cancelled. Cancelling an already
	// cancelled reservation reports alreadyCancelled and no error.
	Cancel(userID, reservationID uint) (alreadyCancelled bool, err error)
	Search(filter repository.ReservationFilter) ([]models.Reservation, int64, error)
	ChangeStatus(reservationID uint, status string) error
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	classRepo       repository.ClassRepository
}

func NewReservationService(reservationRepo repository.ReservationRepository, classRepo repository.ClassRepository) ReservationService {
	return &reservationService{reservationRepo: reservationRepo, classRepo: classRepo}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *reservationService) Book(userID, classID uint) (*models.Reservation, error) {
	class, err := s.classRepo.GetByID(classID)
	if err != nil {
		return nil, err
	}
	if class.Date.Before(today()) {
		return nil, ErrPastClass
	}
	classType := string(models.InferClassType(class.Name))
	return s.reservationRepo.BookClass(userID, class, classType)
}

func (s *reservationService) BookManual(userID uint, classType, dateStr, hour string) (*models.Reservation, error) {
	if !validManualType(classType) {
		return nil, ErrInvalidType
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return nil, ErrInvalidDay
	}
	if models.WeekdayIndex(date) > models.Saturday {
		return nil, ErrInvalidDay
	}
	if !allowedHour(hour) {
		return nil, ErrInvalidHour
	}

	taken, err := s.reservationRepo.HasSlot(userID, date, hour)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrSlotTaken
	}

	start, _ := time.Parse("15:04", hour)
	end := start.Add(time.Hour).Format("15:04")

	reservation := &models.Reservation{
		UserID:    userID,
		Type:      classType,
		Date:      date,
		StartTime: hour,
		EndTime:   &end,
		Status:    string(models.ReservationConfirmed),
	}
	if err := s.reservationRepo.Create(reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) ListForUser(userID uint) (*MyReservations, error) {
	all, err := s.reservationRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	out := &MyReservations{
		Upcoming: []models.Reservation{},
		History:  []models.Reservation{},
	}
	now := today()
	for _, r := range all {
		if r.Status == string(models.ReservationCancelled) {
			out.TotalCancelled++
		}
		active := r.Status == string(models.ReservationConfirmed) ||
			r.Status == string(models.ReservationPending)
		if r.Date.After(now) || (r.Date.Equal(now) && active) {
			out.Upcoming = append(out.Upcoming, r)
		} else {
			out.History = append(out.History, r)
		}
	}
	out.TotalUpcoming = len(out.Upcoming)
	out.TotalHistory = len(out.History)
	return out, nil
}

func (s *reservationService) GetForUser(userID, reservationID uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != userID {
		return nil, ErrNotOwner
	}
	return reservation, nil
}

func (s *reservationService) Cancel(userID, reservationID uint) (bool, error) {
	reservation, err := s.GetForUser(userID, reservationID)
	if err != nil {
		return false, err
	}
	if reservation.Status == string(models.ReservationCancelled) {
		return true, nil
	}
	return false, s.reservationRepo.UpdateStatus(reservation.ID, string(models.ReservationCancelled))
}

func (s *reservationService) Search(filter repository.ReservationFilter) ([]models.Reservation, int64, error) {
	return s.reservationRepo.Search(filter)
}

func (s *reservationService) ChangeStatus(reservationID uint, status string) error {
	if !models.ValidReservationStatus(status) {
		return ErrInvalidStatus
	}
	if _, err := s.reservationRepo.GetByID(reservationID); err != nil {
		return err
	}
	return s.reservationRepo.UpdateStatus(reservationID, status)
}
