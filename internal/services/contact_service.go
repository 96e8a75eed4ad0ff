package services

import (
	"errors"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
)

var ErrInvalidContactStatus = errors.New("estado de mensaje no válido")

type ContactService interface {
	Submit(message *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	List(status string) ([]models.ContactMessage, error)
	// Triage updates the status and admin comment of a message.
	Triage(id uint, status, comment string) (*models.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(message *models.ContactMessage) error {
	message.Status = string(models.ContactPending)
	return s.contactRepo.Create(message)
}

func (s *contactService) GetByID(id uint) (*models.ContactMessage, error) {
	return s.contactRepo.GetByID(id)
}

func (s *contactService) List(status string) ([]models.ContactMessage, error) {
	return s.contactRepo.GetAll(status)
}

func (s *contactService) Triage(id uint, status, comment string) (*models.ContactMessage, error) {
	if !models.ValidContactStatus(status) {
		return nil, ErrInvalidContactStatus
	}
	message, err := s.contactRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	message.Status = status
	message.Comment = comment
	if err := s.contactRepo.Update(message); err != nil {
		return nil, err
	}
	return message, nil
}
