package repository

import (
	"pilates_reserva/internal/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *models.ContactMessage) error
	GetByID(id uint) (*models.ContactMessage, error)
	GetAll(status string) ([]models.ContactMessage, error)
	Update(message *models.ContactMessage) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

func (r *contactRepository) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) GetAll(status string) ([]models.ContactMessage, error) {
	qs := r.db.Order("created_at DESC")
	if status != "" && status != "todos" {
		qs = qs.Where("status = ?", status)
	}
	var messages []models.ContactMessage
	err := qs.Find(&messages).Error
	return messages, err
}

func (r *contactRepository) Update(message *models.ContactMessage) error {
	return r.db.Save(message).Error
}
