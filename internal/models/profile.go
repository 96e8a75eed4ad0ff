package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the studio-facing identity data of a user, kept apart from the
// auth record so the back-office can manage it independently.
type Profile struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	GivenName       string         `json:"given_name" gorm:"not null"`
	PaternalSurname string         `json:"paternal_surname" gorm:"not null"`
	MaternalSurname string         `json:"maternal_surname"`
	RUT             string         `json:"rut" gorm:"column:rut;unique;not null"`
	Address         string         `json:"address"`
	Phone           string         `json:"phone"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
