package models

import (
	"time"
)

type ContactStatus string

const (
	ContactPending   ContactStatus = "pendiente"
	ContactReviewed  ContactStatus = "revisado"
	ContactResponded ContactStatus = "respondido"
)

// ValidContactStatus reports whether s belongs to the closed triage set.
func ValidContactStatus(s string) bool {
	switch ContactStatus(s) {
	case ContactPending, ContactReviewed, ContactResponded:
		return true
	}
	return false
}

// ContactMessage is a public contact-form submission triaged by an admin.
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"default:'pendiente'"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
