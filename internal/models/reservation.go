package models

import (
	"time"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "Confirmada"
	ReservationPending   ReservationStatus = "Pendiente"
	ReservationCancelled ReservationStatus = "Cancelada"
	ReservationCompleted ReservationStatus = "Completada"
)

// ValidReservationStatus reports whether s belongs to the closed status set.
func ValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationConfirmed, ReservationPending, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// Reservation links one user to at most one class session. ClassSessionID is
// nullable so legacy free-form bookings (type/date/hour only) keep working.
// The partial unique index is the safety net behind the duplicate guard: one
// non-cancelled reservation per (user, class).
type Reservation struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	UserID         uint          `json:"user_id" gorm:"not null;index:idx_reservations_user_class,unique,where:status <> 'Cancelada'"`
	User           *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ClassSessionID *uint         `json:"class_session_id" gorm:"index:idx_reservations_user_class,unique"`
	ClassSession   *ClassSession `json:"class_session,omitempty" gorm:"foreignKey:ClassSessionID"`
	Type           string        `json:"type"` // reformer, mat, grupal
	Date           time.Time     `json:"date" gorm:"type:date;not null"`
	StartTime      string        `json:"start_time" gorm:"not null"`
	EndTime        *string       `json:"end_time"`
	Status         string        `json:"status" gorm:"default:'Confirmada'"`
	CreatedAt      time.Time     `json:"created_at"`
}
