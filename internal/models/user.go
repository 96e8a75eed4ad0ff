package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PasswordHash string         `json:"-" gorm:"column:password_hash"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Role         string         `json:"role" gorm:"default:'cliente'"` // cliente, administrador
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	IsSuperuser  bool           `json:"is_superuser" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type Role string

const (
	RoleClient Role = "cliente"
	RoleAdmin  Role = "administrador"
)

// IsAdmin reports whether the user may enter the back-office. Role comparison
// is case-insensitive; superusers always pass.
func (u *User) IsAdmin() bool {
	return u.IsSuperuser || strings.EqualFold(u.Role, string(RoleAdmin))
}

// HasUsablePassword reports whether the account can log in with a password.
// Admin-created accounts without a password store an empty hash.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != ""
}
