package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ClassSession is a single dated, timed, capacity-bounded Pilates class.
// StartTime is stored as "HH:MM" so sessions sort naturally within a day.
type ClassSession struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Date        time.Time      `json:"date" gorm:"type:date;not null;index"`
	StartTime   string         `json:"start_time" gorm:"not null"`
	Capacity    int            `json:"capacity" gorm:"not null"`
	Instructor  string         `json:"instructor"`
	Description string         `json:"description" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type ClassType string

const (
	ClassReformer ClassType = "reformer"
	ClassMat      ClassType = "mat"
	ClassGroup    ClassType = "grupal"
)

// InferClassType derives the display type tag from a class name by substring
// match, defaulting to grupal when nothing matches.
func InferClassType(name string) ClassType {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "reformer"):
		return ClassReformer
	case strings.Contains(n, "mat"):
		return ClassMat
	default:
		return ClassGroup
	}
}
