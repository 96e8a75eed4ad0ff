package models

import (
	"time"

	"gorm.io/gorm"
)

// Weekday convention for schedule blocks: Monday=0 .. Sunday=6.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

// ScheduleBlock is a recurring weekly template from which class sessions are
// generated. It is never itself bookable.
type ScheduleBlock struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Weekday    int            `json:"weekday" gorm:"not null"` // Monday=0 .. Sunday=6
	StartTime  string         `json:"start_time" gorm:"not null"`
	EndTime    string         `json:"end_time" gorm:"not null"`
	Instructor string         `json:"instructor"`
	Capacity   int            `json:"capacity" gorm:"default:10"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// WeekdayName returns the Spanish display name for the block's weekday.
func (b *ScheduleBlock) WeekdayName() string {
	if b.Weekday < 0 || b.Weekday > 6 {
		return ""
	}
	return weekdayNames[b.Weekday]
}

// WeekdayIndex maps a calendar date to the Monday=0 convention used by blocks.
func WeekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
