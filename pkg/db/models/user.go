package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the minimal identity row the engine references. Authentication
// lives outside this service; the row exists for foreign keys and display.
type User struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	UniversityEmail string    `gorm:"column:university_email;not null;uniqueIndex"`
	Campus          string    `gorm:"column:campus;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
