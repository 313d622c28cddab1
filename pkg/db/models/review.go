package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer testimonial. New submissions land unapproved and stay
// hidden from the storefront until an admin approves them.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Message   string    `gorm:"column:message;not null"`
	Approved  bool      `gorm:"column:approved;not null;default:false"`
	Featured  bool      `gorm:"column:featured;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
