package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is one entry in the print shop's public catalog.
type Service struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string    `gorm:"column:name;not null"`
	Category          string    `gorm:"column:category;not null;default:General"`
	Description       string    `gorm:"column:description;not null;default:''"`
	HeroImage         string    `gorm:"column:hero_image;not null;default:''"`
	HeroImagePublicID string    `gorm:"column:hero_image_public_id;not null;default:''"`
	Featured          bool      `gorm:"column:featured;not null;default:false"`
	Active            bool      `gorm:"column:active;not null;default:true"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
