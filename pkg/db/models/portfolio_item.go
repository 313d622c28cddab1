package models

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioItem is a showcased piece of finished work.
type PortfolioItem struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Category      string    `gorm:"column:category;not null;default:General"`
	Tag           string    `gorm:"column:tag;not null;default:''"`
	Description   string    `gorm:"column:description;not null;default:''"`
	ImageURL      string    `gorm:"column:image_url;not null"`
	ImagePublicID string    `gorm:"column:image_public_id;not null"`
	Featured      bool      `gorm:"column:featured;not null;default:false"`
	Active        bool      `gorm:"column:active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
