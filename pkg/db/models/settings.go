package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/surangaprinters/printshop-backend/pkg/types"
)

// Settings is the shop profile singleton. The service layer creates the row
// with defaults on first read.
type Settings struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopName    string            `gorm:"column:shop_name;not null;default:'Suranga Printers'"`
	Phone       string            `gorm:"column:phone;not null;default:''"`
	WhatsApp    string            `gorm:"column:whatsapp;not null;default:''"`
	Address     string            `gorm:"column:address;not null;default:''"`
	HoursMonSat string            `gorm:"column:hours_mon_sat;not null;default:''"`
	HoursSunday string            `gorm:"column:hours_sunday;not null;default:''"`
	Social      types.SocialLinks `gorm:"column:social;type:jsonb"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Settings) TableName() string {
	return "settings"
}
