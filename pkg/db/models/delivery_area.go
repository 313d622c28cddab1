package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryArea is a serviced area with its flat delivery fee in LKR.
type DeliveryArea struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	District  string          `gorm:"column:district;not null;default:Matale;uniqueIndex:idx_delivery_areas_district_area"`
	Area      string          `gorm:"column:area;not null;uniqueIndex:idx_delivery_areas_district_area"`
	FeeLkr    decimal.Decimal `gorm:"column:fee_lkr;type:numeric(12,2);not null;default:0"`
	Active    bool            `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
