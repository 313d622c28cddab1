package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/surangaprinters/printshop-backend/pkg/enums"
)

// Quote is a customer quote request moving through the fulfillment workflow.
type Quote struct {
	ID             uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName   string                `gorm:"column:customer_name;not null"`
	Phone          string                `gorm:"column:phone;not null"`
	ContactMethod  enums.ContactMethod   `gorm:"column:contact_method;not null;default:WhatsApp"`
	ServiceName    string                `gorm:"column:service_name;not null"`
	Quantity       int                   `gorm:"column:quantity;not null;default:1"`
	Size           string                `gorm:"column:size;not null;default:''"`
	Color          string                `gorm:"column:color;not null;default:''"`
	Paper          string                `gorm:"column:paper;not null;default:''"`
	Finishing      string                `gorm:"column:finishing;not null;default:''"`
	Notes          string                `gorm:"column:notes;not null;default:''"`
	Fulfillment    enums.FulfillmentMode `gorm:"column:fulfillment;not null;default:Pickup"`
	DeliveryArea   string                `gorm:"column:delivery_area;not null;default:''"`
	DeliveryFeeLkr decimal.Decimal       `gorm:"column:delivery_fee_lkr;type:numeric(12,2);not null;default:0"`
	Status         enums.QuoteStatus     `gorm:"column:status;not null;default:Received"`
	AdminNote      string                `gorm:"column:admin_note;not null;default:''"`
	Files          []QuoteFile           `gorm:"foreignKey:QuoteID;references:ID"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
