package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/surangaprinters/printshop-backend/pkg/enums"
)

// QuoteFile is one uploaded attachment on a quote request, ordered by Position.
type QuoteFile struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID      uuid.UUID            `gorm:"column:quote_id;type:uuid;not null;index"`
	Position     int                  `gorm:"column:position;not null"`
	OriginalName string               `gorm:"column:original_name;not null"`
	URL          string               `gorm:"column:url;not null"`
	PublicID     string               `gorm:"column:public_id;not null"`
	MimeType     string               `gorm:"column:mime_type;not null"`
	SizeBytes    int64                `gorm:"column:size_bytes;not null"`
	ResourceType enums.AttachmentKind `gorm:"column:resource_type;not null"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
}
