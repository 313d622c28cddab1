package settings

import (
	"context"

	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes the settings singleton persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// First returns the singleton row when it exists.
func (r *Repository) First(ctx context.Context) (*models.Settings, error) {
	var row models.Settings
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the singleton row.
func (r *Repository) Create(ctx context.Context, row *models.Settings) (*models.Settings, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update persists the provided settings.
func (r *Repository) Update(ctx context.Context, row *models.Settings) error {
	return r.db.WithContext(ctx).Model(row).
		Select("shop_name", "phone", "whatsapp", "address", "hours_mon_sat", "hours_sunday", "social", "updated_at").
		Updates(row).Error
}
