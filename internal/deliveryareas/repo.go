package deliveryareas

import (
	"context"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes delivery area persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a delivery area repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active areas for the district ordered by area name.
func (r *Repository) ListActive(ctx context.Context, district string) ([]models.DeliveryArea, error) {
	var rows []models.DeliveryArea
	err := r.db.WithContext(ctx).
		Where("district = ? AND active = ?", district, true).
		Order("area ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every area regardless of the active flag.
func (r *Repository) ListAll(ctx context.Context) ([]models.DeliveryArea, error) {
	var rows []models.DeliveryArea
	err := r.db.WithContext(ctx).
		Order("district ASC").Order("area ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one area.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryArea, error) {
	var row models.DeliveryArea
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByArea loads one area by name within the district. Callers gate on the
// active flag themselves.
func (r *Repository) FindByArea(ctx context.Context, district, area string) (*models.DeliveryArea, error) {
	var row models.DeliveryArea
	err := r.db.WithContext(ctx).
		First(&row, "district = ? AND area = ?", district, area).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new area row.
func (r *Repository) Create(ctx context.Context, area *models.DeliveryArea) (*models.DeliveryArea, error) {
	if err := r.db.WithContext(ctx).Create(area).Error; err != nil {
		return nil, err
	}
	return area, nil
}

// Update persists the provided area.
func (r *Repository) Update(ctx context.Context, area *models.DeliveryArea) error {
	return r.db.WithContext(ctx).Model(area).
		Select("district", "area", "fee_lkr", "active", "updated_at").
		Updates(area).Error
}

// Delete removes the area row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.DeliveryArea{}, "id = ?", id).Error
}
