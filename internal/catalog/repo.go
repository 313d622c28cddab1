package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes service catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active services, featured first then by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.Service, error) {
	var rows []models.Service
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("featured DESC").Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every service for the admin console.
func (r *Repository) ListAll(ctx context.Context) ([]models.Service, error) {
	var rows []models.Service
	err := r.db.WithContext(ctx).
		Order("featured DESC").Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one service.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var row models.Service
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Count returns the total number of catalog rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Service{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new service row.
func (r *Repository) Create(ctx context.Context, svc *models.Service) (*models.Service, error) {
	if err := r.db.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, err
	}
	return svc, nil
}

// Update persists the provided service.
func (r *Repository) Update(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Model(svc).
		Select("name", "category", "description", "hero_image", "hero_image_public_id", "featured", "active", "updated_at").
		Updates(svc).Error
}

// Delete removes the service row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id).Error
}
