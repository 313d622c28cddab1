package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes portfolio persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a portfolio repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns active items, featured first then newest, with an
// optional category filter.
func (r *Repository) ListActive(ctx context.Context, category string) ([]models.PortfolioItem, error) {
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var rows []models.PortfolioItem
	err := query.Order("featured DESC").Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every item newest-first for the admin console.
func (r *Repository) ListAll(ctx context.Context) ([]models.PortfolioItem, error) {
	var rows []models.PortfolioItem
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one item.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	var row models.PortfolioItem
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new item row.
func (r *Repository) Create(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Update persists the provided item.
func (r *Repository) Update(ctx context.Context, item *models.PortfolioItem) error {
	return r.db.WithContext(ctx).Model(item).
		Select("title", "category", "tag", "description", "image_url", "image_public_id", "featured", "active", "updated_at").
		Updates(item).Error
}

// Delete removes the item row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PortfolioItem{}, "id = ?", id).Error
}
