package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes review persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListApproved returns approved reviews, featured first then newest.
func (r *Repository) ListApproved(ctx context.Context) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("featured DESC").Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every review newest-first for the admin console.
func (r *Repository) ListAll(ctx context.Context) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one review.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var row models.Review
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Update persists moderation flags.
func (r *Repository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Model(review).
		Select("approved", "featured", "updated_at").
		Updates(review).Error
}

// Delete removes the review row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error
}
