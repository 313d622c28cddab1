package quotes

import (
	"context"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"github.com/surangaprinters/printshop-backend/pkg/pagination"
	"gorm.io/gorm"
)

type listQuery struct {
	status string
	cursor *pagination.Cursor
	limit  int
}

// Repository exposes quote persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quote repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a quote together with its attachment rows.
func (r *Repository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// FindByID loads a quote with its files ordered by position.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List returns quotes newest-first using cursor pagination and an optional status filter.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Quote, error) {
	query := r.db.WithContext(ctx).Model(&models.Quote{}).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})

	if opts.status != "" {
		query = query.Where("status = ?", opts.status)
	}
	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Quote
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the provided quote fields.
func (r *Repository) Update(ctx context.Context, quote *models.Quote) error {
	return r.db.WithContext(ctx).Model(quote).
		Select("status", "admin_note", "delivery_fee_lkr", "updated_at").
		Updates(quote).Error
}
