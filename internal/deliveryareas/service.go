package deliveryareas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"gorm.io/gorm"
)

// DefaultDistrict scopes the storefront list; the shop delivers within Matale.
const DefaultDistrict = "Matale"

type areasRepository interface {
	ListActive(ctx context.Context, district string) ([]models.DeliveryArea, error)
	ListAll(ctx context.Context) ([]models.DeliveryArea, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryArea, error)
	FindByArea(ctx context.Context, district, area string) (*models.DeliveryArea, error)
	Create(ctx context.Context, area *models.DeliveryArea) (*models.DeliveryArea, error)
	Update(ctx context.Context, area *models.DeliveryArea) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpsertAreaInput holds admin create/update fields.
type UpsertAreaInput struct {
	District string           `json:"district"`
	Area     string           `json:"area" validate:"required"`
	FeeLkr   *decimal.Decimal `json:"feeLkr"`
	Active   *bool            `json:"active"`
}

// Service exposes delivery area listing and admin CRUD semantics.
type Service interface {
	ListPublic(ctx context.Context) ([]models.DeliveryArea, error)
	ListAdmin(ctx context.Context) ([]models.DeliveryArea, error)
	FindByArea(ctx context.Context, area string) (*models.DeliveryArea, error)
	CreateArea(ctx context.Context, input UpsertAreaInput) (*models.DeliveryArea, error)
	UpdateArea(ctx context.Context, id uuid.UUID, input UpsertAreaInput) (*models.DeliveryArea, error)
	DeleteArea(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo areasRepository
}

// NewService builds the delivery area service.
func NewService(repo areasRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery area repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListPublic(ctx context.Context) ([]models.DeliveryArea, error) {
	rows, err := s.repo.ListActive(ctx, DefaultDistrict)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery areas")
	}
	return rows, nil
}

func (s *service) ListAdmin(ctx context.Context) ([]models.DeliveryArea, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery areas")
	}
	return rows, nil
}

// FindByArea resolves an area by name within the shop's district. A miss is
// not an error; quote intake prices unknown areas at zero.
func (s *service) FindByArea(ctx context.Context, area string) (*models.DeliveryArea, error) {
	name := strings.TrimSpace(area)
	if name == "" {
		return nil, nil
	}
	row, err := s.repo.FindByArea(ctx, DefaultDistrict, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup delivery area")
	}
	return row, nil
}

func (s *service) CreateArea(ctx context.Context, input UpsertAreaInput) (*models.DeliveryArea, error) {
	area := strings.TrimSpace(input.Area)
	if area == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "area is required")
	}
	fee := decimal.Zero
	if input.FeeLkr != nil {
		fee = *input.FeeLkr
	}
	if fee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "feeLkr must not be negative")
	}
	district := strings.TrimSpace(input.District)
	if district == "" {
		district = DefaultDistrict
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	row := &models.DeliveryArea{
		ID:       uuid.New(),
		District: district,
		Area:     area,
		FeeLkr:   fee,
		Active:   active,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "area already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery area")
	}
	return created, nil
}

func (s *service) UpdateArea(ctx context.Context, id uuid.UUID, input UpsertAreaInput) (*models.DeliveryArea, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "area id is required")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery area not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup delivery area")
	}

	if area := strings.TrimSpace(input.Area); area != "" {
		row.Area = area
	}
	if district := strings.TrimSpace(input.District); district != "" {
		row.District = district
	}
	if input.FeeLkr != nil {
		if input.FeeLkr.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "feeLkr must not be negative")
		}
		row.FeeLkr = *input.FeeLkr
	}
	if input.Active != nil {
		row.Active = *input.Active
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery area")
	}
	return row, nil
}

func (s *service) DeleteArea(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "area id is required")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "delivery area not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup delivery area")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete delivery area")
	}
	return nil
}
