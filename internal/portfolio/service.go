package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"github.com/surangaprinters/printshop-backend/pkg/enums"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
	"github.com/surangaprinters/printshop-backend/pkg/storage/cloudinary"
	"gorm.io/gorm"
)

const uploadFolder = "portfolio"

// AllCategories is the storefront filter value that disables filtering.
const AllCategories = "All"

type portfolioRepository interface {
	ListActive(ctx context.Context, category string) ([]models.PortfolioItem, error)
	ListAll(ctx context.Context) ([]models.PortfolioItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error)
	Create(ctx context.Context, item *models.PortfolioItem) (*models.PortfolioItem, error)
	Update(ctx context.Context, item *models.PortfolioItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type uploader interface {
	Upload(ctx context.Context, data []byte, params cloudinary.UploadParams) (*cloudinary.UploadResult, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

// ImageUpload carries the showcase image from the admin form.
type ImageUpload struct {
	Name     string
	MimeType string
	Data     []byte
}

// UpsertItemInput holds admin create/update fields. Image is required on
// create and optional on update.
type UpsertItemInput struct {
	Title       string
	Category    string
	Tag         string
	Description string
	Featured    *bool
	Active      *bool
	Image       *ImageUpload
}

// Service exposes portfolio listing and admin CRUD semantics.
type Service interface {
	ListPublic(ctx context.Context, category string) ([]models.PortfolioItem, error)
	ListAdmin(ctx context.Context) ([]models.PortfolioItem, error)
	CreateItem(ctx context.Context, input UpsertItemInput) (*models.PortfolioItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input UpsertItemInput) (*models.PortfolioItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    portfolioRepository
	storage uploader
	logg    *logger.Logger
}

// NewService builds the portfolio service.
func NewService(repo portfolioRepository, storage uploader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("portfolio repository required")
	}
	if storage == nil {
		return nil, fmt.Errorf("upload client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, storage: storage, logg: logg}, nil
}

func (s *service) ListPublic(ctx context.Context, category string) ([]models.PortfolioItem, error) {
	filter := strings.TrimSpace(category)
	if filter == AllCategories {
		filter = ""
	}
	rows, err := s.repo.ListActive(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list portfolio")
	}
	return rows, nil
}

func (s *service) ListAdmin(ctx context.Context) ([]models.PortfolioItem, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list portfolio")
	}
	return rows, nil
}

func (s *service) CreateItem(ctx context.Context, input UpsertItemInput) (*models.PortfolioItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Image == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image is required")
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "General"
	}
	featured := false
	if input.Featured != nil {
		featured = *input.Featured
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	url, publicID, err := s.uploadImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	row := &models.PortfolioItem{
		ID:            uuid.New(),
		Title:         title,
		Category:      category,
		Tag:           strings.TrimSpace(input.Tag),
		Description:   strings.TrimSpace(input.Description),
		ImageURL:      url,
		ImagePublicID: publicID,
		Featured:      featured,
		Active:        active,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		s.destroyImage(ctx, publicID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create portfolio item")
	}
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, input UpsertItemInput) (*models.PortfolioItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "portfolio item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup portfolio item")
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		row.Title = title
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		row.Category = category
	}
	if tag := strings.TrimSpace(input.Tag); tag != "" {
		row.Tag = tag
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		row.Description = desc
	}
	if input.Featured != nil {
		row.Featured = *input.Featured
	}
	if input.Active != nil {
		row.Active = *input.Active
	}

	oldPublicID := ""
	if input.Image != nil {
		url, publicID, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		oldPublicID = row.ImagePublicID
		row.ImageURL = url
		row.ImagePublicID = publicID
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update portfolio item")
	}

	s.destroyImage(ctx, oldPublicID)
	return row, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "portfolio item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup portfolio item")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete portfolio item")
	}
	s.destroyImage(ctx, row.ImagePublicID)
	return nil
}

func (s *service) uploadImage(ctx context.Context, image *ImageUpload) (string, string, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(image.MimeType)), "image/") {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "portfolio image must be an image file")
	}
	if len(image.Data) == 0 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "portfolio image is empty")
	}
	result, err := s.storage.Upload(ctx, image.Data, cloudinary.UploadParams{
		Folder:       uploadFolder,
		ResourceType: enums.AttachmentKindImage.String(),
		FileName:     image.Name,
	})
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload portfolio image")
	}
	return result.SecureURL, result.PublicID, nil
}

func (s *service) destroyImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.storage.Destroy(ctx, publicID, enums.AttachmentKindImage.String()); err != nil {
		s.logg.Warn(ctx, "deleting replaced portfolio image failed")
	}
}
