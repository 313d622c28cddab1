package catalog

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

const uploadFolder = "services"

type servicesRepository interface {
	ListActive(ctx context.Context) ([]models.Service, error)
	ListAll(ctx context.Context) ([]models.Service, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, svc *models.Service) (*models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type uploader interface {
	Upload(ctx context.Context, data []byte, params cloudinary.UploadParams) (*cloudinary.UploadResult, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

// HeroImageUpload carries an optional catalog image from the admin form.
type HeroImageUpload struct {
	Name     string
	MimeType string
	Data     []byte
}

// UpsertServiceInput holds admin create/update fields.
type UpsertServiceInput struct {
	Name        string
	Category    string
	Description string
	Featured    *bool
	Active      *bool
	HeroImage   *HeroImageUpload
}

// Service exposes catalog listing, CRUD, and startup seeding.
type Service interface {
	ListPublic(ctx context.Context) ([]models.Service, error)
	ListAdmin(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, input UpsertServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, input UpsertServiceInput) (*models.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	SeedDefaults(ctx context.Context) error
}

type service struct {
	repo    servicesRepository
	storage uploader
	logg    *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo servicesRepository, storage uploader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if storage == nil {
		return nil, fmt.Errorf("upload client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, storage: storage, logg: logg}, nil
}

func (s *service) ListPublic(ctx context.Context) ([]models.Service, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list services")
	}
	return rows, nil
}

func (s *service) ListAdmin(ctx context.Context) ([]models.Service, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list services")
	}
	return rows, nil
}

func (s *service) CreateService(ctx context.Context, input UpsertServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
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

	row := &models.Service{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		Featured:    featured,
		Active:      active,
	}

	if input.HeroImage != nil {
		url, publicID, err := s.uploadHeroImage(ctx, input.HeroImage)
		if err != nil {
			return nil, err
		}
		row.HeroImage = url
		row.HeroImagePublicID = publicID
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		s.destroyHeroImage(ctx, row.HeroImagePublicID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service")
	}
	return created, nil
}

func (s *service) UpdateService(ctx context.Context, id uuid.UUID, input UpsertServiceInput) (*models.Service, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service id is required")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup service")
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		row.Name = name
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		row.Category = category
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
	if input.HeroImage != nil {
		url, publicID, err := s.uploadHeroImage(ctx, input.HeroImage)
		if err != nil {
			return nil, err
		}
		oldPublicID = row.HeroImagePublicID
		row.HeroImage = url
		row.HeroImagePublicID = publicID
	}

	if err := s.repo.Update(ctx, row); err != nil {
		s.destroyHeroImage(ctx, row.HeroImagePublicID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update service")
	}

	// The replaced image is deleted best-effort once the row points elsewhere.
	s.destroyHeroImage(ctx, oldPublicID)
	return row, nil
}

func (s *service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "service id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup service")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete service")
	}
	s.destroyHeroImage(ctx, row.HeroImagePublicID)
	return nil
}

var defaultServices = []models.Service{
	{Name: "Binding", Category: "Finishing", Featured: true},
	{Name: "Book Printing", Category: "Books", Featured: true},
	{Name: "Brochure Printing", Category: "Marketing"},
	{Name: "Business Card Printing", Category: "Business", Featured: true},
	{Name: "Business Document Printing", Category: "Business"},
	{Name: "Calendars Printing", Category: "Marketing"},
	{Name: "Color Printing", Category: "General"},
	{Name: "Copy Service", Category: "General"},
	{Name: "Custom Printing", Category: "Custom"},
	{Name: "Digital Printing", Category: "Digital", Featured: true},
	{Name: "Document Printing", Category: "Documents"},
	{Name: "Dye Sublimation Printing", Category: "Sublimation", Featured: true},
	{Name: "Faxing Service", Category: "Office"},
	{Name: "Flyers Printing", Category: "Marketing"},
	{Name: "Flyers & Brochures Design", Category: "Design"},
	{Name: "Graphic Design", Category: "Design", Featured: true},
	{Name: "Letterhead Printing", Category: "Business"},
	{Name: "Photo Printing", Category: "Photo", Featured: true},
	{Name: "Poster Printing", Category: "Marketing", Featured: true},
}

// SeedDefaults inserts the default catalog once, when the table is empty.
func (s *service) SeedDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count services")
	}
	if count > 0 {
		return nil
	}
	for _, row := range defaultServices {
		row.ID = uuid.New()
		row.Active = true
		if _, err := s.repo.Create(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed services")
		}
	}
	s.logg.Info(ctx, "default services seeded")
	return nil
}

func (s *service) uploadHeroImage(ctx context.Context, image *HeroImageUpload) (string, string, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(image.MimeType)), "image/") {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "hero image must be an image file")
	}
	if len(image.Data) == 0 {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "hero image is empty")
	}
	result, err := s.storage.Upload(ctx, image.Data, cloudinary.UploadParams{
		Folder:       uploadFolder,
		ResourceType: enums.AttachmentKindImage.String(),
		FileName:     image.Name,
	})
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload hero image")
	}
	return result.SecureURL, result.PublicID, nil
}

func (s *service) destroyHeroImage(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.storage.Destroy(ctx, publicID, enums.AttachmentKindImage.String()); err != nil {
		s.logg.Warn(ctx, "deleting replaced hero image failed")
	}
}
