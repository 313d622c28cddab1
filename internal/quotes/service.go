package quotes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"github.com/surangaprinters/printshop-backend/pkg/enums"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
	"github.com/surangaprinters/printshop-backend/pkg/logger"
	"github.com/surangaprinters/printshop-backend/pkg/metrics"
	pkgpagination "github.com/surangaprinters/printshop-backend/pkg/pagination"
	"github.com/surangaprinters/printshop-backend/pkg/storage/cloudinary"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const (
	submittedMessage = "Quote request submitted"
	uploadFolder     = "quotes"
)

// allowedQuoteMimes is the attachment allow-list for quote submissions.
var allowedQuoteMimes = map[string]bool{
	"application/pdf":          true,
	"image/jpeg":               true,
	"image/png":                true,
	"image/webp":               true,
	"image/gif":                true,
	"image/svg+xml":            true,
	"application/msword":       true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"application/zip": true,
	"text/plain":      true,
}

type quotesRepository interface {
	Create(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	List(ctx context.Context, opts listQuery) ([]models.Quote, error)
	Update(ctx context.Context, quote *models.Quote) error
}

type uploader interface {
	Upload(ctx context.Context, data []byte, params cloudinary.UploadParams) (*cloudinary.UploadResult, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

// areaDirectory prices a delivery area by name. Implemented by the delivery
// area service; a nil directory disables the lookup.
type areaDirectory interface {
	FindByArea(ctx context.Context, area string) (*models.DeliveryArea, error)
}

// Service exposes quote intake and fulfillment semantics.
type Service interface {
	SubmitQuote(ctx context.Context, input SubmitQuoteInput) (*SubmitQuoteResult, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*QuoteItem, error)
	ListQuotes(ctx context.Context, params ListParams) (*ListResult, error)
	UpdateQuote(ctx context.Context, id uuid.UUID, input UpdateQuoteInput) (*QuoteItem, error)
}

// Options bounds what a single submission may attach.
type Options struct {
	MaxFiles     int
	MaxFileBytes int64
}

type service struct {
	repo    quotesRepository
	storage uploader
	areas   areaDirectory
	logg    *logger.Logger
	intake  *metrics.QuoteIntakeMetrics
	opts    Options
}

// NewService builds the quote service backed by the repository and upload client.
func NewService(repo quotesRepository, storage uploader, areas areaDirectory, logg *logger.Logger, intake *metrics.QuoteIntakeMetrics, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if storage == nil {
		return nil, fmt.Errorf("upload client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = 5
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = 15 << 20
	}
	return &service{
		repo:    repo,
		storage: storage,
		areas:   areas,
		logg:    logg,
		intake:  intake,
		opts:    opts,
	}, nil
}

func (s *service) SubmitQuote(ctx context.Context, input SubmitQuoteInput) (*SubmitQuoteResult, error) {
	result, err := s.submitQuote(ctx, input)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
			s.intake.IncSubmission("rejected")
		} else {
			s.intake.IncSubmission("failed")
		}
		return nil, err
	}
	s.intake.IncSubmission("accepted")
	return result, nil
}

func (s *service) submitQuote(ctx context.Context, input SubmitQuoteInput) (*SubmitQuoteResult, error) {
	customerName := strings.TrimSpace(input.CustomerName)
	phone := strings.TrimSpace(input.Phone)
	serviceName := strings.TrimSpace(input.ServiceName)
	if customerName == "" || phone == "" || serviceName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customerName, phone, serviceName are required")
	}

	quantity, err := parseQuantity(input.Quantity)
	if err != nil {
		return nil, err
	}

	contactMethod := enums.ContactMethodWhatsApp
	if raw := strings.TrimSpace(input.ContactMethod); raw != "" {
		parsed, err := enums.ParseContactMethod(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "contactMethod must be Call or WhatsApp")
		}
		contactMethod = parsed
	}

	mode := enums.NormalizeFulfillmentMode(input.Fulfillment)

	// Pickup never looks at the delivery fields, whatever the form carried.
	deliveryArea := ""
	fee := decimal.Zero
	if mode == enums.FulfillmentModeDelivery {
		deliveryArea = strings.TrimSpace(input.DeliveryArea)
		fee, err = s.deliveryFee(ctx, deliveryArea, input.DeliveryFeeLkr)
		if err != nil {
			return nil, err
		}
	}

	if err := s.validateFiles(input.Files); err != nil {
		return nil, err
	}

	files, err := s.uploadFiles(ctx, input.Files)
	if err != nil {
		return nil, err
	}

	quote := &models.Quote{
		ID:             uuid.New(),
		CustomerName:   customerName,
		Phone:          phone,
		ContactMethod:  contactMethod,
		ServiceName:    serviceName,
		Quantity:       quantity,
		Size:           strings.TrimSpace(input.Size),
		Color:          strings.TrimSpace(input.Color),
		Paper:          strings.TrimSpace(input.Paper),
		Finishing:      strings.TrimSpace(input.Finishing),
		Notes:          strings.TrimSpace(input.Notes),
		Fulfillment:    mode,
		DeliveryArea:   deliveryArea,
		DeliveryFeeLkr: fee,
		Status:         enums.QuoteStatusReceived,
		Files:          files,
	}
	for i := range quote.Files {
		quote.Files[i].QuoteID = quote.ID
	}

	created, err := s.repo.Create(ctx, quote)
	if err != nil {
		s.rollbackUploads(ctx, files)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quote")
	}

	return &SubmitQuoteResult{ID: created.ID, Message: submittedMessage}, nil
}

func (s *service) GetQuote(ctx context.Context, id uuid.UUID) (*QuoteItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup quote")
	}
	item := toQuoteItem(*row)
	return &item, nil
}

func (s *service) ListQuotes(ctx context.Context, params ListParams) (*ListResult, error) {
	status := strings.TrimSpace(params.Status)
	if status != "" {
		if _, err := enums.ParseQuoteStatus(status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		status: status,
		limit:  pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	items := make([]QuoteItem, len(rows))
	for i, row := range rows {
		items[i] = toQuoteItem(row)
	}

	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

func (s *service) UpdateQuote(ctx context.Context, id uuid.UUID, input UpdateQuoteInput) (*QuoteItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id is required")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup quote")
	}

	if input.Status != nil {
		status, err := enums.ParseQuoteStatus(strings.TrimSpace(*input.Status))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		row.Status = status
	}
	if input.AdminNote != nil {
		row.AdminNote = *input.AdminNote
	}
	if input.DeliveryFeeLkr != nil {
		if input.DeliveryFeeLkr.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "deliveryFeeLkr must not be negative")
		}
		row.DeliveryFeeLkr = *input.DeliveryFeeLkr
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload quote")
	}
	item := toQuoteItem(*updated)
	return &item, nil
}

func (s *service) validateFiles(files []FileUpload) error {
	if len(files) > s.opts.MaxFiles {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d files are allowed", s.opts.MaxFiles))
	}
	for _, file := range files {
		mime := strings.ToLower(strings.TrimSpace(file.MimeType))
		if !allowedQuoteMimes[mime] {
			return pkgerrors.New(pkgerrors.CodeValidation, "unsupported file type").
				WithDetails(map[string]string{"file": file.Name, "mimeType": file.MimeType})
		}
		if file.SizeBytes > s.opts.MaxFileBytes {
			return pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the size limit").
				WithDetails(map[string]string{"file": file.Name})
		}
		if len(file.Data) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "file is empty").
				WithDetails(map[string]string{"file": file.Name})
		}
	}
	return nil
}

// uploadFiles transfers attachments one at a time. On any failure the files
// already stored are destroyed best-effort and the intake fails whole.
func (s *service) uploadFiles(ctx context.Context, files []FileUpload) ([]models.QuoteFile, error) {
	uploaded := make([]models.QuoteFile, 0, len(files))
	for i, file := range files {
		kind := enums.ClassifyMIME(file.MimeType)

		start := time.Now()
		result, err := s.storage.Upload(ctx, file.Data, cloudinary.UploadParams{
			Folder:       uploadFolder,
			ResourceType: kind.String(),
			FileName:     sanitizeFileName(file.Name),
		})
		if err != nil {
			s.rollbackUploads(ctx, uploaded)
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload attachment").
				WithDetails(map[string]string{"file": file.Name})
		}
		s.intake.ObserveUpload(kind.String(), time.Since(start))
		s.intake.IncAttachment()

		uploaded = append(uploaded, models.QuoteFile{
			ID:           uuid.New(),
			Position:     i,
			OriginalName: file.Name,
			URL:          result.SecureURL,
			PublicID:     result.PublicID,
			MimeType:     file.MimeType,
			SizeBytes:    file.SizeBytes,
			ResourceType: kind,
		})
	}
	return uploaded, nil
}

func (s *service) rollbackUploads(ctx context.Context, files []models.QuoteFile) {
	var combined error
	for _, file := range files {
		if err := s.storage.Destroy(ctx, file.PublicID, file.ResourceType.String()); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("destroy %s: %w", file.PublicID, err))
		}
	}
	if combined != nil {
		s.logg.Error(ctx, "rolling back uploaded attachments failed", combined)
	}
}

// deliveryFee resolves the fee stored on a Delivery quote. A caller-supplied
// value wins; when the form leaves it blank the advertised fee for the area is
// used. Unknown or inactive areas price at zero, the storefront shows those as
// "contact us".
func (s *service) deliveryFee(ctx context.Context, area, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) != "" {
		return parseFee(raw)
	}
	if s.areas == nil || area == "" {
		return decimal.Zero, nil
	}
	row, err := s.areas.FindByArea(ctx, area)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "price delivery area")
	}
	return AreaFee(row), nil
}

func parseQuantity(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 1, nil
	}
	quantity, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a number")
	}
	if quantity < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	return quantity, nil
}

func parseFee(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	fee, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "deliveryFeeLkr must be a number")
	}
	if fee.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "deliveryFeeLkr must not be negative")
	}
	return fee, nil
}

func sanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	if cleaned == "" {
		return "file"
	}
	return cleaned
}
