package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"github.com/surangaprinters/printshop-backend/pkg/enums"
)

// FileUpload carries one attachment from the multipart form into the service.
type FileUpload struct {
	Name      string
	MimeType  string
	SizeBytes int64
	Data      []byte
}

// SubmitQuoteInput holds the raw storefront form values. Quantity and the
// delivery fee arrive as strings because multipart forms have no numbers.
type SubmitQuoteInput struct {
	CustomerName   string
	Phone          string
	ContactMethod  string
	ServiceName    string
	Quantity       string
	Size           string
	Color          string
	Paper          string
	Finishing      string
	Notes          string
	Fulfillment    string
	DeliveryArea   string
	DeliveryFeeLkr string
	Files          []FileUpload
}

// SubmitQuoteResult is returned to the storefront after a successful intake.
type SubmitQuoteResult struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

// UpdateQuoteInput is the fulfillment patch whitelist. Nil fields are retained.
type UpdateQuoteInput struct {
	Status         *string          `json:"status"`
	AdminNote      *string          `json:"adminNote"`
	DeliveryFeeLkr *decimal.Decimal `json:"deliveryFeeLkr"`
}

// ListParams holds admin list filters.
type ListParams struct {
	Status string
	Limit  int
	Cursor string
}

// ListResult is one page of quotes plus the cursor for the next page.
type ListResult struct {
	Items  []QuoteItem `json:"items"`
	Cursor string      `json:"cursor,omitempty"`
}

// QuoteItem is the API shape of a quote.
type QuoteItem struct {
	ID             uuid.UUID             `json:"id"`
	CustomerName   string                `json:"customerName"`
	Phone          string                `json:"phone"`
	ContactMethod  enums.ContactMethod   `json:"contactMethod"`
	ServiceName    string                `json:"serviceName"`
	Quantity       int                   `json:"quantity"`
	Size           string                `json:"size,omitempty"`
	Color          string                `json:"color,omitempty"`
	Paper          string                `json:"paper,omitempty"`
	Finishing      string                `json:"finishing,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	Fulfillment    enums.FulfillmentMode `json:"fulfillment"`
	DeliveryArea   string                `json:"deliveryArea,omitempty"`
	DeliveryFeeLkr decimal.Decimal       `json:"deliveryFeeLkr"`
	Status         enums.QuoteStatus     `json:"status"`
	AdminNote      string                `json:"adminNote,omitempty"`
	Files          []FileItem            `json:"files"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// FileItem is the API shape of one stored attachment.
type FileItem struct {
	ID           uuid.UUID            `json:"id"`
	OriginalName string               `json:"originalName"`
	URL          string               `json:"url"`
	MimeType     string               `json:"mimeType"`
	SizeBytes    int64                `json:"sizeBytes"`
	ResourceType enums.AttachmentKind `json:"resourceType"`
}

func toQuoteItem(row models.Quote) QuoteItem {
	files := make([]FileItem, len(row.Files))
	for i, file := range row.Files {
		files[i] = FileItem{
			ID:           file.ID,
			OriginalName: file.OriginalName,
			URL:          file.URL,
			MimeType:     file.MimeType,
			SizeBytes:    file.SizeBytes,
			ResourceType: file.ResourceType,
		}
	}
	return QuoteItem{
		ID:             row.ID,
		CustomerName:   row.CustomerName,
		Phone:          row.Phone,
		ContactMethod:  row.ContactMethod,
		ServiceName:    row.ServiceName,
		Quantity:       row.Quantity,
		Size:           row.Size,
		Color:          row.Color,
		Paper:          row.Paper,
		Finishing:      row.Finishing,
		Notes:          row.Notes,
		Fulfillment:    row.Fulfillment,
		DeliveryArea:   row.DeliveryArea,
		DeliveryFeeLkr: row.DeliveryFeeLkr,
		Status:         row.Status,
		AdminNote:      row.AdminNote,
		Files:          files,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
