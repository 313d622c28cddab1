package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/surangaprinters/printshop-backend/pkg/db/models"
	"github.com/surangaprinters/printshop-backend/pkg/enums"
	"github.com/surangaprinters/printshop-backend/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupQuotesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	quotes := `
CREATE TABLE IF NOT EXISTS quotes (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  phone TEXT NOT NULL,
  contact_method TEXT NOT NULL DEFAULT 'WhatsApp',
  service_name TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  size TEXT NOT NULL DEFAULT '',
  color TEXT NOT NULL DEFAULT '',
  paper TEXT NOT NULL DEFAULT '',
  finishing TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  fulfillment TEXT NOT NULL DEFAULT 'Pickup',
  delivery_area TEXT NOT NULL DEFAULT '',
  delivery_fee_lkr TEXT NOT NULL DEFAULT '0',
  status TEXT NOT NULL DEFAULT 'Received',
  admin_note TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	quoteFiles := `
CREATE TABLE IF NOT EXISTS quote_files (
  id TEXT PRIMARY KEY,
  quote_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  original_name TEXT NOT NULL,
  url TEXT NOT NULL,
  public_id TEXT NOT NULL,
  mime_type TEXT NOT NULL,
  size_bytes INTEGER NOT NULL,
  resource_type TEXT NOT NULL,
  created_at DATETIME
);`

	require.NoError(t, db.Exec(quotes).Error)
	require.NoError(t, db.Exec(quoteFiles).Error)
	return db
}

func seedQuote(t *testing.T, repo *Repository, status enums.QuoteStatus, createdAt time.Time) *models.Quote {
	t.Helper()
	quote := &models.Quote{
		ID:            uuid.New(),
		CustomerName:  "Kamala Silva",
		Phone:         "0712223344",
		ContactMethod: enums.ContactMethodWhatsApp,
		ServiceName:   "Banners",
		Quantity:      2,
		Fulfillment:   enums.FulfillmentModePickup,
		Status:        status,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	_, err := repo.Create(context.Background(), quote)
	require.NoError(t, err)
	return quote
}

func TestRepositoryCreatePersistsFiles(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)

	quoteID := uuid.New()
	quote := &models.Quote{
		ID:            quoteID,
		CustomerName:  "Nimal Perera",
		Phone:         "0771234567",
		ContactMethod: enums.ContactMethodCall,
		ServiceName:   "Business Cards",
		Quantity:      1,
		Fulfillment:   enums.FulfillmentModePickup,
		Status:        enums.QuoteStatusReceived,
		Files: []models.QuoteFile{
			{ID: uuid.New(), QuoteID: quoteID, Position: 1, OriginalName: "back.pdf", URL: "https://example/b", PublicID: "quotes/b", MimeType: "application/pdf", SizeBytes: 20, ResourceType: enums.AttachmentKindRaw},
			{ID: uuid.New(), QuoteID: quoteID, Position: 0, OriginalName: "front.png", URL: "https://example/f", PublicID: "quotes/f", MimeType: "image/png", SizeBytes: 10, ResourceType: enums.AttachmentKindImage},
		},
	}

	_, err := repo.Create(context.Background(), quote)
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), quoteID)
	require.NoError(t, err)
	require.Len(t, found.Files, 2)
	require.Equal(t, "front.png", found.Files[0].OriginalName)
	require.Equal(t, "back.pdf", found.Files[1].OriginalName)
}

func TestRepositoryFindByIDNotFound(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListFiltersByStatusNewestFirst(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	seedQuote(t, repo, enums.QuoteStatusReceived, base)
	middle := seedQuote(t, repo, enums.QuoteStatusPrinting, base.Add(time.Hour))
	newest := seedQuote(t, repo, enums.QuoteStatusPrinting, base.Add(2*time.Hour))

	rows, err := repo.List(context.Background(), listQuery{status: "Printing", limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, newest.ID, rows[0].ID)
	require.Equal(t, middle.ID, rows[1].ID)
}

func TestRepositoryListCursorSkipsEarlierPages(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	oldest := seedQuote(t, repo, enums.QuoteStatusReceived, base)
	middle := seedQuote(t, repo, enums.QuoteStatusReceived, base.Add(time.Hour))
	newest := seedQuote(t, repo, enums.QuoteStatusReceived, base.Add(2*time.Hour))

	rows, err := repo.List(context.Background(), listQuery{
		cursor: &pagination.Cursor{CreatedAt: newest.CreatedAt, ID: newest.ID},
		limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, middle.ID, rows[0].ID)
	require.Equal(t, oldest.ID, rows[1].ID)
}

func TestRepositoryUpdateOnlyTouchesWhitelistedColumns(t *testing.T) {
	db := setupQuotesTestDB(t)
	repo := NewRepository(db)

	quote := seedQuote(t, repo, enums.QuoteStatusReceived, time.Now().UTC())

	quote.Status = enums.QuoteStatusReady
	quote.AdminNote = "ready for pickup"
	quote.DeliveryFeeLkr = decimal.NewFromInt(100)
	quote.CustomerName = "should not change"

	require.NoError(t, repo.Update(context.Background(), quote))

	found, err := repo.FindByID(context.Background(), quote.ID)
	require.NoError(t, err)
	require.Equal(t, enums.QuoteStatusReady, found.Status)
	require.Equal(t, "ready for pickup", found.AdminNote)
	require.True(t, found.DeliveryFeeLkr.Equal(decimal.NewFromInt(100)))
	require.Equal(t, "Kamala Silva", found.CustomerName)
}
