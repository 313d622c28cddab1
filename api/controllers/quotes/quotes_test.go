package quotes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	internalquotes "github.com/surangaprinters/printshop-backend/internal/quotes"
	"github.com/surangaprinters/printshop-backend/pkg/config"
	pkgerrors "github.com/surangaprinters/printshop-backend/pkg/errors"
)

type stubQuoteService struct {
	submit func(ctx context.Context, input internalquotes.SubmitQuoteInput) (*internalquotes.SubmitQuoteResult, error)
	get    func(ctx context.Context, id uuid.UUID) (*internalquotes.QuoteItem, error)
	list   func(ctx context.Context, params internalquotes.ListParams) (*internalquotes.ListResult, error)
	update func(ctx context.Context, id uuid.UUID, input internalquotes.UpdateQuoteInput) (*internalquotes.QuoteItem, error)
}

func (s *stubQuoteService) SubmitQuote(ctx context.Context, input internalquotes.SubmitQuoteInput) (*internalquotes.SubmitQuoteResult, error) {
	if s.submit != nil {
		return s.submit(ctx, input)
	}
	return nil, nil
}

func (s *stubQuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*internalquotes.QuoteItem, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, nil
}

func (s *stubQuoteService) ListQuotes(ctx context.Context, params internalquotes.ListParams) (*internalquotes.ListResult, error) {
	if s.list != nil {
		return s.list(ctx, params)
	}
	return nil, nil
}

func (s *stubQuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, input internalquotes.UpdateQuoteInput) (*internalquotes.QuoteItem, error) {
	if s.update != nil {
		return s.update(ctx, id, input)
	}
	return nil, nil
}

func testUploadConfig() config.UploadConfig {
	return config.UploadConfig{MaxQuoteFiles: 5, MaxQuoteFileMB: 15, MaxImageUploadMB: 10}
}

func buildQuoteForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for name, data := range files {
		part, err := writer.CreateFormFile(filesField, name)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, writer.FormDataContentType()
}

func TestSubmitPassesFormFieldsToService(t *testing.T) {
	var captured internalquotes.SubmitQuoteInput
	svc := &stubQuoteService{
		submit: func(ctx context.Context, input internalquotes.SubmitQuoteInput) (*internalquotes.SubmitQuoteResult, error) {
			captured = input
			return &internalquotes.SubmitQuoteResult{ID: uuid.New(), Message: "Quote request submitted"}, nil
		},
	}

	body, contentType := buildQuoteForm(t, map[string]string{
		"customerName": "Nimal Perera",
		"phone":        "0771234567",
		"serviceName":  "Business Card Printing",
		"quantity":     "500",
		"fulfillment":  "delivery",
		"deliveryArea": "Ukuwela",
	}, map[string][]byte{
		"design.pdf": []byte("pdf-bytes"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/quotes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	Submit(svc, testUploadConfig(), nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.CustomerName != "Nimal Perera" {
		t.Fatalf("unexpected customer name: %q", captured.CustomerName)
	}
	if captured.Quantity != "500" {
		t.Fatalf("unexpected quantity: %q", captured.Quantity)
	}
	if captured.Fulfillment != "delivery" {
		t.Fatalf("unexpected fulfillment: %q", captured.Fulfillment)
	}
	if len(captured.Files) != 1 {
		t.Fatalf("expected one file, got %d", len(captured.Files))
	}
	if captured.Files[0].Name != "design.pdf" {
		t.Fatalf("unexpected file name: %q", captured.Files[0].Name)
	}
	if captured.Files[0].SizeBytes != int64(len("pdf-bytes")) {
		t.Fatalf("unexpected size: %d", captured.Files[0].SizeBytes)
	}

	var payload struct {
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.Message != "Quote request submitted" {
		t.Fatalf("unexpected message: %q", payload.Data.Message)
	}
}

func TestSubmitSurfacesValidationError(t *testing.T) {
	svc := &stubQuoteService{
		submit: func(ctx context.Context, input internalquotes.SubmitQuoteInput) (*internalquotes.SubmitQuoteResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customerName, phone, serviceName are required")
		},
	}

	body, contentType := buildQuoteForm(t, map[string]string{"phone": "0771234567"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	Submit(svc, testUploadConfig(), nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Message != "customerName, phone, serviceName are required" {
		t.Fatalf("unexpected message: %q", payload.Error.Message)
	}
}

func TestSubmitRejectsNonMultipartBody(t *testing.T) {
	svc := &stubQuoteService{}
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(`{"customerName":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	Submit(svc, testUploadConfig(), nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListForwardsFilters(t *testing.T) {
	var captured internalquotes.ListParams
	svc := &stubQuoteService{
		list: func(ctx context.Context, params internalquotes.ListParams) (*internalquotes.ListResult, error) {
			captured = params
			return &internalquotes.ListResult{Items: []internalquotes.QuoteItem{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/quotes?status=Printing&limit=10&cursor=abc", nil)
	rec := httptest.NewRecorder()

	List(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Status != "Printing" {
		t.Fatalf("unexpected status: %q", captured.Status)
	}
	if captured.Limit != 10 {
		t.Fatalf("unexpected limit: %d", captured.Limit)
	}
	if captured.Cursor != "abc" {
		t.Fatalf("unexpected cursor: %q", captured.Cursor)
	}
}

func TestListRejectsOutOfRangeLimit(t *testing.T) {
	svc := &stubQuoteService{}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/quotes?limit=5000", nil)
	rec := httptest.NewRecorder()

	List(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDetailParsesQuoteID(t *testing.T) {
	id := uuid.New()
	svc := &stubQuoteService{
		get: func(ctx context.Context, got uuid.UUID) (*internalquotes.QuoteItem, error) {
			if got != id {
				t.Fatalf("expected id %s got %s", id, got)
			}
			return &internalquotes.QuoteItem{ID: got}, nil
		},
	}

	router := chi.NewRouter()
	router.Get("/quotes/{quoteId}", Detail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/quotes/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDetailRejectsMalformedID(t *testing.T) {
	svc := &stubQuoteService{}
	router := chi.NewRouter()
	router.Get("/quotes/{quoteId}", Detail(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/quotes/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateIgnoresUnknownFields(t *testing.T) {
	id := uuid.New()
	var captured internalquotes.UpdateQuoteInput
	svc := &stubQuoteService{
		update: func(ctx context.Context, got uuid.UUID, input internalquotes.UpdateQuoteInput) (*internalquotes.QuoteItem, error) {
			captured = input
			return &internalquotes.QuoteItem{ID: got}, nil
		},
	}

	router := chi.NewRouter()
	router.Patch("/quotes/{quoteId}", Update(svc, nil))

	body := `{"status":"Printing","deliveryFeeLkr":"350","customerName":"hacked","phone":"000"}`
	req := httptest.NewRequest(http.MethodPatch, "/quotes/"+id.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Status == nil || *captured.Status != "Printing" {
		t.Fatalf("expected status Printing, got %v", captured.Status)
	}
	if captured.DeliveryFeeLkr == nil || !captured.DeliveryFeeLkr.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("expected fee 350, got %v", captured.DeliveryFeeLkr)
	}
	if captured.AdminNote != nil {
		t.Fatalf("expected nil admin note, got %v", captured.AdminNote)
	}
}

func TestUpdateRejectsMalformedBody(t *testing.T) {
	id := uuid.New()
	svc := &stubQuoteService{}
	router := chi.NewRouter()
	router.Patch("/quotes/{quoteId}", Update(svc, nil))

	req := httptest.NewRequest(http.MethodPatch, "/quotes/"+id.String(), strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
